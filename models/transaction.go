package models

import "time"

// ============================================================================
// ENUMERATED TYPES
// ============================================================================

type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	StatusPending   TransactionStatus = "pending"
	StatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) Valid() bool {
	return s == StatusCompleted || s == StatusPending || s == StatusFailed
}

type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "cash"
	PaymentCard          PaymentMethod = "card"
	PaymentBankTransfer  PaymentMethod = "bank transfer"
	PaymentDigitalWallet PaymentMethod = "digital wallet"
	PaymentOther         PaymentMethod = "other"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentBankTransfer, PaymentDigitalWallet, PaymentOther:
		return true
	}
	return false
}

type Category string

const (
	// Expense categories
	CategoryFoodDining     Category = "Food & Dining"
	CategoryTransportation Category = "Transportation"
	CategoryShopping       Category = "Shopping"
	CategoryEntertainment  Category = "Entertainment"
	CategoryBillsUtilities Category = "Bills & Utilities"
	CategoryHealthcare     Category = "Healthcare"
	CategoryEducation      Category = "Education"
	CategoryOther          Category = "Other"

	// Income categories
	CategorySalary      Category = "Salary"
	CategoryFreelance   Category = "Freelance"
	CategoryBusiness    Category = "Business"
	CategoryInvestment  Category = "Investment"
	CategoryRental      Category = "Rental"
	CategoryBonus       Category = "Bonus"
	CategoryOtherIncome Category = "Other Income"
)

var expenseCategories = map[Category]bool{
	CategoryFoodDining:     true,
	CategoryTransportation: true,
	CategoryShopping:       true,
	CategoryEntertainment:  true,
	CategoryBillsUtilities: true,
	CategoryHealthcare:     true,
	CategoryEducation:      true,
	CategoryOther:          true,
}

var incomeCategories = map[Category]bool{
	CategorySalary:      true,
	CategoryFreelance:   true,
	CategoryBusiness:    true,
	CategoryInvestment:  true,
	CategoryRental:      true,
	CategoryBonus:       true,
	CategoryOtherIncome: true,
}

// ValidFor reports whether the category belongs to the side of the
// income/expense partition that matches the transaction type.
func (c Category) ValidFor(t TransactionType) bool {
	if t == TypeExpense {
		return expenseCategories[c]
	}
	return incomeCategories[c]
}

// ============================================================================
// TRANSACTION MODEL
// ============================================================================

type Transaction struct {
	ID            string            `json:"id"`
	UserID        string            `json:"-"`
	OccurredAt    time.Time         `json:"date"`
	Description   string            `json:"description"`
	Category      Category          `json:"category"`
	Amount        float64           `json:"amount"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"-"`
}

type CreateTransactionRequest struct {
	Description   string            `json:"description" binding:"required"`
	Amount        float64           `json:"amount" binding:"required"`
	Category      Category          `json:"category" binding:"required"`
	Type          TransactionType   `json:"type" binding:"required"`
	Date          *time.Time        `json:"date"`
	Status        TransactionStatus `json:"status"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
}

// UpdateTransactionRequest carries a partial edit; nil fields are untouched.
type UpdateTransactionRequest struct {
	Description   *string            `json:"description"`
	Amount        *float64           `json:"amount"`
	Category      *Category          `json:"category"`
	Type          *TransactionType   `json:"type"`
	Date          *time.Time         `json:"date"`
	Status        *TransactionStatus `json:"status"`
	PaymentMethod *PaymentMethod     `json:"paymentMethod"`
}

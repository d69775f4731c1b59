package models

import "time"

// ============================================================================
// DASHBOARD RESPONSE
// ============================================================================

// MetricChanges holds the month-over-month percentage change for each metric.
// Account balance has no previous-period comparator, so its change is always 0.
type MetricChanges struct {
	AccountBalance  float64 `json:"accountBalance"`
	MonthlyIncome   float64 `json:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`
	SavingsRate     float64 `json:"savingsRate"`
}

type DashboardMetrics struct {
	AccountBalance  float64       `json:"accountBalance"`
	MonthlyIncome   float64       `json:"monthlyIncome"`
	MonthlyExpenses float64       `json:"monthlyExpenses"`
	SavingsRate     float64       `json:"savingsRate"`
	Changes         MetricChanges `json:"changes"`
}

// MonthlyPoint is one entry of the trailing six-month income/expense series.
type MonthlyPoint struct {
	Month    string  `json:"month"`
	Year     int     `json:"year"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// CategoryShare is one slice of the current-month expense breakdown.
// Percentages are rounded independently and are not renormalized to 100.
type CategoryShare struct {
	Category   Category `json:"category"`
	Amount     float64  `json:"amount"`
	Percentage int      `json:"percentage"`
}

type DashboardData struct {
	Metrics            DashboardMetrics `json:"metrics"`
	MonthlyData        []MonthlyPoint   `json:"monthlyData"`
	CategoryBreakdown  []CategoryShare  `json:"categoryBreakdown"`
	RecentTransactions []Transaction    `json:"recentTransactions"`
}

type DashboardResponse struct {
	Success bool          `json:"success"`
	Data    DashboardData `json:"data"`
}

// ============================================================================
// FINANCIAL SUMMARY (cache-aside projection, never the source of truth)
// ============================================================================

type FinancialSummary struct {
	ID                string          `json:"id"`
	UserID            string          `json:"user_id"`
	AccountBalance    float64         `json:"account_balance"`
	MonthlyIncome     float64         `json:"monthly_income"`
	MonthlyExpenses   float64         `json:"monthly_expenses"`
	SavingsRate       float64         `json:"savings_rate"`
	CategoryBreakdown []CategoryShare `json:"category_breakdown"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

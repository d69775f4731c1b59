package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/nishanthprakasan/Financial-Dashboard/models"
)

// TypeTotals holds completed-transaction sums grouped by type for one window.
// Expense is always a non-negative magnitude regardless of the stored sign.
type TypeTotals struct {
	Income  float64
	Expense float64
}

// CategoryTotal is a grouped expense sum for one category.
type CategoryTotal struct {
	Category models.Category
	Amount   float64
}

// TransactionStore is the persistence boundary for transactions. All queries
// are scoped to a single owner; aggregation queries only see completed rows.
type TransactionStore interface {
	Create(ctx context.Context, t *models.Transaction) error
	GetByID(ctx context.Context, userID, id string) (*models.Transaction, error)
	Update(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, userID, id string) (bool, error)
	List(ctx context.Context, userID string) ([]models.Transaction, error)
	ListByDateDesc(ctx context.Context, userID string) ([]models.Transaction, error)

	FindLatest(ctx context.Context, userID string) (*models.Transaction, error)
	FindRecent(ctx context.Context, userID string, limit int) ([]models.Transaction, error)
	SumByType(ctx context.Context, userID string, w Window) (TypeTotals, error)
	LifetimeTotals(ctx context.Context, userID string) (TypeTotals, error)
	CategoryTotals(ctx context.Context, userID string, w Window) ([]CategoryTotal, error)
}

type PostgresTransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *PostgresTransactionStore {
	return &PostgresTransactionStore{db: db}
}

const transactionColumns = `id, user_id, occurred_at, description, category, amount, type, status, payment_method, created_at, updated_at`

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID, &t.UserID, &t.OccurredAt, &t.Description, &t.Category,
		&t.Amount, &t.Type, &t.Status, &t.PaymentMethod, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *PostgresTransactionStore) Create(ctx context.Context, t *models.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, occurred_at, description, category, amount, type, status, payment_method, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, t.ID, t.UserID, t.OccurredAt, t.Description, t.Category, t.Amount, t.Type, t.Status, t.PaymentMethod, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func (s *PostgresTransactionStore) GetByID(ctx context.Context, userID, id string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	return t, nil
}

func (s *PostgresTransactionStore) Update(ctx context.Context, t *models.Transaction) error {
	t.UpdatedAt = time.Now()
	_, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET occurred_at = $3, description = $4, category = $5, amount = $6,
		    type = $7, status = $8, payment_method = $9, updated_at = $10
		WHERE id = $1 AND user_id = $2
	`, t.ID, t.UserID, t.OccurredAt, t.Description, t.Category, t.Amount, t.Type, t.Status, t.PaymentMethod, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

func (s *PostgresTransactionStore) Delete(ctx context.Context, userID, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM transactions WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete transaction: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *PostgresTransactionStore) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.queryTransactions(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
}

// ListByDateDesc returns every transaction for export, newest first.
func (s *PostgresTransactionStore) ListByDateDesc(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.queryTransactions(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY occurred_at DESC
	`, userID)
}

// FindLatest returns the most recently dated transaction, or nil when the
// owner has none. Its date is the reference instant for period resolution.
func (s *PostgresTransactionStore) FindLatest(ctx context.Context, userID string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY occurred_at DESC
		LIMIT 1
	`, userID)

	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest transaction: %w", err)
	}
	return t, nil
}

func (s *PostgresTransactionStore) FindRecent(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	return s.queryTransactions(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1 AND status = 'completed'
		ORDER BY occurred_at DESC
		LIMIT $2
	`, userID, limit)
}

func (s *PostgresTransactionStore) SumByType(ctx context.Context, userID string, w Window) (TypeTotals, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND status = 'completed' AND occurred_at BETWEEN $2 AND $3
		GROUP BY type
	`, userID, w.Start, w.End)
	if err != nil {
		return TypeTotals{}, fmt.Errorf("failed to sum transactions by type: %w", err)
	}
	defer rows.Close()

	return scanTypeTotals(rows)
}

func (s *PostgresTransactionStore) LifetimeTotals(ctx context.Context, userID string) (TypeTotals, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND status = 'completed'
		GROUP BY type
	`, userID)
	if err != nil {
		return TypeTotals{}, fmt.Errorf("failed to sum lifetime transactions: %w", err)
	}
	defer rows.Close()

	return scanTypeTotals(rows)
}

func (s *PostgresTransactionStore) CategoryTotals(ctx context.Context, userID string, w Window) ([]CategoryTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND status = 'completed' AND type = 'expense'
		  AND occurred_at BETWEEN $2 AND $3
		GROUP BY category
		ORDER BY SUM(amount) DESC
	`, userID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions by category: %w", err)
	}
	defer rows.Close()

	totals := []CategoryTotal{}
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Amount); err != nil {
			return nil, err
		}
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}

func (s *PostgresTransactionStore) queryTransactions(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

func scanTypeTotals(rows *sql.Rows) (TypeTotals, error) {
	var totals TypeTotals
	for rows.Next() {
		var txType models.TransactionType
		var total float64
		if err := rows.Scan(&txType, &total); err != nil {
			return TypeTotals{}, err
		}
		switch txType {
		case models.TypeIncome:
			totals.Income = total
		case models.TypeExpense:
			// Magnitude, whatever sign convention the rows were stored with.
			totals.Expense = math.Abs(total)
		}
	}
	return totals, rows.Err()
}

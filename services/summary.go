package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nishanthprakasan/Financial-Dashboard/models"
)

// SummaryStore persists the per-user FinancialSummary row. The row is a
// cache of values always recomputable from the transactions table; writes
// are overwrites, never increments, so last-write-wins races are harmless.
type SummaryStore interface {
	Get(ctx context.Context, userID string) (*models.FinancialSummary, error)
	CreateDefault(ctx context.Context, userID string) (*models.FinancialSummary, error)
	SetAccountBalance(ctx context.Context, userID string, balance float64) error
	SetCategoryBreakdown(ctx context.Context, userID string, breakdown []models.CategoryShare) error
}

type PostgresSummaryStore struct {
	db *sql.DB
}

func NewSummaryStore(db *sql.DB) *PostgresSummaryStore {
	return &PostgresSummaryStore{db: db}
}

func (s *PostgresSummaryStore) Get(ctx context.Context, userID string) (*models.FinancialSummary, error) {
	var summary models.FinancialSummary
	var breakdown []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, account_balance, monthly_income, monthly_expenses, savings_rate, category_breakdown, created_at, updated_at
		FROM financial_summaries
		WHERE user_id = $1
	`, userID).Scan(
		&summary.ID, &summary.UserID, &summary.AccountBalance, &summary.MonthlyIncome,
		&summary.MonthlyExpenses, &summary.SavingsRate, &breakdown, &summary.CreatedAt, &summary.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch financial summary: %w", err)
	}

	if err := json.Unmarshal(breakdown, &summary.CategoryBreakdown); err != nil {
		return nil, fmt.Errorf("failed to decode category breakdown: %w", err)
	}
	return &summary, nil
}

func (s *PostgresSummaryStore) CreateDefault(ctx context.Context, userID string) (*models.FinancialSummary, error) {
	summary := &models.FinancialSummary{
		ID:                uuid.New().String(),
		UserID:            userID,
		CategoryBreakdown: []models.CategoryShare{},
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO financial_summaries (id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, summary.ID, summary.UserID, summary.CreatedAt, summary.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create financial summary: %w", err)
	}
	return summary, nil
}

func (s *PostgresSummaryStore) SetAccountBalance(ctx context.Context, userID string, balance float64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE financial_summaries
		SET account_balance = $1, updated_at = NOW()
		WHERE user_id = $2
	`, balance, userID)
	if err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}
	return nil
}

func (s *PostgresSummaryStore) SetCategoryBreakdown(ctx context.Context, userID string, breakdown []models.CategoryShare) error {
	encoded, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("failed to encode category breakdown: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE financial_summaries
		SET category_breakdown = $1, updated_at = NOW()
		WHERE user_id = $2
	`, encoded, userID)
	if err != nil {
		return fmt.Errorf("failed to update category breakdown: %w", err)
	}
	return nil
}

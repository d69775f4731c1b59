package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishanthprakasan/Financial-Dashboard/models"
)

// ============================================================================
// FAKE STORES
// ============================================================================

type fakeTransactionStore struct {
	latest         *models.Transaction
	sumsByMonth    map[string]TypeTotals // keyed by window start "2006-01"
	lifetime       TypeTotals
	categoryTotals []CategoryTotal
	recent         []models.Transaction

	sumErr error

	mu        sync.Mutex
	callCount int
}

func (f *fakeTransactionStore) key(w Window) string { return w.Start.Format("2006-01") }

func (f *fakeTransactionStore) recordCall() {
	f.mu.Lock()
	f.callCount++
	f.mu.Unlock()
}

func (f *fakeTransactionStore) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callCount
}

func (f *fakeTransactionStore) FindLatest(ctx context.Context, userID string) (*models.Transaction, error) {
	f.recordCall()
	return f.latest, nil
}

func (f *fakeTransactionStore) SumByType(ctx context.Context, userID string, w Window) (TypeTotals, error) {
	f.recordCall()
	if f.sumErr != nil {
		return TypeTotals{}, f.sumErr
	}
	return f.sumsByMonth[f.key(w)], nil
}

func (f *fakeTransactionStore) LifetimeTotals(ctx context.Context, userID string) (TypeTotals, error) {
	f.recordCall()
	return f.lifetime, nil
}

func (f *fakeTransactionStore) CategoryTotals(ctx context.Context, userID string, w Window) ([]CategoryTotal, error) {
	f.recordCall()
	return f.categoryTotals, nil
}

func (f *fakeTransactionStore) FindRecent(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	f.recordCall()
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeTransactionStore) Create(ctx context.Context, t *models.Transaction) error { return nil }
func (f *fakeTransactionStore) GetByID(ctx context.Context, userID, id string) (*models.Transaction, error) {
	return nil, nil
}
func (f *fakeTransactionStore) Update(ctx context.Context, t *models.Transaction) error { return nil }
func (f *fakeTransactionStore) Delete(ctx context.Context, userID, id string) (bool, error) {
	return false, nil
}
func (f *fakeTransactionStore) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	return nil, nil
}
func (f *fakeTransactionStore) ListByDateDesc(ctx context.Context, userID string) ([]models.Transaction, error) {
	return nil, nil
}

type fakeSummaryStore struct {
	existing       *models.FinancialSummary
	created        bool
	savedBalance   *float64
	savedBreakdown []models.CategoryShare
}

func (f *fakeSummaryStore) Get(ctx context.Context, userID string) (*models.FinancialSummary, error) {
	return f.existing, nil
}

func (f *fakeSummaryStore) CreateDefault(ctx context.Context, userID string) (*models.FinancialSummary, error) {
	f.created = true
	return &models.FinancialSummary{UserID: userID}, nil
}

func (f *fakeSummaryStore) SetAccountBalance(ctx context.Context, userID string, balance float64) error {
	f.savedBalance = &balance
	return nil
}

func (f *fakeSummaryStore) SetCategoryBreakdown(ctx context.Context, userID string, breakdown []models.CategoryShare) error {
	f.savedBreakdown = breakdown
	return nil
}

// ============================================================================
// PURE CALCULATIONS
// ============================================================================

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name              string
		current, previous float64
		want              float64
	}{
		{"growth from zero", 500, 0, 100},
		{"flat zero", 0, 0, 0},
		{"negative from zero", -5, 0, 0},
		{"fifty percent up", 150, 100, 50},
		{"fifty percent down", 50, 100, -50},
		{"no change", 100, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PercentChange(tt.current, tt.previous), 1e-9)
		})
	}
}

func TestSavingsRate(t *testing.T) {
	assert.Equal(t, 0.0, SavingsRate(0, 250))
	assert.Equal(t, 0.0, SavingsRate(-100, 250))
	assert.InDelta(t, 75.0, SavingsRate(1000, 250), 1e-9)
	assert.InDelta(t, 100.0, SavingsRate(1000, 0), 1e-9)
	assert.InDelta(t, -50.0, SavingsRate(1000, 1500), 1e-9)
}

func TestBreakdownSharesRoundsPerCategory(t *testing.T) {
	shares := breakdownShares([]CategoryTotal{
		{Category: models.CategoryFoodDining, Amount: 60},
		{Category: models.CategoryShopping, Amount: 40},
	})

	require.Len(t, shares, 2)
	assert.Equal(t, 60, shares[0].Percentage)
	assert.Equal(t, 40, shares[1].Percentage)
}

// Percentages are rounded independently; three equal categories yield
// 33+33+33 = 99. The reference implementation does not renormalize and
// neither do we.
func TestBreakdownSharesDoesNotRenormalize(t *testing.T) {
	shares := breakdownShares([]CategoryTotal{
		{Category: models.CategoryFoodDining, Amount: 1},
		{Category: models.CategoryShopping, Amount: 1},
		{Category: models.CategoryEntertainment, Amount: 1},
	})

	require.Len(t, shares, 3)
	sum := 0
	for _, s := range shares {
		assert.Equal(t, 33, s.Percentage)
		sum += s.Percentage
	}
	assert.Equal(t, 99, sum)
}

func TestBreakdownSharesZeroTotal(t *testing.T) {
	shares := breakdownShares([]CategoryTotal{
		{Category: models.CategoryFoodDining, Amount: 0},
	})

	require.Len(t, shares, 1)
	assert.Equal(t, 0, shares[0].Percentage)
}

func TestBreakdownSharesUsesMagnitudes(t *testing.T) {
	// Expenses stored with a negative sign convention still break down by
	// magnitude.
	shares := breakdownShares([]CategoryTotal{
		{Category: models.CategoryFoodDining, Amount: -75},
		{Category: models.CategoryShopping, Amount: -25},
	})

	require.Len(t, shares, 2)
	assert.Equal(t, 75.0, shares[0].Amount)
	assert.Equal(t, 75, shares[0].Percentage)
	assert.Equal(t, 25, shares[1].Percentage)
}

// ============================================================================
// DASHBOARD ASSEMBLY
// ============================================================================

func TestBuildDashboardNoTransactions(t *testing.T) {
	store := &fakeTransactionStore{}
	summaries := &fakeSummaryStore{}
	svc := NewDashboardService(store, summaries)

	data, err := svc.BuildDashboard(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, models.DashboardMetrics{}, data.Metrics)
	assert.Empty(t, data.MonthlyData)
	assert.Empty(t, data.CategoryBreakdown)
	assert.Empty(t, data.RecentTransactions)
	assert.NotNil(t, data.MonthlyData)
	assert.NotNil(t, data.CategoryBreakdown)
	assert.NotNil(t, data.RecentTransactions)

	// Short-circuit: only the latest-transaction lookup runs.
	assert.Equal(t, 1, store.calls())
	assert.Nil(t, summaries.savedBalance)
}

func TestBuildDashboardSingleIncomeMonth(t *testing.T) {
	ref := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	income := models.Transaction{
		ID:         "tx-1",
		OccurredAt: ref,
		Type:       models.TypeIncome,
		Category:   models.CategorySalary,
		Amount:     1000,
		Status:     models.StatusCompleted,
	}

	store := &fakeTransactionStore{
		latest: &income,
		sumsByMonth: map[string]TypeTotals{
			"2024-05": {Income: 1000},
		},
		lifetime: TypeTotals{Income: 1000},
		recent:   []models.Transaction{income},
	}
	summaries := &fakeSummaryStore{existing: &models.FinancialSummary{UserID: "user-1"}}
	svc := NewDashboardService(store, summaries)

	data, err := svc.BuildDashboard(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1000.0, data.Metrics.MonthlyIncome)
	assert.Equal(t, 0.0, data.Metrics.MonthlyExpenses)
	assert.Equal(t, 100.0, data.Metrics.SavingsRate)
	assert.Equal(t, 1000.0, data.Metrics.AccountBalance)

	assert.Equal(t, 0.0, data.Metrics.Changes.AccountBalance)
	assert.Equal(t, 100.0, data.Metrics.Changes.MonthlyIncome)
	assert.Equal(t, 0.0, data.Metrics.Changes.MonthlyExpenses)
	assert.Equal(t, 100.0, data.Metrics.Changes.SavingsRate)

	require.Len(t, data.MonthlyData, 6)
	assert.Equal(t, "Dec", data.MonthlyData[0].Month)
	assert.Equal(t, 2023, data.MonthlyData[0].Year)
	assert.Equal(t, "May", data.MonthlyData[5].Month)
	assert.Equal(t, 1000.0, data.MonthlyData[5].Income)

	require.NotNil(t, summaries.savedBalance)
	assert.Equal(t, 1000.0, *summaries.savedBalance)

	require.Len(t, data.RecentTransactions, 1)
	assert.Equal(t, "tx-1", data.RecentTransactions[0].ID)
}

func TestBuildDashboardChangesAgainstPreviousMonth(t *testing.T) {
	ref := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	latest := models.Transaction{ID: "tx-9", OccurredAt: ref, Type: models.TypeIncome, Amount: 3000}

	store := &fakeTransactionStore{
		latest: &latest,
		sumsByMonth: map[string]TypeTotals{
			"2024-06": {Income: 3000, Expense: 1500}, // savings rate 50
			"2024-05": {Income: 2000, Expense: 1000}, // savings rate 50
		},
		lifetime: TypeTotals{Income: 5000, Expense: 2500},
		categoryTotals: []CategoryTotal{
			{Category: models.CategoryFoodDining, Amount: 900},
			{Category: models.CategoryTransportation, Amount: 600},
		},
	}
	summaries := &fakeSummaryStore{existing: &models.FinancialSummary{UserID: "user-1"}}
	svc := NewDashboardService(store, summaries)

	data, err := svc.BuildDashboard(context.Background(), "user-1")
	require.NoError(t, err)

	assert.InDelta(t, 50.0, data.Metrics.Changes.MonthlyIncome, 1e-9)
	assert.InDelta(t, 50.0, data.Metrics.Changes.MonthlyExpenses, 1e-9)
	assert.InDelta(t, 0.0, data.Metrics.Changes.SavingsRate, 1e-9)
	assert.Equal(t, 2500.0, data.Metrics.AccountBalance)

	require.Len(t, data.CategoryBreakdown, 2)
	assert.Equal(t, 60, data.CategoryBreakdown[0].Percentage)
	assert.Equal(t, 40, data.CategoryBreakdown[1].Percentage)
	assert.Equal(t, data.CategoryBreakdown, summaries.savedBreakdown)
}

func TestBuildDashboardCreatesSummaryLazily(t *testing.T) {
	ref := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	latest := models.Transaction{ID: "tx-2", OccurredAt: ref, Type: models.TypeExpense, Amount: 50}

	store := &fakeTransactionStore{latest: &latest, sumsByMonth: map[string]TypeTotals{}}
	summaries := &fakeSummaryStore{existing: nil}
	svc := NewDashboardService(store, summaries)

	_, err := svc.BuildDashboard(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, summaries.created)
}

func TestBuildDashboardQueryFailureFailsWhole(t *testing.T) {
	ref := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	latest := models.Transaction{ID: "tx-3", OccurredAt: ref}

	store := &fakeTransactionStore{
		latest:      &latest,
		sumsByMonth: map[string]TypeTotals{},
		sumErr:      errors.New("connection refused"),
	}
	summaries := &fakeSummaryStore{existing: &models.FinancialSummary{UserID: "user-1"}}
	svc := NewDashboardService(store, summaries)

	_, err := svc.BuildDashboard(context.Background(), "user-1")
	require.Error(t, err)
	assert.Nil(t, summaries.savedBalance)
}

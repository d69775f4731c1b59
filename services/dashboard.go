package services

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/nishanthprakasan/Financial-Dashboard/models"
)

const (
	trendMonths        = 6
	recentTransactions = 10
)

// DashboardService derives the dashboard metrics from the transaction store
// and refreshes the per-user summary cache as a side effect.
type DashboardService struct {
	transactions TransactionStore
	summaries    SummaryStore
}

func NewDashboardService(transactions TransactionStore, summaries SummaryStore) *DashboardService {
	return &DashboardService{
		transactions: transactions,
		summaries:    summaries,
	}
}

// PercentChange returns the percentage change from previous to current.
// A zero previous value reports 100 for any growth and 0 otherwise.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return ((current - previous) / previous) * 100
}

// SavingsRate is the share of income left after expenses, as a percentage.
func SavingsRate(income, expense float64) float64 {
	if income <= 0 {
		return 0
	}
	return ((income - expense) / income) * 100
}

// breakdownShares converts grouped expense totals into percentage shares.
// Each percentage is rounded independently, so the shares do not always sum
// to exactly 100; the reference behavior keeps it that way rather than
// renormalizing.
func breakdownShares(totals []CategoryTotal) []models.CategoryShare {
	var total float64
	for _, ct := range totals {
		total += math.Abs(ct.Amount)
	}

	shares := make([]models.CategoryShare, 0, len(totals))
	for _, ct := range totals {
		amount := math.Abs(ct.Amount)
		percentage := 0
		if total > 0 {
			percentage = int(math.Round(amount / total * 100))
		}
		shares = append(shares, models.CategoryShare{
			Category:   ct.Category,
			Amount:     amount,
			Percentage: percentage,
		})
	}
	return shares
}

func emptyDashboard() models.DashboardData {
	return models.DashboardData{
		MonthlyData:        []models.MonthlyPoint{},
		CategoryBreakdown:  []models.CategoryShare{},
		RecentTransactions: []models.Transaction{},
	}
}

// BuildDashboard assembles the full dashboard payload for one owner. The
// windowed queries are independent reads and run concurrently; any failure
// fails the whole request, there is no partial-result mode.
func (s *DashboardService) BuildDashboard(ctx context.Context, userID string) (models.DashboardData, error) {
	latest, err := s.transactions.FindLatest(ctx, userID)
	if err != nil {
		return models.DashboardData{}, err
	}
	if latest == nil {
		return emptyDashboard(), nil
	}

	summary, err := s.summaries.Get(ctx, userID)
	if err != nil {
		return models.DashboardData{}, err
	}
	if summary == nil {
		if _, err := s.summaries.CreateDefault(ctx, userID); err != nil {
			return models.DashboardData{}, err
		}
	}

	periods := ResolvePeriods(latest.OccurredAt)
	trailing := TrailingMonths(latest.OccurredAt, trendMonths)

	var (
		current, previous, lifetime TypeTotals
		categoryTotals              []CategoryTotal
		recent                      []models.Transaction
		monthly                     = make([]models.MonthlyPoint, trendMonths)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		current, err = s.transactions.SumByType(gctx, userID, periods.Current)
		return err
	})
	g.Go(func() (err error) {
		previous, err = s.transactions.SumByType(gctx, userID, periods.Previous)
		return err
	})
	g.Go(func() (err error) {
		lifetime, err = s.transactions.LifetimeTotals(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		categoryTotals, err = s.transactions.CategoryTotals(gctx, userID, periods.Current)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.transactions.FindRecent(gctx, userID, recentTransactions)
		return err
	})
	for i, month := range trailing {
		i, month := i, month
		g.Go(func() error {
			totals, err := s.transactions.SumByType(gctx, userID, month.Window)
			if err != nil {
				return err
			}
			monthly[i] = models.MonthlyPoint{
				Month:    month.Label,
				Year:     month.Year,
				Income:   totals.Income,
				Expenses: totals.Expense,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.DashboardData{}, err
	}

	currentSavingsRate := SavingsRate(current.Income, current.Expense)
	previousSavingsRate := SavingsRate(previous.Income, previous.Expense)
	accountBalance := lifetime.Income - lifetime.Expense
	breakdown := breakdownShares(categoryTotals)

	// Cache refresh: pure overwrites of derived values, safe to recompute.
	if err := s.summaries.SetAccountBalance(ctx, userID, accountBalance); err != nil {
		return models.DashboardData{}, err
	}
	if err := s.summaries.SetCategoryBreakdown(ctx, userID, breakdown); err != nil {
		return models.DashboardData{}, err
	}

	if recent == nil {
		recent = []models.Transaction{}
	}

	return models.DashboardData{
		Metrics: models.DashboardMetrics{
			AccountBalance:  accountBalance,
			MonthlyIncome:   current.Income,
			MonthlyExpenses: current.Expense,
			SavingsRate:     currentSavingsRate,
			Changes: models.MetricChanges{
				AccountBalance:  0,
				MonthlyIncome:   PercentChange(current.Income, previous.Income),
				MonthlyExpenses: PercentChange(current.Expense, previous.Expense),
				SavingsRate:     PercentChange(currentSavingsRate, previousSavingsRate),
			},
		},
		MonthlyData:        monthly,
		CategoryBreakdown:  breakdown,
		RecentTransactions: recent,
	}, nil
}

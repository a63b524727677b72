package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
	portsrepo "github.com/ecogestor/ecogestor_backend/internal/core/ports/repositories"
	portssvc "github.com/ecogestor/ecogestor_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// monthLabels is the fixed 12-entry calendar used for the chart series (pt-BR).
var monthLabels = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// analyticsService implements the AnalyticsService interface
type analyticsService struct {
	BaseService
	snapshotRepo portsrepo.SnapshotRepository
	now          func() time.Time
}

// AnalyticsServiceOption is a functional option for configuring the analytics service
type AnalyticsServiceOption func(*analyticsService)

// WithAnalyticsClock overrides the clock used to truncate the monthly series.
// Intended for tests.
func WithAnalyticsClock(now func() time.Time) AnalyticsServiceOption {
	return func(s *analyticsService) {
		s.now = now
	}
}

// NewAnalyticsService creates a new analytics service with the provided options
func NewAnalyticsService(repo portsrepo.SnapshotRepository, options ...AnalyticsServiceOption) portssvc.AnalyticsService {
	svc := &analyticsService{
		snapshotRepo: repo,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure analyticsService implements the AnalyticsService interface
var _ portssvc.AnalyticsService = (*analyticsService)(nil)

// Summary aggregates the cash book snapshot into dashboard totals and the
// truncated monthly chart series.
func (s *analyticsService) Summary(ctx context.Context, period *domain.Period) (*domain.DashboardSummary, error) {
	revenues, err := s.snapshotRepo.ListRevenues(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load revenue snapshot")
		return nil, err
	}
	expenses, err := s.snapshotRepo.ListExpenses(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expense snapshot")
		return nil, err
	}

	if period != nil {
		bounds, err := period.Resolve()
		if err != nil {
			return nil, err
		}
		revenues = FilterByBounds(revenues, bounds)
		expenses = FilterByBounds(expenses, bounds)
	}

	summary := AggregateTransactions(revenues, expenses, s.now())
	if summary.SkippedInvalidDates > 0 {
		s.LogWarn(ctx, "Excluded cash book entries with unparseable dates",
			slog.Int("skipped", summary.SkippedInvalidDates))
	}
	return &summary, nil
}

// ListTransactions returns one page of period-filtered cash book entries.
// The store compares raw entry dates as strings, so the page is re-filtered
// here: a legacy date that fails to normalize is excluded from the detail
// table just like everywhere else.
func (s *analyticsService) ListTransactions(ctx context.Context, period domain.Period, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	bounds, err := period.Resolve()
	if err != nil {
		return nil, nil, err
	}
	txns, token, err := s.snapshotRepo.ListTransactionsPage(ctx, bounds, limit, nextToken)
	if err != nil {
		return nil, nil, err
	}
	return FilterByBounds(txns, bounds), token, nil
}

// FilterByBounds returns the entries whose normalized date lies inside the
// inclusive bounds. Entries with unparseable dates are excluded rather than
// compared as empty strings.
func FilterByBounds(txns []domain.Transaction, bounds domain.PeriodBounds) []domain.Transaction {
	filtered := make([]domain.Transaction, 0, len(txns))
	for _, txn := range txns {
		if bounds.Contains(txn.Date) {
			filtered = append(filtered, txn)
		}
	}
	return filtered
}

// AggregateTransactions computes the dashboard totals and the monthly chart
// series from revenue and expense snapshots. It is a pure function: the
// clock parameter determines the current year and the month the series is
// truncated at.
//
// Entries whose date cannot be parsed are excluded from the totals AND the
// monthly series, never from just one of them. The count of excluded entries
// is reported on the summary. (Totals can still exceed the bucket sum: valid
// entries outside the current calendar year count toward the totals but get
// no bucket.)
func AggregateTransactions(revenues, expenses []domain.Transaction, now time.Time) domain.DashboardSummary {
	currentYear := now.Year()
	lastMonth := int(now.Month())

	series := make([]domain.MonthlyBucket, lastMonth)
	for i := range series {
		series[i] = domain.MonthlyBucket{
			MonthLabel: monthLabels[i],
			RevenueSum: decimal.Zero,
			ExpenseSum: decimal.Zero,
		}
	}

	totals := domain.DashboardTotals{
		Revenue:  decimal.Zero,
		Expenses: decimal.Zero,
		Profit:   decimal.Zero,
	}
	skipped := 0

	accumulate := func(txns []domain.Transaction, kind domain.TransactionKind) {
		for _, txn := range txns {
			normalized, ok := txn.NormalizedDate()
			if !ok {
				skipped++
				continue
			}
			if kind == domain.KindRevenue {
				totals.Revenue = totals.Revenue.Add(txn.Amount)
			} else {
				totals.Expenses = totals.Expenses.Add(txn.Amount)
			}

			// The chart shows the current calendar year only; months beyond
			// "now" are not displayed.
			date, _ := time.Parse(domain.DateLayout, normalized)
			if date.Year() != currentYear || int(date.Month()) > lastMonth {
				continue
			}
			bucket := &series[int(date.Month())-1]
			if kind == domain.KindRevenue {
				bucket.RevenueSum = bucket.RevenueSum.Add(txn.Amount)
			} else {
				bucket.ExpenseSum = bucket.ExpenseSum.Add(txn.Amount)
			}
		}
	}

	accumulate(revenues, domain.KindRevenue)
	accumulate(expenses, domain.KindExpense)

	totals.Profit = totals.Revenue.Sub(totals.Expenses)

	return domain.DashboardSummary{
		Totals:              totals,
		MonthlySeries:       series,
		SkippedInvalidDates: skipped,
	}
}

package services

import (
	"context"

	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
)

// AnalyticsService defines operations for the financial dashboard views.
type AnalyticsService interface {
	// Summary aggregates the cash book into headline totals and the monthly
	// chart series. When period is non-nil the snapshot is filtered to the
	// resolved bounds before aggregation.
	Summary(ctx context.Context, period *domain.Period) (*domain.DashboardSummary, error)

	// ListTransactions returns one page of period-filtered cash book entries
	// for the detail table.
	ListTransactions(ctx context.Context, period domain.Period, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// ClassificationService defines the ABC (Pareto) client revenue analysis.
type ClassificationService interface {
	// ABCAnalysis merges revenue entries and paid invoices per client and
	// returns the classification rows in descending revenue order.
	ABCAnalysis(ctx context.Context) ([]domain.ClassificationRow, error)
}

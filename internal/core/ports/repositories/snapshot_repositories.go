package repositories

import (
	"context"

	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
)

// SnapshotRepository exposes the already-materialized record collections the
// analytics core reads. The store owns all write concurrency; this core only
// ever sees immutable snapshots.
type SnapshotRepository interface {
	// ListRevenues returns every revenue cash book entry.
	ListRevenues(ctx context.Context) ([]domain.Transaction, error)

	// ListExpenses returns every expense cash book entry.
	ListExpenses(ctx context.Context) ([]domain.Transaction, error)

	// ListInvoices returns every invoice, regardless of status.
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)

	// ListClients returns the client lookup table.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// ListTransactionsPage returns one page of cash book entries inside the
	// given bounds, ordered by date then creation time, with an opaque token
	// for the next page (nil when exhausted).
	ListTransactionsPage(ctx context.Context, bounds domain.PeriodBounds, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// RepositoryProvider bundles the repository implementations handed to the
// service layer at wiring time.
type RepositoryProvider struct {
	Snapshot SnapshotRepository
}

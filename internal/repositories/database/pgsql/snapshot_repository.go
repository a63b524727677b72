package pgsql

import (
	"context"
	"fmt"

	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
	portsrepo "github.com/ecogestor/ecogestor_backend/internal/core/ports/repositories"
	"github.com/ecogestor/ecogestor_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

// snapshotRepository implements the SnapshotRepository interface
type snapshotRepository struct {
	BaseRepository
}

// newSnapshotRepository creates a new snapshot repository
func newSnapshotRepository(db *pgxpool.Pool) portsrepo.SnapshotRepository {
	return &snapshotRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure snapshotRepository implements the SnapshotRepository interface
var _ portsrepo.SnapshotRepository = (*snapshotRepository)(nil)

// ListRevenues returns every revenue cash book entry.
func (r *snapshotRepository) ListRevenues(ctx context.Context) ([]domain.Transaction, error) {
	return r.listTransactions(ctx, domain.KindRevenue)
}

// ListExpenses returns every expense cash book entry.
func (r *snapshotRepository) ListExpenses(ctx context.Context) ([]domain.Transaction, error) {
	return r.listTransactions(ctx, domain.KindExpense)
}

func (r *snapshotRepository) listTransactions(ctx context.Context, kind domain.TransactionKind) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, kind, entry_date, amount, COALESCE(client_id, ''), description,
			created_at, created_by, last_updated_at, last_updated_by
		FROM cash_transactions
		WHERE kind = $1
		ORDER BY entry_date, created_at
	`

	rows, err := r.Pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("error querying cash transactions: %w", err)
	}
	defer rows.Close()

	result := []domain.Transaction{}
	for rows.Next() {
		var txn domain.Transaction
		var kindStr string
		if err := rows.Scan(
			&txn.TransactionID,
			&kindStr,
			&txn.Date,
			&txn.Amount,
			&txn.ClientID,
			&txn.Description,
			&txn.CreatedAt,
			&txn.CreatedBy,
			&txn.LastUpdatedAt,
			&txn.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("error scanning cash transaction row: %w", err)
		}
		txn.Kind = domain.TransactionKind(kindStr)
		result = append(result, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash transaction rows: %w", err)
	}

	return result, nil
}

// ListInvoices returns every invoice, regardless of status.
func (r *snapshotRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	query := `
		SELECT invoice_id, client_id, amount, status,
			created_at, created_by, last_updated_at, last_updated_by
		FROM invoices
		ORDER BY created_at
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying invoices: %w", err)
	}
	defer rows.Close()

	result := []domain.Invoice{}
	for rows.Next() {
		var inv domain.Invoice
		var status string
		if err := rows.Scan(
			&inv.InvoiceID,
			&inv.ClientID,
			&inv.Amount,
			&status,
			&inv.CreatedAt,
			&inv.CreatedBy,
			&inv.LastUpdatedAt,
			&inv.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("error scanning invoice row: %w", err)
		}
		inv.Status = domain.InvoiceStatus(status)
		result = append(result, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}

	return result, nil
}

// ListClients returns the client lookup table.
func (r *snapshotRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT client_id, name FROM clients ORDER BY name`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying clients: %w", err)
	}
	defer rows.Close()

	result := []domain.Client{}
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ClientID, &c.Name); err != nil {
			return nil, fmt.Errorf("error scanning client row: %w", err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}

	return result, nil
}

// ListTransactionsPage returns one page of cash book entries inside the given
// bounds, ordered by entry date then creation time.
func (r *snapshotRepository) ListTransactionsPage(ctx context.Context, bounds domain.PeriodBounds, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query := `
		SELECT transaction_id, kind, entry_date, amount, COALESCE(client_id, ''), description,
			created_at, created_by, last_updated_at, last_updated_by
		FROM cash_transactions
		WHERE entry_date >= $1 AND entry_date <= $2
	`
	args := []any{bounds.Start, bounds.End}

	if nextToken != nil {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("error decoding pagination token: %w", err)
		}
		query += ` AND (entry_date, created_at) > ($3, $4)`
		args = append(args, entryDate, createdAt)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY entry_date, created_at LIMIT %d`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying cash transaction page: %w", err)
	}
	defer rows.Close()

	result := []domain.Transaction{}
	for rows.Next() {
		var txn domain.Transaction
		var kindStr string
		if err := rows.Scan(
			&txn.TransactionID,
			&kindStr,
			&txn.Date,
			&txn.Amount,
			&txn.ClientID,
			&txn.Description,
			&txn.CreatedAt,
			&txn.CreatedBy,
			&txn.LastUpdatedAt,
			&txn.LastUpdatedBy,
		); err != nil {
			return nil, nil, fmt.Errorf("error scanning cash transaction row: %w", err)
		}
		txn.Kind = domain.TransactionKind(kindStr)
		result = append(result, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating cash transaction rows: %w", err)
	}

	var token *string
	if len(result) > limit {
		result = result[:limit]
		last := result[len(result)-1]
		encoded := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &encoded
	}

	return result, token, nil
}

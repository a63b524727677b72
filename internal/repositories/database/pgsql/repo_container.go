package pgsql

import (
	portsrepo "github.com/ecogestor/ecogestor_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx-backed repository implementations.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Snapshot: newSnapshotRepository(dbPool),
	}
}

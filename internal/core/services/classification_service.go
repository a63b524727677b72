package services

import (
	"context"
	"sort"

	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
	portsrepo "github.com/ecogestor/ecogestor_backend/internal/core/ports/repositories"
	portssvc "github.com/ecogestor/ecogestor_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ABC tier thresholds over the cumulative revenue percentage. Both boundaries
// are inclusive: a row landing exactly on 80 is "A", exactly on 95 is "B".
const (
	classAThreshold = 80.0
	classBThreshold = 95.0
)

// classificationService implements the ClassificationService interface
type classificationService struct {
	BaseService
	snapshotRepo portsrepo.SnapshotRepository
}

// NewClassificationService creates a new classification service
func NewClassificationService(repo portsrepo.SnapshotRepository) portssvc.ClassificationService {
	return &classificationService{snapshotRepo: repo}
}

// Ensure classificationService implements the ClassificationService interface
var _ portssvc.ClassificationService = (*classificationService)(nil)

// ABCAnalysis loads the revenue, invoice and client snapshots and runs the
// Pareto classification over them.
func (s *classificationService) ABCAnalysis(ctx context.Context) ([]domain.ClassificationRow, error) {
	revenues, err := s.snapshotRepo.ListRevenues(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load revenue snapshot for ABC analysis")
		return nil, err
	}
	invoices, err := s.snapshotRepo.ListInvoices(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load invoice snapshot for ABC analysis")
		return nil, err
	}
	clients, err := s.snapshotRepo.ListClients(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load client snapshot for ABC analysis")
		return nil, err
	}

	return ClassifyClientRevenue(revenues, invoices, domain.NewClientLookup(clients)), nil
}

// ClassifyClientRevenue merges revenue entries and paid invoices per client
// and computes the ABC classification. It is a pure function.
//
// Rows are sorted by total revenue descending with client ID ascending as the
// deterministic tie-break. When the combined revenue is zero every row gets
// zero percentages and class C; the function never divides by zero.
func ClassifyClientRevenue(revenues []domain.Transaction, invoices []domain.Invoice, clients domain.ClientLookup) []domain.ClassificationRow {
	perClient := make(map[string]decimal.Decimal)

	for _, rev := range revenues {
		if rev.ClientID == "" {
			continue
		}
		perClient[rev.ClientID] = perClient[rev.ClientID].Add(rev.Amount)
	}
	for _, inv := range invoices {
		if inv.Status != domain.InvoicePaid {
			continue
		}
		perClient[inv.ClientID] = perClient[inv.ClientID].Add(inv.Amount)
	}

	rows := make([]domain.ClassificationRow, 0, len(perClient))
	totalCombined := decimal.Zero
	for clientID, total := range perClient {
		rows = append(rows, domain.ClassificationRow{
			ClientID:     clientID,
			ClientName:   clients.NameOf(clientID),
			TotalRevenue: total,
		})
		totalCombined = totalCombined.Add(total)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TotalRevenue.Equal(rows[j].TotalRevenue) {
			return rows[i].TotalRevenue.GreaterThan(rows[j].TotalRevenue)
		}
		return rows[i].ClientID < rows[j].ClientID
	})

	if totalCombined.IsZero() {
		for i := range rows {
			rows[i].Classification = domain.ClassC
		}
		return rows
	}

	totalFloat, _ := totalCombined.Float64()
	cumulative := decimal.Zero
	for i := range rows {
		rowFloat, _ := rows[i].TotalRevenue.Float64()
		cumulative = cumulative.Add(rows[i].TotalRevenue)
		cumulativeFloat, _ := cumulative.Float64()

		rows[i].RevenuePercentage = rowFloat / totalFloat * 100
		rows[i].CumulativeRevenuePercentage = cumulativeFloat / totalFloat * 100
		rows[i].Classification = classify(rows[i].CumulativeRevenuePercentage)
	}

	return rows
}

func classify(cumulativePct float64) domain.ABCClass {
	switch {
	case cumulativePct <= classAThreshold:
		return domain.ClassA
	case cumulativePct <= classBThreshold:
		return domain.ClassB
	default:
		return domain.ClassC
	}
}

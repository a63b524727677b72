package services_test

import (
	"context"

	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
	portsrepo "github.com/ecogestor/ecogestor_backend/internal/core/ports/repositories"
	portssvc "github.com/ecogestor/ecogestor_backend/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock SnapshotRepository ---
type MockSnapshotRepository struct {
	mock.Mock
}

// Ensure MockSnapshotRepository implements portsrepo.SnapshotRepository
var _ portsrepo.SnapshotRepository = (*MockSnapshotRepository)(nil)

func (m *MockSnapshotRepository) ListRevenues(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockSnapshotRepository) ListExpenses(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockSnapshotRepository) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockSnapshotRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockSnapshotRepository) ListTransactionsPage(ctx context.Context, bounds domain.PeriodBounds, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, bounds, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

// --- Mock ReportRenderer ---
type MockReportRenderer struct {
	mock.Mock
}

var _ portssvc.ReportRenderer = (*MockReportRenderer)(nil)

func (m *MockReportRenderer) Render(ctx context.Context, doc domain.ReportDocument) (*portssvc.ReportArtifact, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.ReportArtifact), args.Error(1)
}

// --- Mock BrandingFetcher ---
type MockBrandingFetcher struct {
	mock.Mock
}

var _ portssvc.BrandingFetcher = (*MockBrandingFetcher)(nil)

func (m *MockBrandingFetcher) Fetch(ctx context.Context, url string) (*domain.BrandingImage, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BrandingImage), args.Error(1)
}

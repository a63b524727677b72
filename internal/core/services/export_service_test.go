package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ecogestor/ecogestor_backend/internal/apperrors"
	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
	portssvc "github.com/ecogestor/ecogestor_backend/internal/core/ports/services"
	"github.com/ecogestor/ecogestor_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func describedRevenue(date, description string, amount int64) domain.Transaction {
	txn := revenue(date, amount)
	txn.Description = description
	return txn
}

func TestBuildCashBookDocument(t *testing.T) {
	revenues := []domain.Transaction{
		describedRevenue("2024-03-20", "late invoice", 300),
		describedRevenue("2024-03-02", "deposit", 100),
	}
	expenses := []domain.Transaction{
		expense("2024-03-10", 40),
	}

	doc := services.BuildCashBookDocument("2024-03", revenues, expenses)

	assert.Equal(t, "Lançamentos de Caixa", doc.Title)
	assert.Equal(t, "2024-03", doc.PeriodLabel)
	require.Len(t, doc.Sections, 2)

	receitas := doc.Sections[0]
	assert.Equal(t, "Receitas", receitas.Title)
	require.Len(t, receitas.Items, 2)
	assert.Equal(t, "deposit", receitas.Items[0].Description, "items sorted by date")
	assert.Equal(t, "late invoice", receitas.Items[1].Description)
	assert.Equal(t, "400", receitas.Total.String())

	despesas := doc.Sections[1]
	assert.Equal(t, "Despesas", despesas.Title)
	assert.Equal(t, "40", despesas.Total.String())
}

func TestBuildCashBookDocumentEmptySnapshot(t *testing.T) {
	doc := services.BuildCashBookDocument("2024", nil, nil)

	require.Len(t, doc.Sections, 2)
	assert.Empty(t, doc.Sections[0].Items)
	assert.True(t, doc.Sections[0].Total.IsZero())
	assert.True(t, doc.Sections[1].Total.IsZero())
}

// --- Service-level tests ---

type ExportServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockSnapshotRepository
	mockRenderer *MockReportRenderer
	mockFetcher  *MockBrandingFetcher
	ctx          context.Context
}

func (suite *ExportServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSnapshotRepository)
	suite.mockRenderer = new(MockReportRenderer)
	suite.mockFetcher = new(MockBrandingFetcher)
	suite.ctx = context.Background()
}

func (suite *ExportServiceTestSuite) marchSnapshot() {
	suite.mockRepo.On("ListRevenues", mock.Anything).Return([]domain.Transaction{
		describedRevenue("2024-03-05", "in window", 100),
		describedRevenue("2024-04-05", "out of window", 999),
	}, nil)
	suite.mockRepo.On("ListExpenses", mock.Anything).Return([]domain.Transaction{
		expense("2024-03-20", 30),
	}, nil)
}

func (suite *ExportServiceTestSuite) TestExportFiltersToPeriod() {
	suite.marchSnapshot()

	artifact := &portssvc.ReportArtifact{Filename: "lancamentos_caixa_202403.pdf", ContentType: "application/pdf", Data: []byte("%PDF-")}
	suite.mockRenderer.On("Render", mock.Anything, mock.MatchedBy(func(doc domain.ReportDocument) bool {
		return len(doc.Sections) == 2 &&
			len(doc.Sections[0].Items) == 1 &&
			doc.Sections[0].Items[0].Description == "in window" &&
			doc.Sections[1].Total.String() == "30"
	})).Return(artifact, nil)

	svc := services.NewExportService(suite.mockRepo,
		services.WithRenderer(portssvc.FormatPDF, suite.mockRenderer))

	got, err := svc.ExportCashBook(suite.ctx, "user-1", domain.Period{Type: domain.PeriodMonth, Value: "2024-03"}, portssvc.FormatPDF)

	suite.Require().NoError(err)
	suite.Equal(artifact, got)
	suite.mockRenderer.AssertExpectations(suite.T())
}

func (suite *ExportServiceTestSuite) TestExportUnregisteredFormat() {
	svc := services.NewExportService(suite.mockRepo,
		services.WithRenderer(portssvc.FormatPDF, suite.mockRenderer))

	_, err := svc.ExportCashBook(suite.ctx, "user-1", domain.Period{Type: domain.PeriodYear, Value: "2024"}, portssvc.FormatHTML)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRenderUnavailable)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListRevenues", mock.Anything)
}

func (suite *ExportServiceTestSuite) TestExportRejectsMalformedPeriod() {
	svc := services.NewExportService(suite.mockRepo,
		services.WithRenderer(portssvc.FormatPDF, suite.mockRenderer))

	_, err := svc.ExportCashBook(suite.ctx, "user-1", domain.Period{Type: domain.PeriodMonth, Value: "03/2024"}, portssvc.FormatPDF)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExportServiceTestSuite) TestExportPropagatesRendererError() {
	suite.marchSnapshot()

	renderErr := errors.New("font table corrupt")
	suite.mockRenderer.On("Render", mock.Anything, mock.Anything).Return(nil, renderErr)

	svc := services.NewExportService(suite.mockRepo,
		services.WithRenderer(portssvc.FormatPDF, suite.mockRenderer))

	_, err := svc.ExportCashBook(suite.ctx, "user-1", domain.Period{Type: domain.PeriodMonth, Value: "2024-03"}, portssvc.FormatPDF)

	suite.Require().Error(err)
	suite.ErrorIs(err, renderErr)
}

func (suite *ExportServiceTestSuite) TestExportAttachesBranding() {
	suite.marchSnapshot()

	header := &domain.BrandingImage{Data: []byte{0x89, 0x50}, Format: "png"}
	suite.mockFetcher.On("Fetch", mock.Anything, "https://assets.example/header.png").Return(header, nil)
	suite.mockFetcher.On("Fetch", mock.Anything, "https://assets.example/watermark.png").Return(nil, apperrors.ErrMissingAsset)

	artifact := &portssvc.ReportArtifact{Filename: "lancamentos_caixa_202403.pdf"}
	suite.mockRenderer.On("Render", mock.Anything, mock.MatchedBy(func(doc domain.ReportDocument) bool {
		// A failed branding fetch omits only that image.
		return doc.Branding.Header == header &&
			doc.Branding.Watermark == nil &&
			doc.Branding.Footer == nil
	})).Return(artifact, nil)

	svc := services.NewExportService(suite.mockRepo,
		services.WithRenderer(portssvc.FormatPDF, suite.mockRenderer),
		services.WithBrandingFetcher(suite.mockFetcher, services.BrandingURLs{
			Header:    "https://assets.example/header.png",
			Watermark: "https://assets.example/watermark.png",
		}))

	_, err := svc.ExportCashBook(suite.ctx, "user-1", domain.Period{Type: domain.PeriodMonth, Value: "2024-03"}, portssvc.FormatPDF)

	suite.Require().NoError(err)
	suite.mockFetcher.AssertExpectations(suite.T())
	suite.mockRenderer.AssertExpectations(suite.T())
}

// gatedRenderer blocks inside Render until released, so a second caller can
// arrive while the first generation is still in flight.
type gatedRenderer struct {
	started  chan struct{}
	release  chan struct{}
	calls    int32
	artifact *portssvc.ReportArtifact
}

func (r *gatedRenderer) Render(ctx context.Context, doc domain.ReportDocument) (*portssvc.ReportArtifact, error) {
	atomic.AddInt32(&r.calls, 1)
	r.started <- struct{}{}
	<-r.release
	return r.artifact, nil
}

func (suite *ExportServiceTestSuite) TestConcurrentIdenticalExportsShareOneGeneration() {
	suite.marchSnapshot()

	artifact := &portssvc.ReportArtifact{Filename: "lancamentos_caixa_202403.pdf"}
	renderer := &gatedRenderer{
		started:  make(chan struct{}, 2),
		release:  make(chan struct{}),
		artifact: artifact,
	}

	svc := services.NewExportService(suite.mockRepo,
		services.WithRenderer(portssvc.FormatPDF, renderer))

	period := domain.Period{Type: domain.PeriodMonth, Value: "2024-03"}
	results := make(chan *portssvc.ReportArtifact, 2)
	errs := make(chan error, 2)
	call := func() {
		got, err := svc.ExportCashBook(suite.ctx, "user-1", period, portssvc.FormatPDF)
		results <- got
		errs <- err
	}

	go call()
	<-renderer.started // first caller is inside the renderer
	go call()
	time.Sleep(100 * time.Millisecond) // let the second caller join the in-flight generation
	close(renderer.release)

	for i := 0; i < 2; i++ {
		suite.Require().NoError(<-errs)
		suite.Same(artifact, <-results)
	}
	suite.EqualValues(1, atomic.LoadInt32(&renderer.calls), "identical concurrent exports render once")
}

func TestExportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExportServiceTestSuite))
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/ecogestor/ecogestor_backend/internal/apperrors"
	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
	portsrepo "github.com/ecogestor/ecogestor_backend/internal/core/ports/repositories"
	portssvc "github.com/ecogestor/ecogestor_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// BrandingURLs configures where the optional report images are fetched from.
// Empty entries are simply not fetched.
type BrandingURLs struct {
	Header    string
	Footer    string
	Watermark string
}

// exportService implements the ExportService interface
type exportService struct {
	BaseService
	snapshotRepo portsrepo.SnapshotRepository
	renderers    map[portssvc.ExportFormat]portssvc.ReportRenderer
	branding     portssvc.BrandingFetcher
	brandingURLs BrandingURLs

	// group deduplicates concurrent exports with identical requester, period
	// and format: the second caller shares the first generation's artifact
	// instead of racing a duplicate render.
	group singleflight.Group
}

// ExportServiceOption is a functional option for configuring the export service
type ExportServiceOption func(*exportService)

// WithRenderer registers a renderer backend for a format.
func WithRenderer(format portssvc.ExportFormat, renderer portssvc.ReportRenderer) ExportServiceOption {
	return func(s *exportService) {
		s.renderers[format] = renderer
	}
}

// WithBrandingFetcher sets the fetcher used for the optional report images.
func WithBrandingFetcher(fetcher portssvc.BrandingFetcher, urls BrandingURLs) ExportServiceOption {
	return func(s *exportService) {
		s.branding = fetcher
		s.brandingURLs = urls
	}
}

// NewExportService creates a new export service with the provided options
func NewExportService(repo portsrepo.SnapshotRepository, options ...ExportServiceOption) portssvc.ExportService {
	svc := &exportService{
		snapshotRepo: repo,
		renderers:    make(map[portssvc.ExportFormat]portssvc.ReportRenderer),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure exportService implements the ExportService interface
var _ portssvc.ExportService = (*exportService)(nil)

// ExportCashBook generates the cash book export for the given period and format.
func (s *exportService) ExportCashBook(ctx context.Context, requesterID string, period domain.Period, format portssvc.ExportFormat) (*portssvc.ReportArtifact, error) {
	bounds, err := period.Resolve()
	if err != nil {
		return nil, err
	}

	renderer, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: no renderer registered for format %q", apperrors.ErrRenderUnavailable, format)
	}

	key := fmt.Sprintf("%s|%s|%s|%s", requesterID, period.Type, period.Value, format)
	result, err, shared := s.group.Do(key, func() (any, error) {
		return s.generate(ctx, period, bounds, renderer)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.LogInfo(ctx, "Reused in-flight export generation",
			slog.String("requester_id", requesterID),
			slog.String("period", period.Value))
	}
	return result.(*portssvc.ReportArtifact), nil
}

func (s *exportService) generate(ctx context.Context, period domain.Period, bounds domain.PeriodBounds, renderer portssvc.ReportRenderer) (*portssvc.ReportArtifact, error) {
	revenues, err := s.snapshotRepo.ListRevenues(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load revenue snapshot for export")
		return nil, err
	}
	expenses, err := s.snapshotRepo.ListExpenses(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expense snapshot for export")
		return nil, err
	}

	doc := BuildCashBookDocument(period.Label(),
		FilterByBounds(revenues, bounds),
		FilterByBounds(expenses, bounds))

	// Branding is fetched sequentially and fully before any page content is
	// written; a failed fetch only omits that image.
	doc.Branding = s.fetchBranding(ctx)

	artifact, err := renderer.Render(ctx, doc)
	if err != nil {
		s.LogError(ctx, err, "Report rendering failed",
			slog.String("period", period.Value))
		return nil, err
	}

	s.LogInfo(ctx, "Cash book export generated",
		slog.String("filename", artifact.Filename),
		slog.Int("bytes", len(artifact.Data)))
	return artifact, nil
}

func (s *exportService) fetchBranding(ctx context.Context) domain.ReportBranding {
	branding := domain.ReportBranding{}
	if s.branding == nil {
		return branding
	}

	fetch := func(url, kind string) *domain.BrandingImage {
		if url == "" {
			return nil
		}
		img, err := s.branding.Fetch(ctx, url)
		if err != nil {
			s.LogWarn(ctx, "Branding asset unavailable, omitting from report",
				slog.String("asset", kind),
				slog.String("error", err.Error()))
			return nil
		}
		return img
	}

	branding.Header = fetch(s.brandingURLs.Header, "header")
	branding.Watermark = fetch(s.brandingURLs.Watermark, "watermark")
	branding.Footer = fetch(s.brandingURLs.Footer, "footer")
	return branding
}

// BuildCashBookDocument assembles the renderer-independent report model from
// period-filtered revenue and expense entries. Line items are ordered by date,
// stable on the snapshot order, so the artifact is deterministic for a given
// snapshot.
func BuildCashBookDocument(periodLabel string, revenues, expenses []domain.Transaction) domain.ReportDocument {
	return domain.ReportDocument{
		Title:       "Lançamentos de Caixa",
		PeriodLabel: periodLabel,
		Sections: []domain.ReportSection{
			buildSection("Receitas", revenues),
			buildSection("Despesas", expenses),
		},
	}
}

func buildSection(title string, txns []domain.Transaction) domain.ReportSection {
	items := make([]domain.ReportLineItem, 0, len(txns))
	total := decimal.Zero
	for _, txn := range txns {
		date, _ := txn.NormalizedDate()
		items = append(items, domain.ReportLineItem{
			Date:        date,
			Description: txn.Description,
			Amount:      txn.Amount,
		})
		total = total.Add(txn.Amount)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date < items[j].Date
	})
	return domain.ReportSection{Title: title, Items: items, Total: total}
}

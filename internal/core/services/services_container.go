package services

import (
	portsrepo "github.com/ecogestor/ecogestor_backend/internal/core/ports/repositories"
	portssvc "github.com/ecogestor/ecogestor_backend/internal/core/ports/services"
	"github.com/ecogestor/ecogestor_backend/internal/platform/config"
)

// RendererProvider bundles the renderer backends and branding dependencies
// handed to the export service at wiring time.
type RendererProvider struct {
	PDF             portssvc.ReportRenderer
	HTML            portssvc.ReportRenderer
	BrandingFetcher portssvc.BrandingFetcher
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, renderers RendererProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Analytics = NewAnalyticsService(repos.Snapshot)
	container.Classification = NewClassificationService(repos.Snapshot)

	exportOptions := []ExportServiceOption{
		WithRenderer(portssvc.FormatPDF, renderers.PDF),
		WithRenderer(portssvc.FormatHTML, renderers.HTML),
	}
	if renderers.BrandingFetcher != nil {
		exportOptions = append(exportOptions, WithBrandingFetcher(renderers.BrandingFetcher, BrandingURLs{
			Header:    cfg.BrandingHeaderURL,
			Footer:    cfg.BrandingFooterURL,
			Watermark: cfg.BrandingWatermarkURL,
		}))
	}
	container.Export = NewExportService(repos.Snapshot, exportOptions...)

	return container
}

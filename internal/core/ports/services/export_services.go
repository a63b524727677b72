package services

import (
	"context"

	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
)

// ExportFormat selects the renderer backend for an export.
type ExportFormat string

const (
	FormatPDF  ExportFormat = "pdf"
	FormatHTML ExportFormat = "html"
)

// ReportArtifact is the finished export, ready to stream to the caller.
type ReportArtifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportRenderer turns a ReportDocument into an export artifact. The two
// backends (paginated PDF, flat print HTML) share this interface so layout
// logic stays renderer-specific while the data contract is shared.
type ReportRenderer interface {
	Render(ctx context.Context, doc domain.ReportDocument) (*ReportArtifact, error)
}

// BrandingFetcher retrieves an optional branding image. Implementations
// return an error wrapping apperrors.ErrMissingAsset when the asset cannot
// be fetched; callers omit the image and continue.
type BrandingFetcher interface {
	Fetch(ctx context.Context, url string) (*domain.BrandingImage, error)
}

// ExportService orchestrates cash book exports: period resolution, snapshot
// filtering, document assembly, branding fetch and rendering.
type ExportService interface {
	// ExportCashBook generates the export artifact for the given period and
	// format. Concurrent invocations with identical requester, period and
	// format share a single generation.
	ExportCashBook(ctx context.Context, requesterID string, period domain.Period, format ExportFormat) (*ReportArtifact, error)
}

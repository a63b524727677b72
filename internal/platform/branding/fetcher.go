// Package branding fetches the optional report images (header, footer,
// watermark) over HTTP. Assets live in external storage; a fetch failure only
// means the corresponding image is omitted from the report.
package branding

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ecogestor/ecogestor_backend/internal/apperrors"
	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
	portssvc "github.com/ecogestor/ecogestor_backend/internal/core/ports/services"
)

// maxAssetBytes caps a single branding image download.
const maxAssetBytes = 5 << 20

// Fetcher retrieves branding images with a bounded per-request timeout, so a
// stalled asset host delays an export by at most the timeout instead of
// blocking it indefinitely.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewFetcher creates a branding fetcher with the given per-asset timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:  &http.Client{},
		timeout: timeout,
	}
}

// Ensure Fetcher implements the BrandingFetcher interface
var _ portssvc.BrandingFetcher = (*Fetcher)(nil)

// Fetch downloads one branding image. Every failure wraps
// apperrors.ErrMissingAsset so callers can uniformly omit the asset.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*domain.BrandingImage, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid asset URL %q: %v", apperrors.ErrMissingAsset, url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %q: %v", apperrors.ErrMissingAsset, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetching %q: status %d", apperrors.ErrMissingAsset, url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %v", apperrors.ErrMissingAsset, url, err)
	}

	format, err := detectFormat(data)
	if err != nil {
		return nil, err
	}

	return &domain.BrandingImage{Data: data, Format: format}, nil
}

// detectFormat sniffs the image content type; only PNG and JPEG can be
// embedded in the report backends.
func detectFormat(data []byte) (string, error) {
	switch http.DetectContentType(data) {
	case "image/png":
		return "png", nil
	case "image/jpeg":
		return "jpg", nil
	default:
		return "", fmt.Errorf("%w: unsupported image format", apperrors.ErrMissingAsset)
	}
}

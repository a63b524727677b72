package pdf_test

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/ecogestor/ecogestor_backend/internal/adapters/render/pdf"
	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyPNG is a valid 1x1 PNG used as a stand-in branding asset.
var tinyPNG, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

var (
	pageCountPattern = regexp.MustCompile(`/Count (\d+)`)
	streamPattern    = regexp.MustCompile(`(?s)stream\n(.*?)endstream`)
	imageDrawPattern = regexp.MustCompile(`/I\d+ Do`)
	textOriginPat    = regexp.MustCompile(`BT (-?[\d.]+) (-?[\d.]+) Td`)
)

// pageContentStreams inflates the document's zlib streams and returns the
// ones carrying text operators, in page order.
func pageContentStreams(t *testing.T, data []byte) []string {
	t.Helper()
	var pages []string
	for _, match := range streamPattern.FindAllSubmatch(data, -1) {
		zr, err := zlib.NewReader(bytes.NewReader(match[1]))
		if err != nil {
			continue // image data, not a content stream
		}
		inflated, err := io.ReadAll(zr)
		zr.Close()
		if err != nil || !bytes.Contains(inflated, []byte(" Td")) {
			continue
		}
		pages = append(pages, string(inflated))
	}
	return pages
}

func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	match := pageCountPattern.FindSubmatch(data)
	require.NotNil(t, match, "PDF output carries a page tree")
	count, err := strconv.Atoi(string(match[1]))
	require.NoError(t, err)
	return count
}

func sampleDocument(itemsPerSection int) domain.ReportDocument {
	doc := domain.ReportDocument{
		Title:       "Lançamentos de Caixa",
		PeriodLabel: "2024-03",
	}
	for _, title := range []string{"Receitas", "Despesas"} {
		section := domain.ReportSection{Title: title}
		total := decimal.Zero
		for i := 0; i < itemsPerSection; i++ {
			amount := decimal.NewFromInt(int64(10 + i))
			section.Items = append(section.Items, domain.ReportLineItem{
				Date:        fmt.Sprintf("2024-03-%02d", i%28+1),
				Description: fmt.Sprintf("lançamento nº %d", i),
				Amount:      amount,
			})
			total = total.Add(amount)
		}
		section.Total = total
		doc.Sections = append(doc.Sections, section)
	}
	return doc
}

func TestRenderSmallDocument(t *testing.T) {
	renderer := pdf.NewRenderer()

	artifact, err := renderer.Render(context.Background(), sampleDocument(5))

	require.NoError(t, err)
	assert.Equal(t, "lancamentos_caixa_202403.pdf", artifact.Filename)
	assert.Equal(t, "application/pdf", artifact.ContentType)
	assert.True(t, strings.HasPrefix(string(artifact.Data), "%PDF-"))
	assert.Equal(t, 1, pageCount(t, artifact.Data))
}

func TestRenderPaginatesLargeDocument(t *testing.T) {
	renderer := pdf.NewRenderer()

	artifact, err := renderer.Render(context.Background(), sampleDocument(150))

	require.NoError(t, err)
	assert.GreaterOrEqual(t, pageCount(t, artifact.Data), 2, "300 line items cannot fit a single A4 page")
}

func TestRenderWithBranding(t *testing.T) {
	require.NotEmpty(t, tinyPNG)

	doc := sampleDocument(5)
	image := &domain.BrandingImage{Data: tinyPNG, Format: "png"}
	doc.Branding = domain.ReportBranding{Header: image, Footer: image, Watermark: image}

	renderer := pdf.NewRenderer()
	artifact, err := renderer.Render(context.Background(), doc)

	require.NoError(t, err)
	// Repeated page furniture never changes the content pagination.
	assert.Equal(t, 1, pageCount(t, artifact.Data))
}

func TestRenderFooterOnEveryPage(t *testing.T) {
	require.NotEmpty(t, tinyPNG)

	doc := sampleDocument(150)
	doc.Branding.Footer = &domain.BrandingImage{Data: tinyPNG, Format: "png"}

	renderer := pdf.NewRenderer()
	artifact, err := renderer.Render(context.Background(), doc)

	require.NoError(t, err)
	pages := pageContentStreams(t, artifact.Data)
	require.Equal(t, pageCount(t, artifact.Data), len(pages))
	require.GreaterOrEqual(t, len(pages), 2)
	for i, page := range pages {
		assert.Regexp(t, imageDrawPattern, page, "page %d carries the footer image", i+1)
	}
}

func TestRenderContinuationPagesClearHeader(t *testing.T) {
	require.NotEmpty(t, tinyPNG)

	doc := sampleDocument(150)
	doc.Branding.Header = &domain.BrandingImage{Data: tinyPNG, Format: "png"}

	renderer := pdf.NewRenderer()
	artifact, err := renderer.Render(context.Background(), doc)

	require.NoError(t, err)
	pages := pageContentStreams(t, artifact.Data)
	require.GreaterOrEqual(t, len(pages), 2)

	// The header image band ends 25.5mm from the top edge; text on
	// continuation pages must start below it. PDF text origins count up
	// from the bottom of the 297mm page in points.
	const mmToPt = 72.0 / 25.4
	maxTextY := (297.0 - 25.5) * mmToPt
	for i, page := range pages[1:] {
		for _, origin := range textOriginPat.FindAllStringSubmatch(page, -1) {
			y, err := strconv.ParseFloat(origin[2], 64)
			require.NoError(t, err)
			assert.LessOrEqual(t, y, maxTextY, "text overlaps the header band on page %d", i+2)
		}
	}
}

func TestRenderLongDescription(t *testing.T) {
	doc := sampleDocument(1)
	doc.Sections[0].Items[0].Description = strings.Repeat("relatório ambiental ", 30)

	renderer := pdf.NewRenderer()
	artifact, err := renderer.Render(context.Background(), doc)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(artifact.Data), "%PDF-"))
}

func TestRenderEmptyDocument(t *testing.T) {
	doc := domain.ReportDocument{Title: "Lançamentos de Caixa", PeriodLabel: "2024"}

	renderer := pdf.NewRenderer()
	artifact, err := renderer.Render(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, "lancamentos_caixa_2024.pdf", artifact.Filename)
	assert.Equal(t, 1, pageCount(t, artifact.Data))
}

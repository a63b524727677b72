// Package pdf implements the paginated report backend. It owns page breaks,
// margins and the repeated header/footer/watermark placement; the flat print
// backend in adapters/render/htmlprint shares the same ReportDocument input.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ecogestor/ecogestor_backend/internal/apperrors"
	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
	portssvc "github.com/ecogestor/ecogestor_backend/internal/core/ports/services"
	"github.com/ecogestor/ecogestor_backend/internal/utils"
	"github.com/go-pdf/fpdf"
)

const (
	pageMargin     = 15.0 // mm, all sides
	headerHeight   = 18.0 // mm, header image height; width follows aspect ratio
	footerHeight   = 12.0 // mm
	watermarkWidth = 100.0
	watermarkAlpha = 0.08
	lineHeight     = 6.0
	pageBreakY     = 265.0 // content past this Y starts a new page

	dateColWidth   = 28.0
	amountColWidth = 40.0

	// descriptionBudget is the fixed character budget for line item
	// descriptions; longer text is cut, not wrapped.
	descriptionBudget = 60
)

// Renderer is the paginated PDF backend.
type Renderer struct{}

// NewRenderer creates the PDF report renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Ensure Renderer implements the ReportRenderer interface
var _ portssvc.ReportRenderer = (*Renderer)(nil)

// Render lays out the document on A4 pages and returns the finished PDF.
func (r *Renderer) Render(_ context.Context, doc domain.ReportDocument) (*portssvc.ReportArtifact, error) {
	f := fpdf.New("P", "mm", "A4", "")
	f.SetMargins(pageMargin, pageMargin, pageMargin)
	// Page breaks are driven explicitly by the layout loop below.
	f.SetAutoPageBreak(false, 0)
	tr := f.UnicodeTranslatorFromDescriptor("")

	pageWidth, pageHeight := f.GetPageSize()

	header := registerImage(f, "header", doc.Branding.Header)
	footer := registerImage(f, "footer", doc.Branding.Footer)
	watermark := registerImage(f, "watermark", doc.Branding.Watermark)

	// The header func runs on every AddPage, so the watermark and header
	// image repeat identically on each page.
	f.SetHeaderFunc(func() {
		if watermark != nil {
			wmWidth, wmHeight := scaledExtent(watermark, watermarkWidth, 0)
			f.SetAlpha(watermarkAlpha, "Normal")
			f.ImageOptions("watermark",
				(pageWidth-wmWidth)/2, (pageHeight-wmHeight)/2,
				wmWidth, wmHeight, false, imgOptions(doc.Branding.Watermark), 0, "")
			f.SetAlpha(1.0, "Normal")
		}
		if header != nil {
			hdrWidth, hdrHeight := scaledExtent(header, 0, headerHeight)
			f.ImageOptions("header", pageMargin, pageMargin/2,
				hdrWidth, hdrHeight, false, imgOptions(doc.Branding.Header), 0, "")
		}
	})

	// Footer image is stamped at a fixed position on every generated page.
	f.SetFooterFunc(func() {
		if footer != nil {
			ftWidth, ftHeight := scaledExtent(footer, 0, footerHeight)
			f.ImageOptions("footer", (pageWidth-ftWidth)/2, pageHeight-pageMargin+1,
				ftWidth, ftHeight, false, imgOptions(doc.Branding.Footer), 0, "")
		}
	})

	f.AddPage()

	// Content starts below the header image on every page, including the
	// ones added by the pagination loop.
	top := pageMargin
	if header != nil {
		top += headerHeight
	}
	f.SetY(top)

	f.SetFont("Helvetica", "B", 14)
	f.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")
	f.SetFont("Helvetica", "", 11)
	f.CellFormat(0, 7, tr("Período: "+doc.PeriodLabel), "", 1, "C", false, 0, "")
	f.Ln(4)

	for _, section := range doc.Sections {
		r.writeSection(f, tr, section, top)
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: pdf assembly failed: %v", apperrors.ErrRenderUnavailable, err)
	}

	return &portssvc.ReportArtifact{
		Filename:    doc.BaseFilename() + ".pdf",
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}

func (r *Renderer) writeSection(f *fpdf.Fpdf, tr func(string) string, section domain.ReportSection, top float64) {
	r.breakPageIfNeeded(f, top)
	f.SetFont("Helvetica", "B", 12)
	f.CellFormat(0, 8, tr(section.Title), "", 1, "L", false, 0, "")

	f.SetFont("Helvetica", "", 10)
	contentWidth, _ := f.GetPageSize()
	contentWidth -= 2 * pageMargin

	for _, item := range section.Items {
		r.breakPageIfNeeded(f, top)
		f.CellFormat(dateColWidth, lineHeight, item.Date, "", 0, "L", false, 0, "")
		f.CellFormat(contentWidth-dateColWidth-amountColWidth, lineHeight,
			tr(truncate(item.Description, descriptionBudget)), "", 0, "L", false, 0, "")
		f.CellFormat(amountColWidth, lineHeight,
			utils.FormatAmountBR(item.Amount), "", 1, "R", false, 0, "")
	}

	r.breakPageIfNeeded(f, top)
	f.SetFont("Helvetica", "B", 10)
	f.CellFormat(contentWidth-amountColWidth, lineHeight, tr("Total "+section.Title), "", 0, "L", false, 0, "")
	f.CellFormat(amountColWidth, lineHeight, utils.FormatBRL(section.Total), "", 1, "R", false, 0, "")
	f.Ln(4)
}

// breakPageIfNeeded starts a new page when the vertical cursor has advanced
// past the content boundary, resetting the cursor below the header area.
func (r *Renderer) breakPageIfNeeded(f *fpdf.Fpdf, top float64) {
	if f.GetY() > pageBreakY {
		f.AddPage()
		f.SetY(top)
	}
}

func registerImage(f *fpdf.Fpdf, name string, img *domain.BrandingImage) *fpdf.ImageInfoType {
	if img == nil || len(img.Data) == 0 {
		return nil
	}
	return f.RegisterImageOptionsReader(name, imgOptions(img), bytes.NewReader(img.Data))
}

func imgOptions(img *domain.BrandingImage) fpdf.ImageOptions {
	return fpdf.ImageOptions{ImageType: strings.ToUpper(img.Format), ReadDpi: false}
}

// scaledExtent computes the drawn size of an image when one target dimension
// is fixed and the other follows the image's aspect ratio.
func scaledExtent(info *fpdf.ImageInfoType, targetWidth, targetHeight float64) (float64, float64) {
	width, height := info.Extent()
	if width == 0 || height == 0 {
		return targetWidth, targetHeight
	}
	if targetWidth == 0 {
		return width * targetHeight / height, targetHeight
	}
	return targetWidth, height * targetWidth / width
}

func truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget])
}

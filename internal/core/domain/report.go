package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ReportLineItem is a single printable row within a report section.
type ReportLineItem struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReportSection groups line items under a titled block with a running total.
type ReportSection struct {
	Title string           `json:"title"`
	Items []ReportLineItem `json:"items"`
	Total decimal.Decimal  `json:"total"`
}

// BrandingImage holds a fetched branding asset ready for embedding.
type BrandingImage struct {
	Data   []byte
	Format string // "png" or "jpg"
}

// ReportBranding carries the optional header, footer and watermark images.
// Each is independently optional; a nil entry is simply omitted.
type ReportBranding struct {
	Header    *BrandingImage
	Footer    *BrandingImage
	Watermark *BrandingImage
}

// ReportDocument is the renderer-independent report model. It is built
// transiently per export action from period-filtered records and discarded
// after the artifact is generated.
type ReportDocument struct {
	Title       string
	PeriodLabel string
	Sections    []ReportSection
	Branding    ReportBranding
}

// BaseFilename derives the deterministic artifact filename (without
// extension) from the period label, with separator characters stripped.
func (d ReportDocument) BaseFilename() string {
	label := strings.NewReplacer("-", "", "/", "", " ", "").Replace(d.PeriodLabel)
	return "lancamentos_caixa_" + label
}

// Package htmlprint implements the flat print backend: a single standalone
// HTML document that triggers the browser's native print flow, for
// environments where saving a PDF file is not available. The browser handles
// page breaks, so no pagination logic lives here.
package htmlprint

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/ecogestor/ecogestor_backend/internal/apperrors"
	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
	portssvc "github.com/ecogestor/ecogestor_backend/internal/core/ports/services"
	"github.com/ecogestor/ecogestor_backend/internal/utils"
	"github.com/shopspring/decimal"
)

var printTemplate = template.Must(template.New("print").Funcs(template.FuncMap{
	"brl": func(amount decimal.Decimal) string { return utils.FormatBRL(amount) },
}).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<title>{{.Title}} - {{.PeriodLabel}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 24px; color: #222; }
h1 { font-size: 18px; text-align: center; margin-bottom: 2px; }
p.period { text-align: center; margin-top: 0; }
h2 { font-size: 14px; margin-bottom: 4px; }
table { width: 100%; border-collapse: collapse; margin-bottom: 16px; }
th, td { border-bottom: 1px solid #ccc; padding: 4px 6px; font-size: 12px; text-align: left; }
td.amount, th.amount { text-align: right; white-space: nowrap; }
tr.total td { font-weight: bold; border-top: 2px solid #222; }
</style>
</head>
<body onload="window.print(); setTimeout(function() { window.close(); }, 300);">
<h1>{{.Title}}</h1>
<p class="period">Período: {{.PeriodLabel}}</p>
{{range .Sections}}
<h2>{{.Title}}</h2>
<table>
<tr><th>Data</th><th>Descrição</th><th class="amount">Valor</th></tr>
{{range .Items}}
<tr><td>{{.Date}}</td><td>{{.Description}}</td><td class="amount">{{brl .Amount}}</td></tr>
{{end}}
<tr class="total"><td colspan="2">Total {{.Title}}</td><td class="amount">{{brl .Total}}</td></tr>
</table>
{{end}}
</body>
</html>
`))

// Renderer is the flat HTML print backend.
type Renderer struct{}

// NewRenderer creates the print-HTML report renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Ensure Renderer implements the ReportRenderer interface
var _ portssvc.ReportRenderer = (*Renderer)(nil)

// Render produces the standalone print document. Rendering is all-or-nothing:
// the template executes into a buffer and nothing is returned on failure, so
// a blocked or failed print flow never sees partial HTML.
func (r *Renderer) Render(_ context.Context, doc domain.ReportDocument) (*portssvc.ReportArtifact, error) {
	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("%w: print document assembly failed: %v", apperrors.ErrRenderUnavailable, err)
	}

	return &portssvc.ReportArtifact{
		Filename:    doc.BaseFilename() + ".html",
		ContentType: "text/html; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

// Package pdf genera el reporte de inventario valorizado en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + empresa     │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / stock bajo / agotados / umbral         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Cant | Costo prom. | Últ. costo |   │
//	│         Valor | Estado                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: valor del inventario + QR de control                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
	"github.com/jhoicas/Electrotienda-api/internal/application/inventory"
)

var _ inventory.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 190, Green: 110, Blue: 0}
	colorDanger  = &props.Color{Red: 170, Green: 20, Blue: 20}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa inventory.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	company string
}

// NewMarotoReportGenerator construye el generador. company aparece en el encabezado.
func NewMarotoReportGenerator(company string) *MarotoReportGenerator {
	return &MarotoReportGenerator{company: company}
}

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(report *dto.InventoryReportResponse) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableItemRows(report.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, report *dto.InventoryReportResponse) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE INVENTARIO VALORIZADO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(company, "Electrotienda"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func summaryRow(report *dto.InventoryReportResponse) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 10, Top: 5}),
		)
	}
	return row.New(12).Add(
		cell("PRODUCTOS", fmt.Sprintf("%d", report.TotalProducts)),
		cell("STOCK BAJO", fmt.Sprintf("%d", report.LowStockItems)),
		cell("AGOTADOS", fmt.Sprintf("%d", report.OutOfStockItems)),
		cell("UMBRAL STOCK BAJO", fmt.Sprintf("%d", report.LowStockThreshold)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Cant.", 1, align.Right),
		h("Costo prom.", 2, align.Right),
		h("Últ. costo", 1, align.Right),
		h("Valor", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

func tableItemRows(items []dto.InventoryReportItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		cell := props.Text{Size: 7.5, Top: 1, Align: align.Right, Right: 1}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(it.SKU, props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(3).Add(text.New(it.Name, props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.CurrentQuantity), cell)),
			col.New(2).Add(text.New("$"+money(it.AverageCost), cell)),
			col.New(1).Add(text.New("$"+money(it.LastCost), cell)),
			col.New(2).Add(text.New("$"+money(it.TotalValue), cell)),
			col.New(1).Add(text.New(statusLabel(it.Status), props.Text{
				Size: 7, Top: 1, Align: align.Center, Style: fontstyle.Bold, Color: statusColor(it.Status),
			})),
		))
	}
	return result
}

func totalRow(report *dto.InventoryReportResponse) core.Row {
	control := fmt.Sprintf("INV|%s|%d|%s",
		report.GeneratedAt.UTC().Format("20060102T150405Z"),
		report.TotalProducts,
		report.TotalInventoryValue.StringFixed(2),
	)
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(control, props.Rect{Percent: 90, Center: true})),
		col.New(3),
		col.New(3).Add(text.New("VALOR DEL INVENTARIO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 4, Right: 2,
		})),
		col.New(3).Add(text.New("$"+money(report.TotalInventoryValue), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 4, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(status string) string {
	switch status {
	case dto.StockStatusLowStock:
		return "BAJO"
	case dto.StockStatusOutOfStock:
		return "AGOTADO"
	default:
		return "OK"
	}
}

func statusColor(status string) *props.Color {
	switch status {
	case dto.StockStatusLowStock:
		return colorWarn
	case dto.StockStatusOutOfStock:
		return colorDanger
	default:
		return colorGray
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con separador de miles "." y decimales ",": 1234567.5 → "1.234.567,50".
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	out := formatThousands(intPart) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// Package pdf maqueta el reporte de ventas con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del negocio        │  Fecha de generación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRONÓSTICO: próximo período | tendencia | media móvil      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA VENTAS: Período | Ventas                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA PRODUCTOS: Producto | Últ. ventas | Proy. | Stock |  │
//	│                   Reponer                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/application/reports"
)

var _ reports.SalesReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorUp      = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorDown    = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// MarotoReportGenerator implementa reports.SalesReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(_ context.Context, data reports.SalesReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		WithAuthor(data.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(forecastRows(data)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("SERIE DE VENTAS"))
	m.AddRows(tableHeader([]string{"Período", "Ventas"}, []int{8, 4}))
	if len(data.Series) == 0 {
		m.AddRows(emptyRow("Sin períodos registrados."))
	}
	for _, p := range data.Series {
		m.AddRows(row.New(6).Add(
			col.New(8).Add(text.New(p.Label, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(formatThousands(p.Value.StringFixed(2)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle(fmt.Sprintf("PRODUCTOS (%d por reponer)", outlookRestock(data.Outlook))))
	m.AddRows(tableHeader(
		[]string{"Producto", "Últ. ventas", "Proyección", "Stock", "Reponer"},
		[]int{4, 2, 2, 2, 2},
	))
	if data.Outlook == nil || len(data.Outlook.Items) == 0 {
		m.AddRows(emptyRow("Sin productos registrados."))
	} else {
		for _, o := range data.Outlook.Items {
			m.AddRows(productRow(o))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data reports.SalesReportData) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(data.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Reporte de ventas y stock", props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{Size: 9, Align: align.Right, Top: 7}),
		),
	)
}

func forecastRows(data reports.SalesReportData) []core.Row {
	f := data.Forecast
	trendColor := colorGray
	switch f.Trend {
	case "Up":
		trendColor = colorUp
	case "Down":
		trendColor = colorDown
	}
	return []core.Row{
		sectionTitle("PRONÓSTICO DEL PRÓXIMO PERÍODO"),
		row.New(12).Add(
			col.New(4).Add(
				text.New("Regresión lineal", props.Text{Size: 8, Color: colorGray}),
				text.New(formatThousands(strconv.FormatInt(f.PredictedNextValue, 10)), props.Text{Style: fontstyle.Bold, Size: 12, Top: 4}),
			),
			col.New(4).Add(
				text.New("Tendencia", props.Text{Size: 8, Color: colorGray}),
				text.New(f.Trend, props.Text{Style: fontstyle.Bold, Size: 12, Top: 4, Color: trendColor}),
			),
			col.New(4).Add(
				text.New(fmt.Sprintf("Media móvil (%d)", data.Window), props.Text{Size: 8, Color: colorGray}),
				text.New(formatThousands(strconv.FormatInt(data.MovingAverage, 10)), props.Text{Style: fontstyle.Bold, Size: 12, Top: 4}),
			),
		),
		row.New(7).Add(col.New(12).Add(
			text.New(f.Recommendation, props.Text{Size: 8, Style: fontstyle.Italic, Top: 1}),
		)),
	}
}

func productRow(o dto.ProductOutlookDTO) core.Row {
	restock := "—"
	if o.RestockNeeded {
		restock = formatThousands(strconv.FormatInt(o.SuggestedRestock, 10))
	}
	num := func(n int64) core.Component {
		return text.New(formatThousands(strconv.FormatInt(n, 10)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})
	}
	return row.New(6).Add(
		col.New(4).Add(text.New(o.Product, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(num(o.LastSales)),
		col.New(2).Add(num(o.Forecast)),
		col.New(2).Add(num(o.Stock)),
		col.New(2).Add(text.New(restock, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Style: fontstyle.Bold})),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols[i] = col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(cols...)
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1})))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func outlookRestock(o *dto.ProductOutlookResponse) int {
	if o == nil {
		return 0
	}
	return o.RestockCount
}

// formatThousands inserta separadores de miles en la parte entera.
// Ej: "25000" → "25.000", "1234567.50" → "1.234.567,50", "-1500" → "-1.500"
func formatThousands(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, frac = s[:i], ","+s[i+1:]
			break
		}
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}

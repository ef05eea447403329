// Package pdf genera el reporte de un costo en destino: líneas base, gastos individuales,
// líneas de valoración con costo final y el resultado de la verificación de cuadre.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del costo + estado │ Fecha + moneda         │
//	│  RECEPCIONES: pickings afectados                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  LÍNEAS BASE: Nombre | Método | Valor                        │
//	│  GASTOS INDIVIDUALES: Nombre | Productos | Valor             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VALORACIÓN: Línea | Cant | Anterior | Adicional | Final     │
//	│  TOTALES: líneas base / individuales / ajustes               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VERIFICACIÓN: cuadra o motivo del descuadre                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/landed-cost-api/internal/domain/entity"
	"github.com/jhoicas/landed-cost-api/internal/domain/landedcost"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorOK      = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorError   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var splitLabels = map[string]string{
	entity.SplitMethodEqual:              "Igual",
	entity.SplitMethodByQuantity:         "Por cantidad",
	entity.SplitMethodByCurrentCostPrice: "Por costo",
	entity.SplitMethodByWeight:           "Por peso",
	entity.SplitMethodByVolume:           "Por volumen",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa landedcost.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateLandedCostPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateLandedCostPDF(
	_ context.Context,
	cost *entity.LandedCost,
	check landedcost.CheckReport,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Costo en destino "+cost.Name, true).
		Build()

	m := maroto.New(cfg)
	places := cost.Currency.DecimalPlaces()

	m.AddRows(headerRow(cost))
	m.AddRows(pickingsRow(cost))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("LÍNEAS DE COSTO"))
	m.AddRows(tableHeaderRow([]column{{"Descripción", 6, align.Left}, {"Método", 3, align.Left}, {"Valor", 3, align.Right}}))
	for _, l := range cost.CostLines {
		m.AddRows(tableRow([]cell{
			{l.Name, 6, align.Left},
			{splitLabels[l.SplitMethod], 3, align.Left},
			{formatMoney(l.PriceUnit, places), 3, align.Right},
		}))
	}

	if len(cost.IndividualCostLines) > 0 {
		m.AddRows(line.NewRow(2))
		m.AddRows(sectionRow("GASTOS INDIVIDUALES"))
		m.AddRows(tableHeaderRow([]column{{"Descripción", 5, align.Left}, {"Productos", 4, align.Left}, {"Valor", 3, align.Right}}))
		for _, l := range cost.IndividualCostLines {
			m.AddRows(tableRow([]cell{
				{l.Name, 5, align.Left},
				{strings.Join(l.ProductIDs, ", "), 4, align.Left},
				{formatMoney(l.PriceUnit, places), 3, align.Right},
			}))
		}
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionRow("LÍNEAS DE VALORACIÓN"))
	m.AddRows(tableHeaderRow([]column{
		{"Línea", 4, align.Left},
		{"Cant.", 1, align.Center},
		{"Costo anterior", 2, align.Right},
		{"Adicional", 2, align.Right},
		{"Costo final", 3, align.Right},
	}))
	for _, v := range cost.ValuationAdjustmentLines {
		m.AddRows(tableRow([]cell{
			{v.Name, 4, align.Left},
			{v.Quantity.String(), 1, align.Center},
			{formatMoney(v.FormerCost, places), 2, align.Right},
			{formatMoney(v.AdditionalLandedCost, places), 2, align.Right},
			{formatMoney(v.FinalCost(), places), 3, align.Right},
		}))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(cost, places))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(checkRow(check, places))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre y estado (izq), fecha y moneda (der).
func headerRow(cost *entity.LandedCost) core.Row {
	state := "BORRADOR"
	if cost.IsDone() {
		state = "VALIDADO"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(cost.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+state, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COSTO EN DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+cost.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Moneda: "+cost.Currency.Code, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func pickingsRow(cost *entity.LandedCost) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("RECEPCIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(strings.Join(cost.PickingIDs, "   |   "), props.Text{Size: 7, Top: 5, Color: colorGray}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

type column struct {
	label string
	size  int
	align align.Type
}

type cell = column

// tableHeaderRow: cabecera de tabla con fondo azul simulado.
func tableHeaderRow(cols []column) core.Row {
	r := row.New(7).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		})))
	}
	return r
}

func tableRow(cells []cell) core.Row {
	r := row.New(6)
	for _, c := range cells {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return r
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(cost *entity.LandedCost, places int32) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 10, Right: right,
		})
	}

	return row.New(18).Add(
		col.New(4),
		col.New(4).Add(
			label("Líneas de costo:"),
			text.New("Gastos individuales:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
			grand("TOTAL AJUSTES:", 2),
		),
		col.New(4).Add(
			value(formatMoney(cost.AmountTotal(), places)),
			text.New(formatMoney(cost.IndividualTotal(), places), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			grand(formatMoney(cost.TotalAdjustments(), places), 1),
		),
	)
}

// checkRow: resultado de la verificación de cuadre.
func checkRow(check landedcost.CheckReport, places int32) core.Row {
	if check.OK {
		return row.New(10).Add(col.New(12).Add(
			text.New("Verificación: los ajustes cuadran con el total del costo.", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorOK, Top: 2,
			}),
		))
	}
	detail := fmt.Sprintf("Motivo: %s   |   Esperado: %s   |   Obtenido: %s",
		check.Reason, formatMoney(check.Expected, places), formatMoney(check.Actual, places))
	if check.CostLineID != "" {
		detail += "   |   Línea: " + check.CostLineID
	}
	return row.New(14).Add(col.New(12).Add(
		text.New("Verificación: los ajustes NO cuadran con el total del costo.", props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorError, Top: 2,
		}),
		text.New(detail, props.Text{Size: 8, Color: colorGray, Top: 8}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 25000 → "$25.000", 1234.5 con 2 decimales → "$1.234,50"
func formatMoney(d decimal.Decimal, places int32) string {
	s := d.Abs().StringFixed(places)
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+len(frac)+3)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	buf = append(buf, '$')
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac != "" {
		buf = append(buf, ',')
		buf = append(buf, frac...)
	}
	return string(buf)
}

// Package pdf genera el reporte imprimible de pedidos usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de emisión            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Cliente | Tienda | Producto | Unid. | Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: total de pedidos y unidades                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/retail-ops/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// OrdersReportGenerator produce el reporte de pedidos en PDF.
type OrdersReportGenerator struct{}

// NewOrdersReportGenerator construye el generador.
func NewOrdersReportGenerator() *OrdersReportGenerator { return &OrdersReportGenerator{} }

// Generate genera el PDF y devuelve sus bytes. El título ya viene armado por
// el llamador (incluye el nombre del operador que exporta).
func (g *OrdersReportGenerator) Generate(
	_ context.Context,
	title string,
	rows []repository.OrderReportRow,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor("retail-ops", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	var totalUnits int64
	for _, r := range rows {
		m.AddRows(detailRow(r))
		totalUnits += r.Units
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(rows), totalUnits))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de emisión (der).
func headerRow(title string) core.Row {
	emitted := time.Now().Format("02/01/2006 15:04")

	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("REPORTE DE PEDIDOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+emitted, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de pedidos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N°", 1, align.Center),
		h("Cliente", 3, align.Left),
		h("Tienda", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Unid.", 1, align.Right),
		h("Fecha", 2, align.Right),
	)
}

// detailRow: una fila por pedido.
func detailRow(r repository.OrderReportRow) core.Row {
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		cell(fmt.Sprintf("%d", r.Number), 1, align.Center),
		cell(r.CustomerName, 3, align.Left),
		cell(fmt.Sprintf("%d: %s", r.StoreID, r.StoreName), 2, align.Left),
		cell(r.ProductName, 3, align.Left),
		cell(fmt.Sprintf("%d", r.Units), 1, align.Right),
		cell(r.OrderTime.Format("02/01/2006 15:04"), 2, align.Right),
	)
}

// footerRow: totales del reporte.
func footerRow(orders int, units int64) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(
				fmt.Sprintf("Total: %d pedido(s), %d unidad(es).", orders, units),
				props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2},
			),
		),
	)
}

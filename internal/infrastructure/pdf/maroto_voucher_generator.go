// Package pdf implementa la generación del Comprobante de Movimiento de
// Inventario: la representación imprimible de un movimiento ya aceptado por
// el servicio de bodega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de movimiento  │  N° Movimiento + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BODEGAS: origen / destino + referencia                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Lote/Serial | Estantería | Costo Unit | Total│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades / valor estimado del movimiento          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoVoucherGenerator implementa capture.VoucherGenerator usando Maroto v2.
type MarotoVoucherGenerator struct{}

// NewMarotoVoucherGenerator construye el generador.
func NewMarotoVoucherGenerator() *MarotoVoucherGenerator { return &MarotoVoucherGenerator{} }

// GenerateMovementVoucher genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoVoucherGenerator) GenerateMovementVoucher(
	req *entity.MovementRequest,
	receipt *entity.MovementReceipt,
	product entity.Product,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Movimiento de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(req, receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(warehousesRow(req, product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(req) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(req))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

var movementTypeLabels = map[string]string{
	entity.MovementTypeIN:  "RECEPCIÓN DE INVENTARIO",
	entity.MovementTypeOUT: "SALIDA DE INVENTARIO",
	entity.MovementTypeTRF: "TRASLADO ENTRE BODEGAS",
	entity.MovementTypeADJ: "AJUSTE DE INVENTARIO",
}

// headerRow: tipo de movimiento (izq) y N° + fecha aceptada (der).
func headerRow(req *entity.MovementRequest, receipt *entity.MovementReceipt) core.Row {
	label := movementTypeLabels[req.Type]
	if label == "" {
		label = req.Type
	}
	fecha := receipt.MovementDate.Format("02/01/2006 15:04")

	return row.New(16).Add(
		col.New(7).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ref: "+receipt.ReferenceNumber, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE MOVIMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", receipt.MovementID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// warehousesRow: bodegas involucradas y producto del movimiento.
func warehousesRow(req *entity.MovementRequest, product entity.Product) core.Row {
	origen := "—"
	if req.FromWarehouseID != nil {
		origen = fmt.Sprintf("Bodega %d", *req.FromWarehouseID)
	}
	destino := "—"
	if req.ToWarehouseID != nil {
		destino = fmt.Sprintf("Bodega %d", *req.ToWarehouseID)
	}

	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DEL MOVIMIENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Producto: %s — %s", product.SKU, product.Name), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Origen: %s   |   Destino: %s   |   Modo: %s",
				origen, destino, req.LineMode,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Lote / Serial", 4, align.Left),
		h("Estantería", 3, align.Left),
		h("Costo Unit.", 3, align.Right),
	)
}

// tableLineRows: una fila por línea del movimiento.
func tableLineRows(req *entity.MovementRequest) []core.Row {
	result := make([]core.Row, 0, len(req.Lines))
	for _, ln := range req.Lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				ln.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				lineIdentity(ln),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				nonEmpty(ln.LocationCode, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				lineCost(ln),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: unidades y valor estimado del movimiento.
func totalsRow(req *entity.MovementRequest) core.Row {
	total := decimal.Zero
	for _, ln := range req.Lines {
		if ln.UnitCost != nil {
			total = total.Add(ln.Quantity.Mul(*ln.UnitCost))
		}
	}

	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	return row.New(14).Add(
		col.New(4),
		col.New(4).Add(
			label("Unidades:", 2),
			label("Valor estimado:", 8),
		),
		col.New(4).Add(
			value(req.TotalQuantity().String(), 2),
			value("$"+total.StringFixed(2), 8),
		),
	)
}

// lineIdentity: identidad de la línea según el modo (lote, serial o producto).
func lineIdentity(ln entity.MovementLine) string {
	switch {
	case ln.BatchNumber != "":
		return "Lote " + ln.BatchNumber
	case ln.BatchID != nil:
		return fmt.Sprintf("Lote #%d", *ln.BatchID)
	case ln.SerialNumber != "":
		return "Serial " + ln.SerialNumber
	case ln.SerialID != nil:
		return fmt.Sprintf("Serial #%d", *ln.SerialID)
	default:
		return fmt.Sprintf("Producto #%d", ln.ProductID)
	}
}

func lineCost(ln entity.MovementLine) string {
	if ln.UnitCost == nil {
		return "—"
	}
	return "$" + ln.UnitCost.StringFixed(2)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

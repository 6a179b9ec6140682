// Package pdf implementa la generación del recibo de venta en PDF.
//
// Layout de la página (media carta, apaisado angosto estilo ticket):
//
//	┌─────────────────────────────────────────────┐
//	│  HEADER: Nombre del local │ N° Pedido+Fecha │
//	│  ─────────────────────────────────────────  │
//	│  Cajero: nombre                              │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal  │
//	│  ─────────────────────────────────────────  │
//	│  TOTAL                                       │
//	│  Pago: método / tarjeta enmascarada          │
//	│  FOOTER: referencia + QR                     │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

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

	"github.com/tu-usuario/pasteleria-pos/internal/application/ports"
)

var (
	colorPrimary = &props.Color{Red: 130, Green: 60, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa ports.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	shopName string
}

// NewMarotoReceiptGenerator construye el generador con el nombre del local
// que encabeza el recibo.
func NewMarotoReceiptGenerator(shopName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{shopName: shopName}
}

// GenerateReceipt genera el recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(data ports.ReceiptData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de venta", true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(cashierRow(data))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(data))
	m.AddRows(paymentRow(data))

	m.AddRows(line.NewRow(2))
	for _, r := range footerRows(data) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del local (izq) y número de pedido + fecha (der).
func (g *MarotoReceiptGenerator) headerRow(data ports.ReceiptData) core.Row {
	fecha := data.OrderDate.Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Recibo de venta", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PEDIDO N° "+strconv.FormatInt(data.OrderID, 10), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New(fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func cashierRow(data ports.ReceiptData) core.Row {
	name := data.CashierName
	if name == "" {
		name = "—"
	}
	return row.New(7).Add(col.New(12).Add(
		text.New("Atendido por: "+name, props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("P.Unit", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func tableLineRows(lines []ports.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				strconv.Itoa(l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(3).Add(text.New(
				"$"+l.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
		))
	}
	return result
}

func totalRow(data ports.ReceiptData) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("$"+data.TotalPrice.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Top: 2,
		})),
	)
}

func paymentRow(data ports.ReceiptData) core.Row {
	detail := "Pago: " + data.PaymentMethod
	if data.CardNumber != nil {
		detail += "  " + *data.CardNumber
	}
	return row.New(7).Add(col.New(12).Add(
		text.New(detail, props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

// footerRows: referencia del cobro + QR para reimpresión.
func footerRows(data ports.ReceiptData) []core.Row {
	return []core.Row{
		row.New(5).Add(col.New(12).Add(
			text.New("Referencia: "+data.Reference, props.Text{
				Size: 7, Color: colorGray, Top: 1,
			}),
		)),
		row.New(30).Add(
			col.New(4).Add(code.NewQr(data.Reference, props.Rect{
				Percent: 90,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Gracias por su compra.\nConserve este recibo para cambios o devoluciones.", props.Text{
					Size: 8, Top: 8, Left: 3, Color: colorGray,
				}),
			),
		),
	}
}

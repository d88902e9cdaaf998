// Package pdf genera el comprobante de venta (recibo) en PDF.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────┐
//	│  HEADER: Tienda        │  N° venta + Fecha │
//	│  Cajero / Cliente / Mesa / Pago            │
//	│  ───────────────────────────────────────── │
//	│  TABLA: Cant | Producto | P.Unit | Total   │
//	│  ───────────────────────────────────────── │
//	│  TOTAL                                     │
//	│  QR con el id de la venta                  │
//	└───────────────────────────────────────────┘
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

var _ sales.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReceiptGenerator implementa sales.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	storeName string
	currency  string
	printer   *message.Printer
}

// NewMarotoReceiptGenerator construye el generador. lang define separadores de miles y decimales.
func NewMarotoReceiptGenerator(storeName, currency string, lang language.Tag) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{
		storeName: storeName,
		currency:  currency,
		printer:   message.NewPrinter(lang),
	}
}

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(tx *entity.Transaction, items []*entity.TransactionItem) ([]byte, error) {
	if tx == nil {
		return nil, fmt.Errorf("pdf: transacción nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(tx))
	m.AddRows(g.infoRow(tx))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.itemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(tx))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(tx))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReceiptGenerator) headerRow(tx *entity.Transaction) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("COMPROBANTE DE VENTA", props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(shortID(tx.ID), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New(tx.TransactionDate.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoReceiptGenerator) infoRow(tx *entity.Transaction) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Cajero: %s   |   Pago: %s   |   Estado: %s",
				nonEmpty(tx.UserName, "—"),
				nonEmpty(tx.PaymentMethod, "—"),
				tx.Status,
			), props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New(fmt.Sprintf("Cliente: %s   |   Tel: %s   |   Mesa: %s",
				nonEmptyPtr(tx.CustomerName, "—"),
				nonEmptyPtr(tx.CustomerPhone, "—"),
				nonEmptyPtr(tx.TableNumber, "—"),
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("P. Unit.", 3, align.Right),
		h("Total", 3, align.Right),
	)
}

func (g *MarotoReceiptGenerator) itemRows(items []*entity.TransactionItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				nonEmpty(it.ProductName, it.ProductID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				g.formatMoney(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				g.formatMoney(it.TotalPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func (g *MarotoReceiptGenerator) totalRow(tx *entity.Transaction) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 1,
		})),
		col.New(3).Add(text.New(g.formatMoney(tx.TotalAmount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 1,
		})),
	)
}

func footerRow(tx *entity.Transaction) core.Row {
	return row.New(30).Add(
		col.New(4).Add(code.NewQr(tx.ID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Gracias por su compra.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 6, Left: 3, Color: colorPrimary,
			}),
			text.New("ID: "+tx.ID, props.Text{
				Size: 6.5, Top: 14, Left: 3, Color: colorGray,
			}),
		),
	)
}

// formatMoney formatea con separadores del idioma configurado y dos decimales.
func (g *MarotoReceiptGenerator) formatMoney(d decimal.Decimal) string {
	s := g.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
	if g.currency == "" {
		return s
	}
	return g.currency + " " + s
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func nonEmptyPtr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return nonEmpty(strings.TrimSpace(*s), fallback)
}

// shortID primeros 8 caracteres del UUID, suficiente para identificar la venta en mostrador.
func shortID(id string) string {
	if len(id) > 8 {
		return "#" + strings.ToUpper(id[:8])
	}
	return "#" + strings.ToUpper(id)
}

// Package pdf implementa la representación imprimible de facturas y
// cotizaciones con el NCF asignado por la DGII.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + RNC  │  NCF + Fecha                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + RNC/Cédula + contacto                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | ITBIS | Importe       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / ITBIS / TOTAL              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Leyenda fiscal                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	appbilling "github.com/quimidom/quimidom-api/internal/application/billing"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/pkg/moneyfmt"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 12, Green: 84, Blue: 96}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF de una factura y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	tenant *entity.Tenant,
	invoice *entity.Invoice,
	customer *entity.Customer,
	lines []appbilling.LineForPDF,
) ([]byte, error) {
	m := newDocument(tenant, "Factura")

	docNumber := invoice.NCF
	docTitle := "FACTURA CON NCF"
	if invoice.Status == entity.InvoiceStatusDraft {
		docNumber = "BORRADOR"
		docTitle = "FACTURA (SIN EMITIR)"
	}
	m.AddRows(headerRow(tenant, docTitle, docNumber, invoice.IssueDate.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice.Subtotal, invoice.DiscountAmount, invoice.TaxAmount, invoice.TotalAmount))

	if invoice.Status == entity.InvoiceStatusVoided {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New(fmt.Sprintf("ANULADA — %s", invoice.VoidedReason), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center, Color: colorRed, Top: 2,
			}),
		)))
	}

	m.AddRows(legendRows(invoice.NCF)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar factura: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateQuotePDF genera el PDF de una cotización y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateQuotePDF(
	_ context.Context,
	tenant *entity.Tenant,
	quote *entity.Quote,
	customer *entity.Customer,
	lines []appbilling.LineForPDF,
) ([]byte, error) {
	m := newDocument(tenant, "Cotización")

	m.AddRows(headerRow(tenant, "COTIZACIÓN", quote.ID[:8], quote.QuoteDate.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(quote.Subtotal, quote.DiscountAmount, quote.TaxAmount, quote.TotalAmount))

	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Válida hasta: "+quote.ValidUntil.Format("02/01/2006")+
			". Esta cotización no constituye comprobante fiscal.", props.Text{
			Size: 7, Color: colorGray, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cotización: %w", err)
	}
	return doc.GetBytes(), nil
}

func newDocument(tenant *entity.Tenant, title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(tenant.Name, true).
		Build()
	return maroto.New(cfg)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + RNC (izq) y tipo de documento + número + fecha (der).
func headerRow(tenant *entity.Tenant, docTitle, docNumber, fecha string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(tenant.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RNC: "+tenant.RNC, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(docTitle, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(docNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente.
func customerRow(customer *entity.Customer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("RNC/Cédula: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(customer.RNC, "—"),
				nonEmpty(customer.Email, "—"),
				nonEmpty(customer.Phone, "—"),
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
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("ITBIS%", 1, align.Center),
		h("Importe", 3, align.Right),
	)
}

// tableLineRows: una fila por línea del documento.
func tableLineRows(lines []appbilling.LineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		desc := l.ProductName
		if l.Unit != "" {
			desc = fmt.Sprintf("%s (%s)", l.ProductName, l.Unit)
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				l.Item.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				desc,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				moneyfmt.DOP(l.Item.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.Item.TaxRate.StringFixed(0)+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				moneyfmt.DOP(l.Item.TotalAmount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(subtotal, discount, tax, total decimal.Decimal) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(d decimal.Decimal) core.Component {
		return text.New(moneyfmt.DOP(d), props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := text.New("TOTAL A PAGAR:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
	})
	grandValue := text.New(moneyfmt.DOP(total), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
	})

	return row.New(30).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			label("Descuento:"),
			label("ITBIS:"),
			grandLabel,
		),
		col.New(3).Add(
			value(subtotal),
			value(discount),
			value(tax),
			grandValue,
		),
		col.New(3),
	)
}

// legendRows: leyenda fiscal al pie de la factura.
func legendRows(ncf string) []core.Row {
	rows := []core.Row{
		row.New(3),
		line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}),
	}
	if ncf != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("NCF: "+ncf, props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1,
			}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Comprobante fiscal emitido conforme a la normativa de la DGII "+
				"(Norma General 06-2018). Conserve este documento como soporte fiscal.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

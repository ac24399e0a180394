// Package pdf genera la representación gráfica de los documentos de venta
// (pedido, cotización y nota de entrega) con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  Tipo de documento + Número + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | Desc% | P.Unit | Subtotal      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuesto / TOTAL           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS + pie                                                │
//	└─────────────────────────────────────────────────────────────┘
//
// Los totales se copian de lo almacenado; aquí nunca se recalcula nada.
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// CompanyInfo datos fijos de la empresa que encabezan cada documento.
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// MarotoDocumentGenerator implementa sales.DocumentGenerator usando Maroto v2.
type MarotoDocumentGenerator struct {
	company  CompanyInfo
	currency string
}

// NewMarotoDocumentGenerator construye el generador.
func NewMarotoDocumentGenerator(company CompanyInfo, currency string) *MarotoDocumentGenerator {
	return &MarotoDocumentGenerator{company: company, currency: currency}
}

var _ sales.DocumentGenerator = (*MarotoDocumentGenerator)(nil)

// OrderInvoice genera el PDF del recibo de un pedido.
func (g *MarotoDocumentGenerator) OrderInvoice(doc *sales.OrderDocument) ([]byte, error) {
	order := doc.Order
	m := g.newDocument("Pedido " + order.OrderNumber)

	m.AddRows(g.headerRow("PEDIDO DE VENTA", order.OrderNumber, order.OrderDate.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.customerRow(order.CustomerName, order.Phone, order.Email))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, it := range doc.Items {
		m.AddRows(itemRow(it.Quantity, it.ProductName, it.DiscountPercent, it.UnitPrice, it.Subtotal, g.currency))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(order.Subtotal, order.Discount, order.TaxPercent, order.TaxAmount, order.GrandTotal))

	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Pago: %s   |   Estado: %s   |   Entrega: %s",
			order.PaymentStatus, order.OrderStatus, order.DeliveryStatus),
			props.Text{Size: 8, Color: colorGray, Top: 2}),
	)))
	if order.Notes != "" {
		m.AddRows(notesRow(order.Notes))
	}

	return generate(m)
}

// QuotationDocument genera el PDF de una cotización.
func (g *MarotoDocumentGenerator) QuotationDocument(doc *sales.QuotationDocument) ([]byte, error) {
	quotation := doc.Quotation
	m := g.newDocument("Cotización " + quotation.QuotationNumber)

	m.AddRows(g.headerRow("COTIZACIÓN", quotation.QuotationNumber, quotation.CreatedAt.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.customerRow(quotation.CustomerName, quotation.Phone, quotation.Email))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, it := range doc.Items {
		m.AddRows(itemRow(it.Quantity, it.ProductName, it.DiscountPercent, it.UnitPrice, it.Subtotal, g.currency))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(quotation.Subtotal, quotation.Discount, quotation.TaxPercent, quotation.TaxAmount, quotation.GrandTotal))

	validity := "Esta cotización no compromete inventario."
	if quotation.ValidUntil != nil {
		validity = "Válida hasta el " + quotation.ValidUntil.Format("02/01/2006") + ". No compromete inventario."
	}
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(validity, props.Text{Size: 8, Color: colorGray, Top: 2}),
	)))
	if quotation.Notes != "" {
		m.AddRows(notesRow(quotation.Notes))
	}

	return generate(m)
}

// DeliveryNote genera el PDF de una nota de entrega, con línea de firma.
func (g *MarotoDocumentGenerator) DeliveryNote(doc *sales.DeliveryNoteDocument) ([]byte, error) {
	delivery := doc.Delivery
	m := g.newDocument("Entrega " + delivery.DeliveryNumber)

	m.AddRows(g.headerRow("NOTA DE ENTREGA", delivery.DeliveryNumber, delivery.CreatedAt.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.customerRow(delivery.CustomerName, delivery.Phone, ""))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Dirección de entrega: "+delivery.DeliveryAddress, props.Text{Size: 9, Top: 2}),
	)))
	if doc.OrderNumber != "" {
		m.AddRows(row.New(5).Add(col.New(12).Add(
			text.New("Pedido asociado: "+doc.OrderNumber, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(deliveryTableHeaderRow())
	for _, it := range doc.Items {
		m.AddRows(deliveryItemRow(it, g.currency))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Estado: "+delivery.Status, props.Text{Size: 8, Color: colorGray, Top: 2}),
	)))
	if delivery.Notes != "" {
		m.AddRows(notesRow(delivery.Notes))
	}

	// Línea de firma del receptor
	m.AddRows(line.NewRow(14))
	m.AddRows(row.New(10).Add(
		col.New(5).Add(
			text.New("_______________________________", props.Text{Size: 9, Top: 1}),
			text.New("Recibido por (nombre y firma)", props.Text{Size: 7, Color: colorGray, Top: 6}),
		),
		col.New(7),
	))

	return generate(m)
}

// ── secciones compartidas ──

func (g *MarotoDocumentGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.company.Name, true).
		Build()
	return maroto.New(cfg)
}

func (g *MarotoDocumentGenerator) headerRow(docType, number, date string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Tel: %s   |   %s",
				nonEmpty(g.company.Address, "—"),
				nonEmpty(g.company.Phone, "—"),
				nonEmpty(g.company.Email, "—"),
			), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(docType, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+date, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoDocumentGenerator) customerRow(name, phone, email string) core.Row {
	contact := "Tel: " + nonEmpty(phone, "—")
	if email != "" {
		contact += "   |   Email: " + email
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Desc.%", 1, align.Center),
		h("P. Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func itemRow(quantity int, name string, discountPercent, unitPrice, subtotal decimal.Decimal, currency string) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(fmt.Sprintf("%d", quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(5).Add(text.New(name,
			props.Text{Size: 8, Align: align.Left, Top: 1})),
		col.New(1).Add(text.New(discountPercent.StringFixed(0)+"%",
			props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(formatMoney(unitPrice, currency),
			props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(formatMoney(subtotal, currency),
			props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

func deliveryTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Descripción", 7, align.Left),
		h("P. Unit.", 3, align.Right),
	)
}

func deliveryItemRow(it *entity.DeliveryItem, currency string) core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(7).Add(text.New(it.ProductName,
			props.Text{Size: 8, Align: align.Left, Top: 1})),
		col.New(3).Add(text.New(formatMoney(it.UnitPrice, currency),
			props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

func (g *MarotoDocumentGenerator) totalsRow(subtotal, discount, taxPercent, taxAmount, grandTotal decimal.Decimal) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
	})
	grandValue := text.New(formatMoney(grandTotal, g.currency), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
	})

	return row.New(32).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:"),
			label("Descuento:"),
			label(fmt.Sprintf("Impuesto (%s%%):", taxPercent.StringFixed(0))),
			grandLabel,
		),
		col.New(4).Add(
			value(formatMoney(subtotal, g.currency)),
			value("-"+formatMoney(discount, g.currency)),
			value(formatMoney(taxAmount, g.currency)),
			grandValue,
		),
	)
}

func notesRow(notes string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Notas: "+notes, props.Text{Size: 8, Color: colorGray, Top: 2}),
	))
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── helpers ──

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

var moneyPrinter = message.NewPrinter(language.English)

// formatMoney "KSH 1,250.00": separador de miles y dos decimales fijos.
func formatMoney(d decimal.Decimal, currency string) string {
	f, _ := d.Float64()
	return moneyPrinter.Sprintf("%s %.2f", currency, f)
}

package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
)

// Totals totales de un documento (pedido o cotización).
type Totals struct {
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	GrandTotal decimal.Decimal
}

// IsNegative indica si el total quedó por debajo de cero (descuento mayor que
// subtotal+impuesto). La aritmética lo permite; el caso de uso lo registra
// como condición de advertencia en lugar de aceptarlo en silencio.
func (t Totals) IsNegative() bool {
	return t.GrandTotal.LessThan(decimal.Zero)
}

// ComputeTotals agrega subtotales de línea en los totales del documento:
//
//	subtotal    = Σ subtotales de línea
//	tax_amount  = RoundBank(subtotal * tax_percent / 100, 2)
//	grand_total = subtotal - discount + tax_amount
//
// Es determinista: la misma entrada produce siempre los mismos totales, lo que
// hace reproducibles el PDF y la auditoría. Discount es un monto fijo >= 0 y
// taxPercent está en [0,100]; una lista vacía es válida aquí (subtotal cero) y
// debe rechazarse antes, en el ensamblado del documento.
func ComputeTotals(lineSubtotals []decimal.Decimal, discount, taxPercent decimal.Decimal) (Totals, error) {
	if discount.LessThan(decimal.Zero) {
		return Totals{}, domain.ErrInvalidInput
	}
	if taxPercent.LessThan(decimal.Zero) || taxPercent.GreaterThan(oneHundred) {
		return Totals{}, domain.ErrInvalidInput
	}

	subtotal := decimal.Zero
	for _, s := range lineSubtotals {
		subtotal = subtotal.Add(s)
	}
	subtotal = subtotal.RoundBank(2)
	taxAmount := subtotal.Mul(taxPercent).Div(oneHundred).RoundBank(2)
	grandTotal := subtotal.Sub(discount).Add(taxAmount).RoundBank(2)

	return Totals{
		Subtotal:   subtotal,
		TaxAmount:  taxAmount,
		GrandTotal: grandTotal,
	}, nil
}

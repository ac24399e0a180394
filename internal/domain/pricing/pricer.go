// Package pricing concentra la aritmética monetaria de líneas y totales.
// Todo importe se redondea a 2 decimales con redondeo bancario (half-to-even,
// decimal.RoundBank) y ese mismo redondeo se aplica en cualquier punto donde
// se calculen totales, para que los valores persistidos sean reproducibles.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// LineInput entrada para calcular el subtotal de una línea.
type LineInput struct {
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal // [0,100]; cero si no hay descuento
}

// Validate rechaza cantidades o precios negativos y descuentos fuera de [0,100].
// El ensamblado del documento debe rechazar el documento completo ante el
// primer error, sin sustituir valores por defecto.
func (in LineInput) Validate() error {
	if in.Quantity < 0 {
		return domain.ErrInvalidInput
	}
	if in.UnitPrice.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.DiscountPercent.LessThan(decimal.Zero) || in.DiscountPercent.GreaterThan(oneHundred) {
		return domain.ErrInvalidInput
	}
	return nil
}

// LineSubtotal calcula quantity * unit_price * (1 - discount_percent/100),
// redondeado a 2 decimales (RoundBank). Con descuento 100 el resultado es 0.00
// exacto sin importar cantidad ni precio.
func LineSubtotal(in LineInput) (decimal.Decimal, error) {
	if err := in.Validate(); err != nil {
		return decimal.Decimal{}, err
	}
	qty := decimal.NewFromInt(int64(in.Quantity))
	factor := decimal.NewFromInt(1).Sub(in.DiscountPercent.Div(oneHundred))
	return qty.Mul(in.UnitPrice).Mul(factor).RoundBank(2), nil
}

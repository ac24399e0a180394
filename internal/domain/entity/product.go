package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock actual.
// StockQuantity es un entero no negativo; solo se muta vía el ledger de stock
// (reserva en pedidos o ajuste manual), nunca directamente.
type Product struct {
	ID            string
	Name          string
	SKU           string // código único, opcional
	BuyingPrice   decimal.Decimal
	SellingPrice  decimal.Decimal
	StockQuantity int
	CategoryID    string // vacío = sin categoría
	Description   string
	MinStockLevel int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el stock está en o por debajo del mínimo configurado.
func (p *Product) IsLowStock() bool {
	return p.MinStockLevel > 0 && p.StockQuantity <= p.MinStockLevel
}

// IsOutOfStock indica si no queda stock.
func (p *Product) IsOutOfStock() bool {
	return p.StockQuantity <= 0
}

// ProfitMargin ganancia unitaria (venta - compra). Si no hay precio de compra, es el precio de venta.
func (p *Product) ProfitMargin() decimal.Decimal {
	if p.BuyingPrice.GreaterThan(decimal.Zero) {
		return p.SellingPrice.Sub(p.BuyingPrice)
	}
	return p.SellingPrice
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportRangeRequest rango de fechas para reportes (inclusive desde, exclusivo hasta).
type ReportRangeRequest struct {
	From string `query:"from"` // YYYY-MM-DD
	To   string `query:"to"`   // YYYY-MM-DD
}

// SalesSummaryResponse resumen de ventas del período.
type SalesSummaryResponse struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	OrderCount    int             `json:"order_count"`
	Revenue       decimal.Decimal `json:"revenue"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	Profit        decimal.Decimal `json:"profit"`
	Currency      string          `json:"currency"`
}

// ProductPerformanceRow ventas agregadas de un producto.
type ProductPerformanceRow struct {
	ProductID   string          `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
	Profit      decimal.Decimal `json:"profit"`
}

// ProductPerformanceResponse reporte de productos más vendidos.
type ProductPerformanceResponse struct {
	From  time.Time               `json:"from"`
	To    time.Time               `json:"to"`
	Items []ProductPerformanceRow `json:"items"`
}

// StockReportRow fila del reporte de inventario.
type StockReportRow struct {
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	StockValue    decimal.Decimal `json:"stock_value"`
	IsLowStock    bool            `json:"is_low_stock"`
}

// StockReportResponse inventario actual valorizado a precio de costo.
type StockReportResponse struct {
	Items      []StockReportRow `json:"items"`
	TotalValue decimal.Decimal  `json:"total_value"`
	Currency   string           `json:"currency"`
}

// DeliveryStatusRow conteo de entregas en un estado.
type DeliveryStatusRow struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DeliveryReportResponse entregas por estado en el período.
type DeliveryReportResponse struct {
	From  time.Time           `json:"from"`
	To    time.Time           `json:"to"`
	Items []DeliveryStatusRow `json:"items"`
}

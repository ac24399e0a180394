package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryResult resultado crudo del reporte de ventas en un rango de fechas.
// Revenue suma grand_total; Profit = Σ (precio_venta - costo) * cantidad por línea.
type SalesSummaryResult struct {
	OrderCount    int
	Revenue       decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	Profit        decimal.Decimal
}

// ProductPerformanceResult ventas agregadas por producto en el período.
type ProductPerformanceResult struct {
	ProductID   string // vacío para entradas manuales agrupadas
	ProductName string
	UnitsSold   int
	Revenue     decimal.Decimal
	Profit      decimal.Decimal
}

// StockRow fila del reporte de inventario actual.
type StockRow struct {
	ProductID     string
	Name          string
	SKU           string
	StockQuantity int
	MinStockLevel int
	StockValue    decimal.Decimal // stock_quantity * buying_price
}

// StatusCount conteo de entregas por estado en el período.
type StatusCount struct {
	Status string
	Count  int
}

// ReportRepository consultas de solo lectura para reportes.
// Las implementaciones no modifican datos.
type ReportRepository interface {
	GetSalesSummary(ctx context.Context, from, to time.Time) (*SalesSummaryResult, error)
	GetProductPerformance(ctx context.Context, from, to time.Time, limit int) ([]ProductPerformanceResult, error)
	GetStockReport(ctx context.Context) ([]StockRow, error)
	GetDeliveryStatusCounts(ctx context.Context, from, to time.Time) ([]StatusCount, error)
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura. Los pedidos cancelados no
// cuentan para ventas ni utilidad.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetSalesSummary resume ventas del período: conteo, ingreso, descuento,
// impuesto y utilidad (precio de venta menos costo, por línea).
func (r *ReportRepo) GetSalesSummary(ctx context.Context, from, to time.Time) (*repository.SalesSummaryResult, error) {
	var res repository.SalesSummaryResult

	// Dos consultas: un JOIN con las líneas duplicaría los totales de cabecera.
	header := `
		SELECT COUNT(*), COALESCE(SUM(grand_total), 0), COALESCE(SUM(discount), 0), COALESCE(SUM(tax_amount), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2 AND order_status <> 'cancelled'`
	err := r.q.QueryRow(ctx, header, from, to).
		Scan(&res.OrderCount, &res.Revenue, &res.TotalDiscount, &res.TotalTax)
	if err != nil {
		return nil, fmt.Errorf("sales summary header: %w", err)
	}

	profit := `
		SELECT COALESCE(SUM(oi.subtotal - oi.buying_price * oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= $1 AND o.created_at < $2 AND o.order_status <> 'cancelled'`
	if err := r.q.QueryRow(ctx, profit, from, to).Scan(&res.Profit); err != nil {
		return nil, fmt.Errorf("sales summary profit: %w", err)
	}
	return &res, nil
}

// GetProductPerformance agrupa ventas por producto en el período, ordenado por
// ingreso descendente. Las entradas manuales se agrupan por nombre.
func (r *ReportRepo) GetProductPerformance(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductPerformanceResult, error) {
	query := `
		SELECT
			COALESCE(oi.product_id::text, ''),
			oi.product_name,
			COALESCE(SUM(oi.quantity), 0),
			COALESCE(SUM(oi.subtotal), 0),
			COALESCE(SUM(oi.subtotal - oi.buying_price * oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= $1 AND o.created_at < $2 AND o.order_status <> 'cancelled'
		GROUP BY oi.product_id, oi.product_name
		ORDER BY SUM(oi.subtotal) DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("product performance: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductPerformanceResult
	for rows.Next() {
		var p repository.ProductPerformanceResult
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.UnitsSold, &p.Revenue, &p.Profit); err != nil {
			return nil, fmt.Errorf("scan product performance: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetStockReport lista el inventario activo con su valor a precio de costo.
func (r *ReportRepo) GetStockReport(ctx context.Context) ([]repository.StockRow, error) {
	query := `
		SELECT id, name, COALESCE(sku, ''), stock_quantity, min_stock_level, stock_quantity * buying_price
		FROM products
		WHERE is_active = true
		ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock report: %w", err)
	}
	defer rows.Close()
	var list []repository.StockRow
	for rows.Next() {
		var s repository.StockRow
		if err := rows.Scan(&s.ProductID, &s.Name, &s.SKU, &s.StockQuantity, &s.MinStockLevel, &s.StockValue); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetDeliveryStatusCounts cuenta entregas por estado en el período.
func (r *ReportRepo) GetDeliveryStatusCounts(ctx context.Context, from, to time.Time) ([]repository.StatusCount, error) {
	query := `
		SELECT status, COUNT(*)
		FROM deliveries
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY status
		ORDER BY status`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("delivery status counts: %w", err)
	}
	defer rows.Close()
	var list []repository.StatusCount
	for rows.Next() {
		var c repository.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

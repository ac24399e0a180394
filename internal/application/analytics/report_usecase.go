package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ReportUseCase reportes de ventas, productos, inventario y entregas.
// Solo lectura; las respuestas son JSON (sin exportación a archivo).
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	currency   string
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository, currency string) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, currency: currency}
}

// parseRange interpreta el rango pedido. Sin fechas se usan los últimos 30
// días; "to" es exclusivo al día siguiente para incluir el día completo.
func parseRange(in dto.ReportRangeRequest) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
	to := now

	if in.From != "" {
		parsed, err := time.Parse("2006-01-02", in.From)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha desde %q", domain.ErrInvalidInput, in.From)
		}
		from = parsed
	}
	if in.To != "" {
		parsed, err := time.Parse("2006-01-02", in.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: fecha hasta %q", domain.ErrInvalidInput, in.To)
		}
		to = parsed.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	return from, to, nil
}

// SalesSummary resume pedidos, ingreso y utilidad en el rango.
func (uc *ReportUseCase) SalesSummary(ctx context.Context, in dto.ReportRangeRequest) (*dto.SalesSummaryResponse, error) {
	from, to, err := parseRange(in)
	if err != nil {
		return nil, err
	}
	res, err := uc.reportRepo.GetSalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.SalesSummaryResponse{
		From:          from,
		To:            to,
		OrderCount:    res.OrderCount,
		Revenue:       res.Revenue,
		TotalDiscount: res.TotalDiscount,
		TotalTax:      res.TotalTax,
		Profit:        res.Profit,
		Currency:      uc.currency,
	}, nil
}

// ProductPerformance productos más vendidos en el rango.
func (uc *ReportUseCase) ProductPerformance(ctx context.Context, in dto.ReportRangeRequest, limit int) (*dto.ProductPerformanceResponse, error) {
	from, to, err := parseRange(in)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := uc.reportRepo.GetProductPerformance(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductPerformanceResponse{From: from, To: to, Items: make([]dto.ProductPerformanceRow, 0, len(rows))}
	for _, r := range rows {
		resp.Items = append(resp.Items, dto.ProductPerformanceRow{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			UnitsSold:   r.UnitsSold,
			Revenue:     r.Revenue,
			Profit:      r.Profit,
		})
	}
	return resp, nil
}

// StockReport inventario actual valorizado a costo.
func (uc *ReportUseCase) StockReport(ctx context.Context) (*dto.StockReportResponse, error) {
	rows, err := uc.reportRepo.GetStockReport(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockReportResponse{
		Items:    make([]dto.StockReportRow, 0, len(rows)),
		Currency: uc.currency,
	}
	total := decimal.Zero
	for _, r := range rows {
		resp.Items = append(resp.Items, dto.StockReportRow{
			ProductID:     r.ProductID,
			Name:          r.Name,
			SKU:           r.SKU,
			StockQuantity: r.StockQuantity,
			MinStockLevel: r.MinStockLevel,
			StockValue:    r.StockValue,
			IsLowStock:    r.MinStockLevel > 0 && r.StockQuantity <= r.MinStockLevel,
		})
		total = total.Add(r.StockValue)
	}
	resp.TotalValue = total
	return resp, nil
}

// DeliveryReport entregas por estado en el rango.
func (uc *ReportUseCase) DeliveryReport(ctx context.Context, in dto.ReportRangeRequest) (*dto.DeliveryReportResponse, error) {
	from, to, err := parseRange(in)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.GetDeliveryStatusCounts(ctx, from, to)
	if err != nil {
		return nil, err
	}
	resp := &dto.DeliveryReportResponse{From: from, To: to, Items: make([]dto.DeliveryStatusRow, 0, len(rows))}
	for _, r := range rows {
		resp.Items = append(resp.Items, dto.DeliveryStatusRow{Status: r.Status, Count: r.Count})
	}
	return resp, nil
}

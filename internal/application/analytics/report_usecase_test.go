package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/analytics"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// fakeReportRepo devuelve resultados fijos y captura el rango consultado.
type fakeReportRepo struct {
	from, to time.Time
	summary  repository.SalesSummaryResult
	stock    []repository.StockRow
}

func (r *fakeReportRepo) GetSalesSummary(ctx context.Context, from, to time.Time) (*repository.SalesSummaryResult, error) {
	r.from, r.to = from, to
	return &r.summary, nil
}

func (r *fakeReportRepo) GetProductPerformance(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductPerformanceResult, error) {
	r.from, r.to = from, to
	return nil, nil
}

func (r *fakeReportRepo) GetStockReport(ctx context.Context) ([]repository.StockRow, error) {
	return r.stock, nil
}

func (r *fakeReportRepo) GetDeliveryStatusCounts(ctx context.Context, from, to time.Time) ([]repository.StatusCount, error) {
	r.from, r.to = from, to
	return []repository.StatusCount{{Status: "delivered", Count: 4}}, nil
}

func TestSalesSummary_RangoExplicitoConHastaInclusivo(t *testing.T) {
	repo := &fakeReportRepo{summary: repository.SalesSummaryResult{OrderCount: 3, Revenue: decimal.NewFromInt(900)}}
	uc := analytics.NewReportUseCase(repo, "KSH")

	got, err := uc.SalesSummary(context.Background(), dto.ReportRangeRequest{
		From: "2026-08-01",
		To:   "2026-08-15",
	})
	require.NoError(t, err)

	// "to" se consulta exclusivo al día siguiente para cubrir el día completo.
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), repo.from)
	assert.Equal(t, time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC), repo.to)
	assert.Equal(t, 3, got.OrderCount)
	assert.Equal(t, "KSH", got.Currency)
}

func TestSalesSummary_SinFechasUsaUltimos30Dias(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := analytics.NewReportUseCase(repo, "KSH")

	_, err := uc.SalesSummary(context.Background(), dto.ReportRangeRequest{})
	require.NoError(t, err)

	days := repo.to.Sub(repo.from).Hours() / 24
	assert.InDelta(t, 30, days, 1.5)
}

func TestSalesSummary_RangosInvalidos(t *testing.T) {
	uc := analytics.NewReportUseCase(&fakeReportRepo{}, "KSH")
	ctx := context.Background()

	_, err := uc.SalesSummary(ctx, dto.ReportRangeRequest{From: "01/08/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "formato de fecha inválido")

	_, err = uc.SalesSummary(ctx, dto.ReportRangeRequest{From: "2026-08-15", To: "2026-08-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rango invertido")
}

func TestStockReport_SumaValorYMarcaBajoStock(t *testing.T) {
	repo := &fakeReportRepo{stock: []repository.StockRow{
		{ProductID: "p1", Name: "Laptop", SKU: "LAP-001", StockQuantity: 2, MinStockLevel: 5, StockValue: decimal.RequireFromString("1400.00")},
		{ProductID: "p2", Name: "Mouse", SKU: "MOU-001", StockQuantity: 50, MinStockLevel: 10, StockValue: decimal.RequireFromString("250.00")},
		// Producto sin SKU: en la base la columna es NULL y llega como vacío.
		{ProductID: "p3", Name: "Cable suelto", SKU: "", StockQuantity: 7, MinStockLevel: 1, StockValue: decimal.RequireFromString("35.00")},
	}}
	uc := analytics.NewReportUseCase(repo, "KSH")

	got, err := uc.StockReport(context.Background())
	require.NoError(t, err)

	require.Len(t, got.Items, 3)
	assert.True(t, got.Items[0].IsLowStock)
	assert.False(t, got.Items[1].IsLowStock)
	assert.Empty(t, got.Items[2].SKU)
	assert.Equal(t, "1685.00", got.TotalValue.StringFixed(2))
	assert.Equal(t, "KSH", got.Currency)
}

func TestDeliveryReport_DevuelveConteosPorEstado(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := analytics.NewReportUseCase(repo, "KSH")

	got, err := uc.DeliveryReport(context.Background(), dto.ReportRangeRequest{})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "delivered", got.Items[0].Status)
	assert.Equal(t, 4, got.Items[0].Count)
}

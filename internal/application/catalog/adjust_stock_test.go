package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/catalog"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// fakeProductRepo repositorio en memoria con los métodos que usa el ajuste.
type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error          { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) Delete(id string) error         { delete(r.products, id); return nil }
func (r *fakeProductRepo) List(limit, offset int, activeOnly bool) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.products[id], nil
}
func (r *fakeProductRepo) UpdateStock(id string, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

type fakeAuditRepo struct {
	entries []*entity.AuditLog
}

func (r *fakeAuditRepo) Create(entry *entity.AuditLog) error {
	r.entries = append(r.entries, entry)
	return nil
}
func (r *fakeAuditRepo) List(limit, offset int) ([]*entity.AuditLog, error) {
	return r.entries, nil
}

// fakeStockTxRunner pasa los repos tal cual; el ajuste falla antes de mutar,
// así que no hace falta revertir estado.
type fakeStockTxRunner struct {
	products *fakeProductRepo
	audit    *fakeAuditRepo
}

func (r *fakeStockTxRunner) RunStock(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	return fn(r.products, r.audit)
}

func newAdjustEnv(stock int) (*catalog.AdjustStockUseCase, *fakeProductRepo, *fakeAuditRepo) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {
			ID:            "prod-1",
			Name:          "Teclado",
			SellingPrice:  decimal.NewFromInt(25),
			StockQuantity: stock,
			IsActive:      true,
		},
	}}
	audit := &fakeAuditRepo{}
	uc := catalog.NewAdjustStockUseCase(&fakeStockTxRunner{products, audit}, products)
	return uc, products, audit
}

func TestAdjustStock_IncrementaYAudita(t *testing.T) {
	uc, products, audit := newAdjustEnv(5)

	got, err := uc.AdjustStock(context.Background(), "user-1", "prod-1", dto.AdjustStockRequest{
		Direction: catalog.AdjustIncrease,
		Quantity:  7,
		Reason:    "recepción de mercancía",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, got.StockQuantity)
	assert.Equal(t, 12, products.products["prod-1"].StockQuantity)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "stock.adjust", audit.entries[0].Action)
	assert.Contains(t, audit.entries[0].Details, "recepción de mercancía")
}

func TestAdjustStock_DisminucionHastaCero(t *testing.T) {
	uc, products, _ := newAdjustEnv(5)

	got, err := uc.AdjustStock(context.Background(), "user-1", "prod-1", dto.AdjustStockRequest{
		Direction: catalog.AdjustDecrease,
		Quantity:  5,
		Reason:    "merma",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)
	assert.Equal(t, 0, products.products["prod-1"].StockQuantity)
}

func TestAdjustStock_DisminucionMayorAlStockFalla(t *testing.T) {
	uc, products, audit := newAdjustEnv(5)

	_, err := uc.AdjustStock(context.Background(), "user-1", "prod-1", dto.AdjustStockRequest{
		Direction: catalog.AdjustDecrease,
		Quantity:  6,
		Reason:    "merma",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El stock nunca baja de cero ni queda a medias.
	assert.Equal(t, 5, products.products["prod-1"].StockQuantity)
	assert.Empty(t, audit.entries)
}

func TestAdjustStock_EntradasInvalidas(t *testing.T) {
	uc, _, _ := newAdjustEnv(5)
	ctx := context.Background()

	cases := []dto.AdjustStockRequest{
		{Direction: catalog.AdjustIncrease, Quantity: 0, Reason: "x"},
		{Direction: catalog.AdjustIncrease, Quantity: -3, Reason: "x"},
		{Direction: catalog.AdjustIncrease, Quantity: 1},
		{Direction: "sideways", Quantity: 1, Reason: "x"},
	}
	for _, in := range cases {
		_, err := uc.AdjustStock(ctx, "user-1", "prod-1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada %+v debe rechazarse", in)
	}
}

func TestAdjustStock_ProductoInexistente(t *testing.T) {
	uc, _, _ := newAdjustEnv(5)

	_, err := uc.AdjustStock(context.Background(), "user-1", "prod-fantasma", dto.AdjustStockRequest{
		Direction: catalog.AdjustIncrease,
		Quantity:  1,
		Reason:    "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

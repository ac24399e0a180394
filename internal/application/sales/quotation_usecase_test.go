package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/numbering"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

func newQuotationUC(t *testing.T, store *memStore, taxPercent string) *sales.QuotationUseCase {
	t.Helper()
	quoGen, err := numbering.NewGenerator("QUO")
	require.NoError(t, err)
	ordGen, err := numbering.NewGenerator("ORD")
	require.NoError(t, err)
	return sales.NewQuotationUseCase(
		&memTxRunner{store}, &memQuotationRepo{store}, &memProductRepo{store},
		quoGen, ordGen, dec(taxPercent), logger.NewNop(),
	)
}

func TestCreateQuotation_NoTocaStock(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(5))
	uc := newQuotationUC(t, store, "10")

	// Se cotiza mucho más de lo que hay en stock y aun así procede.
	got, err := uc.CreateQuotation(context.Background(), "user-1", dto.CreateQuotationRequest{
		CustomerName: "Ana Pérez",
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 50}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.QuotationStatusDraft, got.Status)
	assert.Equal(t, "50000.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, 5, store.products["prod-laptop"].StockQuantity)
	require.Len(t, store.audit, 1)
	assert.Equal(t, "quotation.create", store.audit[0].Action)
}

func TestReplaceItems_RecalculaTotalesYEsIdempotente(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(5))
	uc := newQuotationUC(t, store, "10")
	ctx := context.Background()

	created, err := uc.CreateQuotation(ctx, "user-1", dto.CreateQuotationRequest{
		CustomerName: "Ana Pérez",
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 1}},
	})
	require.NoError(t, err)

	replacement := dto.ReplaceQuotationItemsRequest{
		Items: []dto.DocumentItemRequest{
			{ProductID: "prod-laptop", Quantity: 2},
			{Name: "Soporte anual", UnitPrice: decPtr("300.00"), Quantity: 1},
		},
	}
	first, err := uc.ReplaceItems(ctx, "user-1", created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, "2300.00", first.Subtotal.StringFixed(2))
	assert.Equal(t, "230.00", first.TaxAmount.StringFixed(2))
	assert.Equal(t, "2530.00", first.GrandTotal.StringFixed(2))
	require.Len(t, first.Items, 2)

	// Repetir el mismo reemplazo no acumula líneas ni cambia totales.
	second, err := uc.ReplaceItems(ctx, "user-1", created.ID, replacement)
	require.NoError(t, err)
	assert.Equal(t, first.Subtotal.StringFixed(2), second.Subtotal.StringFixed(2))
	assert.Equal(t, first.GrandTotal.StringFixed(2), second.GrandTotal.StringFixed(2))
	require.Len(t, second.Items, 2)
	assert.Len(t, store.quotationItems, 2)

	// Reemplazar nunca valida stock: es una promesa de precio, no de inventario.
	assert.Equal(t, 5, store.products["prod-laptop"].StockQuantity)
}

func TestReplaceItems_RechazaAceptadaOCancelada(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(5))
	uc := newQuotationUC(t, store, "0")
	ctx := context.Background()

	created, err := uc.CreateQuotation(ctx, "user-1", dto.CreateQuotationRequest{
		CustomerName: "Ana Pérez",
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 1}},
	})
	require.NoError(t, err)

	store.quotations[created.ID].Status = entity.QuotationStatusAccepted
	_, err = uc.ReplaceItems(ctx, "user-1", created.ID, dto.ReplaceQuotationItemsRequest{
		Items: []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	store.quotations[created.ID].Status = entity.QuotationStatusCancelled
	_, err = uc.ReplaceItems(ctx, "user-1", created.ID, dto.ReplaceQuotationItemsRequest{
		Items: []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestConvertToOrder_ReservaStockYRepreciaDelCatalogo(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(5))
	uc := newQuotationUC(t, store, "0")
	ctx := context.Background()

	created, err := uc.CreateQuotation(ctx, "user-1", dto.CreateQuotationRequest{
		CustomerName: "Ana Pérez",
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 3}},
	})
	require.NoError(t, err)

	// El precio del catálogo sube después de cotizar: el pedido usa el vigente.
	store.products["prod-laptop"].SellingPrice = dec("1200.00")

	order, err := uc.ConvertToOrder(ctx, "user-1", created.ID)
	require.NoError(t, err)

	assert.Equal(t, "3600.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, 2, store.products["prod-laptop"].StockQuantity)
	assert.Equal(t, entity.QuotationStatusAccepted, store.quotations[created.ID].Status)
	require.Len(t, store.orders, 1)
	assert.Contains(t, store.orders[0].Notes, created.QuotationNumber)
}

func TestConvertToOrder_StockInsuficienteEsAtomico(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(2))
	uc := newQuotationUC(t, store, "0")
	ctx := context.Background()

	created, err := uc.CreateQuotation(ctx, "user-1", dto.CreateQuotationRequest{
		CustomerName: "Ana Pérez",
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = uc.ConvertToOrder(ctx, "user-1", created.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada persistió: ni pedido, ni cambio de estado, ni stock descontado.
	assert.Empty(t, store.orders)
	assert.Equal(t, 2, store.products["prod-laptop"].StockQuantity)
	assert.Equal(t, entity.QuotationStatusDraft, store.quotations[created.ID].Status)
}

func TestConvertToOrder_YaConvertidaEsConflicto(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(10))
	uc := newQuotationUC(t, store, "0")
	ctx := context.Background()

	created, err := uc.CreateQuotation(ctx, "user-1", dto.CreateQuotationRequest{
		CustomerName: "Ana Pérez",
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = uc.ConvertToOrder(ctx, "user-1", created.ID)
	require.NoError(t, err)

	_, err = uc.ConvertToOrder(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, store.orders, 1)
}

package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/numbering"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func newCreateOrderUC(t *testing.T, store *memStore, taxPercent string) *sales.CreateOrderUseCase {
	t.Helper()
	gen, err := numbering.NewGenerator("ORD")
	require.NoError(t, err)
	return sales.NewCreateOrderUseCase(
		&memTxRunner{store}, &memProductRepo{store}, gen, dec(taxPercent), logger.NewNop(),
	)
}

func laptop(stock int) *entity.Product {
	return &entity.Product{
		ID:            "prod-laptop",
		Name:          "Laptop",
		BuyingPrice:   dec("700.00"),
		SellingPrice:  dec("1000.00"),
		StockQuantity: stock,
		IsActive:      true,
	}
}

func TestCreateOrder_ReservaStockYNumera(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(5))
	uc := newCreateOrderUC(t, store, "10")

	got, err := uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerName: "Ana Pérez",
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 3}},
	})
	require.NoError(t, err)

	period := numbering.Period(time.Now())
	assert.Equal(t, "ORD-"+period+"-0001", got.OrderNumber)
	assert.Equal(t, "3000.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "300.00", got.TaxAmount.StringFixed(2))
	assert.Equal(t, "3300.00", got.GrandTotal.StringFixed(2))
	assert.Equal(t, entity.PaymentStatusPending, got.PaymentStatus)
	assert.Equal(t, entity.OrderStatusPending, got.OrderStatus)

	// El stock quedó descontado y la auditoría registrada.
	assert.Equal(t, 2, store.products["prod-laptop"].StockQuantity)
	require.Len(t, store.audit, 1)
	assert.Equal(t, "order.create", store.audit[0].Action)
}

func TestCreateOrder_StockInsuficienteNoPersisteNada(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(5))
	uc := newCreateOrderUC(t, store, "0")

	_, err := uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerName: "Ana Pérez",
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 6}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada cambió: ni stock, ni pedidos, ni auditoría, ni el consecutivo.
	assert.Equal(t, 5, store.products["prod-laptop"].StockQuantity)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.audit)
	assert.Empty(t, store.seqs)
}

func TestCreateOrder_NumerosConsecutivos(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(10))
	uc := newCreateOrderUC(t, store, "0")

	req := dto.CreateOrderRequest{
		CustomerName: "Ana Pérez",
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 1}},
	}
	first, err := uc.CreateOrder(context.Background(), "user-1", req)
	require.NoError(t, err)
	second, err := uc.CreateOrder(context.Background(), "user-1", req)
	require.NoError(t, err)

	period := numbering.Period(time.Now())
	assert.Equal(t, "ORD-"+period+"-0001", first.OrderNumber)
	assert.Equal(t, "ORD-"+period+"-0002", second.OrderNumber)
}

func TestCreateOrder_ColisionDeNumeroReintentaUnaVez(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(10))
	store.orderCreateFailures = 1
	uc := newCreateOrderUC(t, store, "0")

	got, err := uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerName: "Ana Pérez",
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.OrderNumber)

	// Un solo pedido y un solo descuento de stock pese al reintento.
	assert.Len(t, store.orders, 1)
	assert.Equal(t, 8, store.products["prod-laptop"].StockQuantity)
}

func TestCreateOrder_DobleColisionPropagaElError(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(10))
	store.orderCreateFailures = 2
	uc := newCreateOrderUC(t, store, "0")

	_, err := uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerName: "Ana Pérez",
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 2}},
	})
	require.ErrorIs(t, err, domain.ErrDuplicateNumber)
	assert.Empty(t, store.orders)
	assert.Equal(t, 10, store.products["prod-laptop"].StockQuantity)
}

func TestCreateOrder_EntradaManualNoTocaStock(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(5))
	uc := newCreateOrderUC(t, store, "0")

	got, err := uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerName: "Ana Pérez",
		Items: []dto.DocumentItemRequest{
			{Name: "Instalación a domicilio", UnitPrice: decPtr("50.00"), Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].IsManualEntry)
	assert.Equal(t, "50.00", got.GrandTotal.StringFixed(2))
	assert.Equal(t, 5, store.products["prod-laptop"].StockQuantity)
}

func TestCreateOrder_ValidacionesBasicas(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(5))
	uc := newCreateOrderUC(t, store, "0")
	ctx := context.Background()

	item := dto.DocumentItemRequest{ProductID: "prod-laptop", Quantity: 1}

	_, err := uc.CreateOrder(ctx, "user-1", dto.CreateOrderRequest{
		Items: []dto.DocumentItemRequest{item},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin cliente")

	_, err = uc.CreateOrder(ctx, "user-1", dto.CreateOrderRequest{CustomerName: "Ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.CreateOrder(ctx, "user-1", dto.CreateOrderRequest{
		CustomerName:  "Ana",
		PaymentStatus: "maybe",
		Items:         []dto.DocumentItemRequest{item},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado de pago inválido")

	_, err = uc.CreateOrder(ctx, "user-1", dto.CreateOrderRequest{
		CustomerName: "Ana",
		Items:        []dto.DocumentItemRequest{{Name: "manual sin precio", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada manual sin precio")

	_, err = uc.CreateOrder(ctx, "user-1", dto.CreateOrderRequest{
		CustomerName: "Ana",
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-fantasma", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}

func TestCreateOrder_DescuentoMayorQueSubtotalSeAceptaConTotalNegativo(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(5))
	uc := newCreateOrderUC(t, store, "0")

	got, err := uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerName: "Ana Pérez",
		Discount:     dec("2000.00"),
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "-1000.00", got.GrandTotal.StringFixed(2))
}

func TestCreateOrder_AuditaConIPDelCliente(t *testing.T) {
	store := newMemStore()
	store.addProduct(laptop(5))
	uc := newCreateOrderUC(t, store, "0")

	ctx := entity.WithClientIP(context.Background(), "198.51.100.7")
	_, err := uc.CreateOrder(ctx, "user-1", dto.CreateOrderRequest{
		CustomerName: "Ana Pérez",
		Items:        []dto.DocumentItemRequest{{ProductID: "prod-laptop", Quantity: 1}},
	})
	require.NoError(t, err)

	require.Len(t, store.audit, 1)
	assert.Equal(t, "198.51.100.7", store.audit[0].IPAddress)
}

func TestCreateOrder_BloqueaProductosEnOrdenDeID(t *testing.T) {
	store := newMemStore()
	store.addProduct(&entity.Product{
		ID: "prod-zeta", Name: "Zapatos", SellingPrice: dec("50.00"),
		StockQuantity: 10, IsActive: true,
	})
	store.addProduct(&entity.Product{
		ID: "prod-alfa", Name: "Audífonos", SellingPrice: dec("80.00"),
		StockQuantity: 10, IsActive: true,
	})
	uc := newCreateOrderUC(t, store, "0")

	// Las líneas llegan en orden inverso; los bloqueos deben ir por ID
	// ascendente para no interbloquear pedidos concurrentes.
	_, err := uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerName: "Ana Pérez",
		Items: []dto.DocumentItemRequest{
			{ProductID: "prod-zeta", Quantity: 1},
			{ProductID: "prod-alfa", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"prod-alfa", "prod-zeta"}, store.lockOrder)
}

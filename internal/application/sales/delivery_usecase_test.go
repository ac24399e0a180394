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

func newDeliveryUC(t *testing.T, store *memStore) *sales.DeliveryUseCase {
	t.Helper()
	gen, err := numbering.NewGenerator("DEL")
	require.NoError(t, err)
	return sales.NewDeliveryUseCase(
		&memTxRunner{store}, &memDeliveryRepo{store}, &memOrderRepo{store}, gen, logger.NewNop(),
	)
}

// seedOrder inserta un pedido con dos líneas directamente en el estado.
func seedOrder(store *memStore) (*entity.Order, []*entity.OrderItem) {
	order := &entity.Order{
		ID:             store.id("order"),
		OrderNumber:    "ORD-202608-0001",
		CustomerName:   "Ana Pérez",
		OrderStatus:    entity.OrderStatusPending,
		DeliveryStatus: entity.DeliveryStatusPending,
	}
	store.orders = append(store.orders, order)
	items := []*entity.OrderItem{
		{ID: store.id("oitem"), OrderID: order.ID, ProductName: "Laptop", Quantity: 3, UnitPrice: dec("1000.00")},
		{ID: store.id("oitem"), OrderID: order.ID, ProductName: "Mouse", Quantity: 2, UnitPrice: dec("20.00")},
	}
	store.orderItems = append(store.orderItems, items...)
	return order, items
}

func TestCreateFromOrder_EntregaCompletaPorDefecto(t *testing.T) {
	store := newMemStore()
	order, _ := seedOrder(store)
	uc := newDeliveryUC(t, store)

	got, err := uc.CreateFromOrder(context.Background(), "user-1", dto.CreateDeliveryFromOrderRequest{
		OrderID:         order.ID,
		DeliveryAddress: "Calle 10 #4-25",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.DeliveryStatusAssigned, got.Status)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 3, got.Items[0].Quantity)
	assert.Equal(t, 2, got.Items[1].Quantity)

	// El pedido queda con la entrega asignada en la misma operación.
	assert.Equal(t, entity.DeliveryStatusAssigned, store.orders[0].DeliveryStatus)
}

func TestCreateFromOrder_CantidadesParcialesConTope(t *testing.T) {
	store := newMemStore()
	order, items := seedOrder(store)
	uc := newDeliveryUC(t, store)

	got, err := uc.CreateFromOrder(context.Background(), "user-1", dto.CreateDeliveryFromOrderRequest{
		OrderID:         order.ID,
		DeliveryAddress: "Calle 10 #4-25",
		Quantities: map[string]int{
			items[0].ID: 2,  // parcial
			items[1].ID: 99, // más de lo pedido: se recorta al pedido
		},
	})
	require.NoError(t, err)

	require.Len(t, got.Items, 2)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, 2, got.Items[1].Quantity)
}

func TestCreateFromOrder_LineasOmitidasNoSeEntregan(t *testing.T) {
	store := newMemStore()
	order, items := seedOrder(store)
	uc := newDeliveryUC(t, store)

	got, err := uc.CreateFromOrder(context.Background(), "user-1", dto.CreateDeliveryFromOrderRequest{
		OrderID:         order.ID,
		DeliveryAddress: "Calle 10 #4-25",
		Quantities:      map[string]int{items[0].ID: 1},
	})
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Laptop", got.Items[0].ProductName)
}

func TestCreateFromOrder_PedidoCanceladoEsConflicto(t *testing.T) {
	store := newMemStore()
	order, _ := seedOrder(store)
	order.OrderStatus = entity.OrderStatusCancelled
	uc := newDeliveryUC(t, store)

	_, err := uc.CreateFromOrder(context.Background(), "user-1", dto.CreateDeliveryFromOrderRequest{
		OrderID:         order.ID,
		DeliveryAddress: "Calle 10 #4-25",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, store.deliveries)
}

func TestUpdateStatus_EntregadaSincronizaElPedido(t *testing.T) {
	store := newMemStore()
	order, _ := seedOrder(store)
	uc := newDeliveryUC(t, store)

	created, err := uc.CreateFromOrder(context.Background(), "user-1", dto.CreateDeliveryFromOrderRequest{
		OrderID:         order.ID,
		DeliveryAddress: "Calle 10 #4-25",
	})
	require.NoError(t, err)

	got, err := uc.UpdateStatus(context.Background(), "user-1", created.ID, dto.UpdateDeliveryStatusRequest{
		Status: entity.DeliveryStatusDelivered,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.DeliveryStatusDelivered, got.Status)
	require.NotNil(t, got.DeliveredAt)
	assert.Equal(t, entity.DeliveryStatusDelivered, store.orders[0].DeliveryStatus)
}

package repository

import (
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// OrderFilter filtros de listado de pedidos.
type OrderFilter struct {
	OrderStatus   string
	PaymentStatus string
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error)
	List(filter OrderFilter) ([]*entity.Order, error)
	UpdateStatus(order *entity.Order) error
}

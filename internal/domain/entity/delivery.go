package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Delivery nota de entrega. OrderID vacío = entrega independiente (sin pedido).
type Delivery struct {
	ID              string
	DeliveryNumber  string // DEL-YYYYMM-SEQ, único
	OrderID         string
	CustomerName    string
	Phone           string
	DeliveryAddress string
	DeliveredAt     *time.Time
	ScheduledDate   *time.Time
	Status          string // mismos estados que Order.DeliveryStatus
	Notes           string
	AssignedToID    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DeliveryItem línea de una nota de entrega.
type DeliveryItem struct {
	ID          string
	DeliveryID  string
	OrderItemID string // vacío en entregas independientes
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

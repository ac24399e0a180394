package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryItemRequest línea de una entrega independiente (sin pedido).
type DeliveryItemRequest struct {
	ProductName string          `json:"product_name" validate:"required,min=1,max=200"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateDeliveryFromOrderRequest crea una entrega a partir de un pedido.
// Quantities mapea order_item_id a cantidad a entregar; vacío = todo el pedido.
type CreateDeliveryFromOrderRequest struct {
	OrderID         string         `json:"order_id" validate:"required"`
	DeliveryAddress string         `json:"delivery_address" validate:"required,min=1,max=500"`
	ScheduledDate   *time.Time     `json:"scheduled_date"`
	AssignedToID    string         `json:"assigned_to_id"`
	Quantities      map[string]int `json:"quantities"`
	Notes           string         `json:"notes"`
}

// CreateStandaloneDeliveryRequest crea una entrega sin pedido asociado.
type CreateStandaloneDeliveryRequest struct {
	CustomerName    string                `json:"customer_name" validate:"required,min=1,max=200"`
	Phone           string                `json:"phone"`
	DeliveryAddress string                `json:"delivery_address" validate:"required,min=1,max=500"`
	ScheduledDate   *time.Time            `json:"scheduled_date"`
	AssignedToID    string                `json:"assigned_to_id"`
	Items           []DeliveryItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes           string                `json:"notes"`
}

// UpdateDeliveryStatusRequest cambia el estado de una entrega.
type UpdateDeliveryStatusRequest struct {
	Status       string `json:"status" validate:"required"`
	AssignedToID string `json:"assigned_to_id"`
}

// DeliveryItemResponse salida de una línea de entrega.
type DeliveryItemResponse struct {
	ID          string          `json:"id"`
	OrderItemID string          `json:"order_item_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// DeliveryResponse salida de una entrega con sus líneas.
type DeliveryResponse struct {
	ID              string                 `json:"id"`
	DeliveryNumber  string                 `json:"delivery_number"`
	OrderID         string                 `json:"order_id,omitempty"`
	CustomerName    string                 `json:"customer_name"`
	Phone           string                 `json:"phone,omitempty"`
	DeliveryAddress string                 `json:"delivery_address"`
	DeliveredAt     *time.Time             `json:"delivered_at,omitempty"`
	ScheduledDate   *time.Time             `json:"scheduled_date,omitempty"`
	Status          string                 `json:"status"`
	Notes           string                 `json:"notes,omitempty"`
	AssignedToID    string                 `json:"assigned_to_id,omitempty"`
	Items           []DeliveryItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// DeliveryListResponse lista paginada de entregas.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentItemRequest línea de un documento de venta (pedido o cotización).
// Con ProductID el nombre y precio se toman del catálogo salvo que se
// sobrescriban; sin ProductID es una entrada manual y Name/UnitPrice son
// obligatorios.
type DocumentItemRequest struct {
	ProductID       string           `json:"product_id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	Quantity        int              `json:"quantity" validate:"required,min=1"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
}

// CreateOrderRequest entrada para crear un pedido.
type CreateOrderRequest struct {
	CustomerName  string                `json:"customer_name" validate:"required,min=1,max=200"`
	Phone         string                `json:"phone"`
	Email         string                `json:"email" validate:"omitempty,email"`
	Items         []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
	Discount      decimal.Decimal       `json:"discount"`
	TaxPercent    *decimal.Decimal      `json:"tax_percent"`
	PaymentStatus string                `json:"payment_status"`
	PaymentMethod string                `json:"payment_method"`
	Notes         string                `json:"notes"`
}

// UpdateOrderStatusRequest entrada para cambiar estados de un pedido.
// Los campos vacíos no se modifican.
type UpdateOrderStatusRequest struct {
	OrderStatus    string `json:"order_status"`
	PaymentStatus  string `json:"payment_status"`
	DeliveryStatus string `json:"delivery_status"`
}

// OrderItemResponse salida de una línea de pedido.
type OrderItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id,omitempty"`
	ProductName     string          `json:"product_name"`
	Description     string          `json:"description,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	IsManualEntry   bool            `json:"is_manual_entry"`
}

// OrderResponse salida de un pedido con sus líneas.
type OrderResponse struct {
	ID             string              `json:"id"`
	OrderNumber    string              `json:"order_number"`
	CustomerName   string              `json:"customer_name"`
	Phone          string              `json:"phone,omitempty"`
	Email          string              `json:"email,omitempty"`
	OrderDate      time.Time           `json:"order_date"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Discount       decimal.Decimal     `json:"discount"`
	TaxPercent     decimal.Decimal     `json:"tax_percent"`
	TaxAmount      decimal.Decimal     `json:"tax_amount"`
	GrandTotal     decimal.Decimal     `json:"grand_total"`
	PaymentStatus  string              `json:"payment_status"`
	PaymentMethod  string              `json:"payment_method,omitempty"`
	OrderStatus    string              `json:"order_status"`
	DeliveryStatus string              `json:"delivery_status"`
	Notes          string              `json:"notes,omitempty"`
	Items          []OrderItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ListOrdersRequest filtros de listado de pedidos.
type ListOrdersRequest struct {
	OrderStatus   string `query:"order_status"`
	PaymentStatus string `query:"payment_status"`
	From          string `query:"from"` // YYYY-MM-DD
	To            string `query:"to"`   // YYYY-MM-DD
	PageRequest
}

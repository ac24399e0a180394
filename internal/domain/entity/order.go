package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusPartial   = "partial"
	PaymentStatusCancelled = "cancelled"

	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"

	DeliveryStatusPending   = "pending"
	DeliveryStatusAssigned  = "assigned"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
	DeliveryStatusCancelled = "cancelled"
)

// ValidOrderStatus valida un estado de pedido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus valida un estado de pago.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial, PaymentStatusCancelled:
		return true
	}
	return false
}

// ValidDeliveryStatus valida un estado de entrega.
func ValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusAssigned, DeliveryStatusInTransit,
		DeliveryStatusDelivered, DeliveryStatusFailed, DeliveryStatusCancelled:
		return true
	}
	return false
}

// Order cabecera de un pedido de venta.
// Subtotal, TaxAmount y GrandTotal se calculan con pricing.ComputeTotals y se
// persisten junto con las líneas en la misma transacción; nunca se editan sueltos.
type Order struct {
	ID             string
	OrderNumber    string // ORD-YYYYMM-SEQ, único
	CustomerName   string
	Phone          string
	Email          string
	OrderDate      time.Time
	Subtotal       decimal.Decimal // suma de subtotales de líneas
	Discount       decimal.Decimal // descuento de monto fijo a nivel documento
	TaxPercent     decimal.Decimal
	TaxAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
	PaymentStatus  string
	PaymentMethod  string
	OrderStatus    string
	DeliveryStatus string
	Notes          string
	CreatedByID    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderItem línea de un pedido. ProductID vacío = entrada manual (sin stock).
// BuyingPrice es el costo capturado al momento de la venta, para reportes de ganancia.
type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	ProductName     string
	Description     string
	BuyingPrice     decimal.Decimal
	UnitPrice       decimal.Decimal
	Quantity        int
	DiscountPercent decimal.Decimal
	Subtotal        decimal.Decimal
	IsManualEntry   bool
}

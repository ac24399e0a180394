package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización.
const (
	QuotationStatusDraft     = "draft"
	QuotationStatusSent      = "sent"
	QuotationStatusAccepted  = "accepted"
	QuotationStatusExpired   = "expired"
	QuotationStatusCancelled = "cancelled"
)

// ValidQuotationStatus valida un estado de cotización.
func ValidQuotationStatus(s string) bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted,
		QuotationStatusExpired, QuotationStatusCancelled:
		return true
	}
	return false
}

// Quotation cabecera de una cotización. Comparte la aritmética de totales con
// Order pero no toca stock: la reserva ocurre recién al convertirla en pedido.
type Quotation struct {
	ID              string
	QuotationNumber string // QUO-YYYYMM-SEQ, único
	CustomerName    string
	Phone           string
	Email           string
	ValidUntil      *time.Time
	Subtotal        decimal.Decimal
	Discount        decimal.Decimal
	TaxPercent      decimal.Decimal
	TaxAmount       decimal.Decimal
	GrandTotal      decimal.Decimal
	Status          string
	Notes           string
	CreatedByID     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// QuotationItem línea de una cotización.
type QuotationItem struct {
	ID              string
	QuotationID     string
	ProductID       string
	ProductName     string
	Description     string
	UnitPrice       decimal.Decimal
	Quantity        int
	DiscountPercent decimal.Decimal
	Subtotal        decimal.Decimal
	IsManualEntry   bool
}

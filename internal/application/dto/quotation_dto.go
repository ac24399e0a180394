package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateQuotationRequest entrada para crear una cotización.
type CreateQuotationRequest struct {
	CustomerName string                `json:"customer_name" validate:"required,min=1,max=200"`
	Phone        string                `json:"phone"`
	Email        string                `json:"email" validate:"omitempty,email"`
	ValidUntil   *time.Time            `json:"valid_until"`
	Items        []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
	Discount     decimal.Decimal       `json:"discount"`
	TaxPercent   *decimal.Decimal      `json:"tax_percent"`
	Notes        string                `json:"notes"`
}

// ReplaceQuotationItemsRequest reemplaza todas las líneas de una cotización.
// No toca stock: la cotización no reserva inventario.
type ReplaceQuotationItemsRequest struct {
	Items      []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
	Discount   *decimal.Decimal      `json:"discount"`
	TaxPercent *decimal.Decimal      `json:"tax_percent"`
}

// UpdateQuotationStatusRequest cambia el estado de una cotización.
type UpdateQuotationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// QuotationItemResponse salida de una línea de cotización.
type QuotationItemResponse struct {
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

// QuotationResponse salida de una cotización con sus líneas.
type QuotationResponse struct {
	ID              string                  `json:"id"`
	QuotationNumber string                  `json:"quotation_number"`
	CustomerName    string                  `json:"customer_name"`
	Phone           string                  `json:"phone,omitempty"`
	Email           string                  `json:"email,omitempty"`
	ValidUntil      *time.Time              `json:"valid_until,omitempty"`
	Subtotal        decimal.Decimal         `json:"subtotal"`
	Discount        decimal.Decimal         `json:"discount"`
	TaxPercent      decimal.Decimal         `json:"tax_percent"`
	TaxAmount       decimal.Decimal         `json:"tax_amount"`
	GrandTotal      decimal.Decimal         `json:"grand_total"`
	Status          string                  `json:"status"`
	Notes           string                  `json:"notes,omitempty"`
	Items           []QuotationItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// QuotationListResponse lista paginada de cotizaciones.
type QuotationListResponse struct {
	Items []QuotationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

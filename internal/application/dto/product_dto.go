package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	SKU           string          `json:"sku" validate:"max=100"`
	BuyingPrice   decimal.Decimal `json:"buying_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	StockQuantity int             `json:"stock_quantity"`
	CategoryID    string          `json:"category_id"`
	Description   string          `json:"description"`
	MinStockLevel int             `json:"min_stock_level"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock:
// el stock solo cambia por pedidos o ajustes manuales).
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU           *string          `json:"sku" validate:"omitempty,max=100"`
	BuyingPrice   *decimal.Decimal `json:"buying_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	CategoryID    *string          `json:"category_id"`
	Description   *string          `json:"description"`
	MinStockLevel *int             `json:"min_stock_level"`
	IsActive      *bool            `json:"is_active"`
}

// AdjustStockRequest entrada para un ajuste manual de stock.
// Direction: "increase" o "decrease".
type AdjustStockRequest struct {
	Direction string `json:"direction" validate:"required,oneof=increase decrease"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Reason    string `json:"reason" validate:"required,min=1,max=500"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	BuyingPrice   decimal.Decimal `json:"buying_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	StockQuantity int             `json:"stock_quantity"`
	CategoryID    string          `json:"category_id,omitempty"`
	Description   string          `json:"description,omitempty"`
	MinStockLevel int             `json:"min_stock_level"`
	IsActive      bool            `json:"is_active"`
	IsLowStock    bool            `json:"is_low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

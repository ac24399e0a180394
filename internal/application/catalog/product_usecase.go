package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos del catálogo.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// CreateProduct valida y persiste un producto nuevo.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if in.BuyingPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	if in.StockQuantity < 0 || in.MinStockLevel < 0 {
		return nil, fmt.Errorf("%w: stock y mínimo no pueden ser negativos", domain.ErrInvalidInput)
	}
	if in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, in.CategoryID)
		}
	}

	now := time.Now().UTC()
	product := &entity.Product{
		Name:          in.Name,
		SKU:           in.SKU,
		BuyingPrice:   in.BuyingPrice,
		SellingPrice:  in.SellingPrice,
		StockQuantity: in.StockQuantity,
		CategoryID:    in.CategoryID,
		Description:   in.Description,
		MinStockLevel: in.MinStockLevel,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct obtiene un producto por ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// ListProducts lista productos paginados.
func (uc *ProductUseCase) ListProducts(ctx context.Context, page dto.PageRequest, activeOnly bool) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(page.Limit, page.Offset, activeOnly)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.NewPage(page.Limit, page.Offset, len(products)),
	}
	for _, p := range products {
		resp.Items = append(resp.Items, *toProductResponse(p))
	}
	return resp, nil
}

// ListLowStock lista productos activos en o bajo su nivel mínimo de stock.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// UpdateProduct actualiza los campos presentes del producto. El stock no se
// toca por esta vía.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		product.Name = *in.Name
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.BuyingPrice != nil {
		if in.BuyingPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio de compra negativo", domain.ErrInvalidInput)
		}
		product.BuyingPrice = *in.BuyingPrice
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio de venta negativo", domain.ErrInvalidInput)
		}
		product.SellingPrice = *in.SellingPrice
	}
	if in.CategoryID != nil {
		if *in.CategoryID != "" {
			category, err := uc.categoryRepo.GetByID(*in.CategoryID)
			if err != nil {
				return nil, err
			}
			if category == nil {
				return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, *in.CategoryID)
			}
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return nil, fmt.Errorf("%w: mínimo de stock negativo", domain.ErrInvalidInput)
		}
		product.MinStockLevel = *in.MinStockLevel
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now().UTC()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// DeleteProduct elimina un producto del catálogo.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	return uc.productRepo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		BuyingPrice:   p.BuyingPrice,
		SellingPrice:  p.SellingPrice,
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		Description:   p.Description,
		MinStockLevel: p.MinStockLevel,
		IsActive:      p.IsActive,
		IsLowStock:    p.IsLowStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

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

// Direcciones de un ajuste manual de stock.
const (
	AdjustIncrease = "increase"
	AdjustDecrease = "decrease"
)

// AdjustStockUseCase ajustes manuales de inventario (merma, recepción,
// corrección). Bloquea la fila del producto y audita el movimiento con su
// motivo en la misma transacción.
type AdjustStockUseCase struct {
	txRunner    StockTxRunner
	productRepo repository.ProductRepository
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner StockTxRunner, productRepo repository.ProductRepository) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, productRepo: productRepo}
}

// AdjustStock aplica un ajuste manual. Una disminución mayor al stock
// disponible falla con ErrInsufficientStock y nada persiste.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, userID, productID string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad del ajuste debe ser positiva", domain.ErrInvalidInput)
	}
	if in.Reason == "" {
		return nil, fmt.Errorf("%w: el ajuste requiere un motivo", domain.ErrInvalidInput)
	}
	if in.Direction != AdjustIncrease && in.Direction != AdjustDecrease {
		return nil, fmt.Errorf("%w: dirección %q", domain.ErrInvalidInput, in.Direction)
	}

	var adjusted *entity.Product
	err := uc.txRunner.RunStock(ctx, func(
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
		}

		newQuantity := product.StockQuantity + in.Quantity
		if in.Direction == AdjustDecrease {
			if product.StockQuantity < in.Quantity {
				return fmt.Errorf("%w: producto %q tiene %d y se quieren restar %d",
					domain.ErrInsufficientStock, product.Name, product.StockQuantity, in.Quantity)
			}
			newQuantity = product.StockQuantity - in.Quantity
		}
		if err := productRepo.UpdateStock(productID, newQuantity); err != nil {
			return err
		}
		product.StockQuantity = newQuantity
		product.UpdatedAt = time.Now().UTC()
		adjusted = product

		return auditRepo.Create(&entity.AuditLog{
			UserID:     userID,
			Action:     "stock.adjust",
			EntityType: "product",
			EntityID:   productID,
			IPAddress:  entity.ClientIP(ctx),
			Details:    fmt.Sprintf("%s %d: %s (queda %d)", in.Direction, in.Quantity, in.Reason, newQuantity),
			CreatedAt:  time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(adjusted), nil
}

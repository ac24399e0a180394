package catalog

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// StockTxRunner ejecuta ajustes manuales de stock dentro de una transacción:
// la fila del producto se bloquea, se muta y se audita atómicamente.
type StockTxRunner interface {
	RunStock(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}

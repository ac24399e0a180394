package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/ventas-api/internal/application/catalog"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// Ensure TxRunner implements sales.TxRunner and catalog.StockTxRunner.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ catalog.StockTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrder inicia una transacción con los repos que necesita la creación de
// pedidos: numeración, reserva de stock y auditoría en la misma tx.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	seqRepo repository.SequenceRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	productRepo := NewProductRepository(tx)
	seqRepo := NewSequenceRepository(tx)
	auditRepo := NewAuditLogRepository(tx)

	if err := fn(orderRepo, productRepo, seqRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunQuotation inicia una transacción para crear cotizaciones o reemplazar sus
// líneas (líneas y totales se actualizan juntos).
func (r *TxRunner) RunQuotation(ctx context.Context, fn func(
	quotationRepo repository.QuotationRepository,
	seqRepo repository.SequenceRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	quotationRepo := NewQuotationRepository(tx)
	seqRepo := NewSequenceRepository(tx)
	auditRepo := NewAuditLogRepository(tx)

	if err := fn(quotationRepo, seqRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunConvert inicia una transacción para convertir una cotización en pedido:
// si la reserva de stock falla, ni el pedido ni el cambio de estado persisten.
func (r *TxRunner) RunConvert(ctx context.Context, fn func(
	quotationRepo repository.QuotationRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	seqRepo repository.SequenceRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	quotationRepo := NewQuotationRepository(tx)
	orderRepo := NewOrderRepository(tx)
	productRepo := NewProductRepository(tx)
	seqRepo := NewSequenceRepository(tx)
	auditRepo := NewAuditLogRepository(tx)

	if err := fn(quotationRepo, orderRepo, productRepo, seqRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDelivery inicia una transacción para crear entregas (numeración y, si
// viene de un pedido, el cambio de estado del pedido en la misma tx).
func (r *TxRunner) RunDelivery(ctx context.Context, fn func(
	deliveryRepo repository.DeliveryRepository,
	orderRepo repository.OrderRepository,
	seqRepo repository.SequenceRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	deliveryRepo := NewDeliveryRepository(tx)
	orderRepo := NewOrderRepository(tx)
	seqRepo := NewSequenceRepository(tx)
	auditRepo := NewAuditLogRepository(tx)

	if err := fn(deliveryRepo, orderRepo, seqRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock inicia una transacción para ajustes manuales de stock con auditoría.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	auditRepo := NewAuditLogRepository(tx)

	if err := fn(productRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

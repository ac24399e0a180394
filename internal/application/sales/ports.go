package sales

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre numeración,
// documento, stock y auditoría.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		seqRepo repository.SequenceRepository,
		auditRepo repository.AuditLogRepository,
	) error) error

	RunQuotation(ctx context.Context, fn func(
		quotationRepo repository.QuotationRepository,
		seqRepo repository.SequenceRepository,
		auditRepo repository.AuditLogRepository,
	) error) error

	RunConvert(ctx context.Context, fn func(
		quotationRepo repository.QuotationRepository,
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		seqRepo repository.SequenceRepository,
		auditRepo repository.AuditLogRepository,
	) error) error

	RunDelivery(ctx context.Context, fn func(
		deliveryRepo repository.DeliveryRepository,
		orderRepo repository.OrderRepository,
		seqRepo repository.SequenceRepository,
		auditRepo repository.AuditLogRepository,
	) error) error
}

// DocumentGenerator genera el PDF de un documento de venta.
type DocumentGenerator interface {
	OrderInvoice(order *OrderDocument) ([]byte, error)
	QuotationDocument(quotation *QuotationDocument) ([]byte, error)
	DeliveryNote(delivery *DeliveryNoteDocument) ([]byte, error)
}

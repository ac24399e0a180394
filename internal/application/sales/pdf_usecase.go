package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/numbering"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// OrderDocument datos completos para el PDF de un pedido.
type OrderDocument struct {
	Order *entity.Order
	Items []*entity.OrderItem
}

// QuotationDocument datos completos para el PDF de una cotización.
type QuotationDocument struct {
	Quotation *entity.Quotation
	Items     []*entity.QuotationItem
}

// DeliveryNoteDocument datos completos para el PDF de una nota de entrega.
type DeliveryNoteDocument struct {
	Delivery    *entity.Delivery
	Items       []*entity.DeliveryItem
	OrderNumber string // vacío en entregas independientes
}

// PDFUseCase genera la representación gráfica (PDF) de pedidos, cotizaciones
// y notas de entrega. El bloque de totales copia los valores almacenados,
// nunca los recalcula. El número almacenado se valida antes de renderizar:
// un valor malformado en la base es un error, no se adivina.
type PDFUseCase struct {
	orderRepo     repository.OrderRepository
	quotationRepo repository.QuotationRepository
	deliveryRepo  repository.DeliveryRepository
	generator     DocumentGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	orderRepo repository.OrderRepository,
	quotationRepo repository.QuotationRepository,
	deliveryRepo repository.DeliveryRepository,
	generator DocumentGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		orderRepo:     orderRepo,
		quotationRepo: quotationRepo,
		deliveryRepo:  deliveryRepo,
		generator:     generator,
	}
}

// OrderPDF genera el PDF de un pedido. Retorna (bytes, filename, error).
func (uc *PDFUseCase) OrderPDF(ctx context.Context, orderID string) ([]byte, string, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	if _, _, _, err := numbering.Parse(order.OrderNumber); err != nil {
		return nil, "", fmt.Errorf("pdf: pedido %s: %w", orderID, err)
	}
	items, err := uc.orderRepo.GetItemsByOrderID(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	pdfBytes, err := uc.generator.OrderInvoice(&OrderDocument{Order: order, Items: items})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("pedido_%s.pdf", order.OrderNumber), nil
}

// QuotationPDF genera el PDF de una cotización.
func (uc *PDFUseCase) QuotationPDF(ctx context.Context, quotationID string) ([]byte, string, error) {
	quotation, err := uc.quotationRepo.GetByID(quotationID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cotización: %w", err)
	}
	if quotation == nil {
		return nil, "", domain.ErrNotFound
	}
	if _, _, _, err := numbering.Parse(quotation.QuotationNumber); err != nil {
		return nil, "", fmt.Errorf("pdf: cotización %s: %w", quotationID, err)
	}
	items, err := uc.quotationRepo.GetItemsByQuotationID(quotationID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	pdfBytes, err := uc.generator.QuotationDocument(&QuotationDocument{Quotation: quotation, Items: items})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("cotizacion_%s.pdf", quotation.QuotationNumber), nil
}

// DeliveryPDF genera el PDF de una nota de entrega.
func (uc *PDFUseCase) DeliveryPDF(ctx context.Context, deliveryID string) ([]byte, string, error) {
	delivery, err := uc.deliveryRepo.GetByID(deliveryID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener entrega: %w", err)
	}
	if delivery == nil {
		return nil, "", domain.ErrNotFound
	}
	if _, _, _, err := numbering.Parse(delivery.DeliveryNumber); err != nil {
		return nil, "", fmt.Errorf("pdf: entrega %s: %w", deliveryID, err)
	}
	items, err := uc.deliveryRepo.GetItemsByDeliveryID(deliveryID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	doc := &DeliveryNoteDocument{Delivery: delivery, Items: items}
	if delivery.OrderID != "" {
		if order, err := uc.orderRepo.GetByID(delivery.OrderID); err == nil && order != nil {
			doc.OrderNumber = order.OrderNumber
		}
	}
	pdfBytes, err := uc.generator.DeliveryNote(doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("entrega_%s.pdf", delivery.DeliveryNumber), nil
}

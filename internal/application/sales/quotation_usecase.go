package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/numbering"
	"github.com/jhoicas/ventas-api/internal/domain/pricing"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// QuotationUseCase cotizaciones: crear, reemplazar líneas, estados y
// conversión a pedido. Una cotización nunca toca stock; la reserva ocurre
// recién al convertirla.
type QuotationUseCase struct {
	txRunner          TxRunner
	quotationRepo     repository.QuotationRepository
	productRepo       repository.ProductRepository
	quotationGen      *numbering.Generator
	orderGen          *numbering.Generator
	defaultTaxPercent decimal.Decimal
	log               *logger.Logger
}

// NewQuotationUseCase construye el caso de uso.
func NewQuotationUseCase(
	txRunner TxRunner,
	quotationRepo repository.QuotationRepository,
	productRepo repository.ProductRepository,
	quotationGen *numbering.Generator,
	orderGen *numbering.Generator,
	defaultTaxPercent decimal.Decimal,
	log *logger.Logger,
) *QuotationUseCase {
	return &QuotationUseCase{
		txRunner:          txRunner,
		quotationRepo:     quotationRepo,
		productRepo:       productRepo,
		quotationGen:      quotationGen,
		orderGen:          orderGen,
		defaultTaxPercent: defaultTaxPercent,
		log:               log,
	}
}

// CreateQuotation valida, calcula totales y persiste la cotización con sus
// líneas. Sin efectos sobre el inventario.
func (uc *QuotationUseCase) CreateQuotation(ctx context.Context, userID string, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	if in.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer_name es obligatorio", domain.ErrInvalidInput)
	}
	lines, _, err := resolveLines(uc.productRepo, in.Items)
	if err != nil {
		return nil, err
	}
	taxPercent := uc.defaultTaxPercent
	if in.TaxPercent != nil {
		taxPercent = *in.TaxPercent
	}
	totals, err := computeDocumentTotals(lines, in.Discount, taxPercent, in.CustomerName, uc.log)
	if err != nil {
		return nil, err
	}

	var quotation *entity.Quotation
	var items []*entity.QuotationItem

	run := func() error {
		return uc.txRunner.RunQuotation(ctx, func(
			quotationRepo repository.QuotationRepository,
			seqRepo repository.SequenceRepository,
			auditRepo repository.AuditLogRepository,
		) error {
			now := time.Now().UTC()
			number, err := uc.quotationGen.Next(seqRepo, now)
			if err != nil {
				return err
			}
			quotation = &entity.Quotation{
				QuotationNumber: number,
				CustomerName:    in.CustomerName,
				Phone:           in.Phone,
				Email:           in.Email,
				ValidUntil:      in.ValidUntil,
				Subtotal:        totals.Subtotal,
				Discount:        in.Discount,
				TaxPercent:      taxPercent,
				TaxAmount:       totals.TaxAmount,
				GrandTotal:      totals.GrandTotal,
				Status:          entity.QuotationStatusDraft,
				Notes:           in.Notes,
				CreatedByID:     userID,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := quotationRepo.Create(quotation); err != nil {
				return err
			}
			items = items[:0]
			for _, l := range lines {
				item := &entity.QuotationItem{
					QuotationID:     quotation.ID,
					ProductID:       l.productID,
					ProductName:     l.productName,
					Description:     l.description,
					UnitPrice:       l.unitPrice,
					Quantity:        l.quantity,
					DiscountPercent: l.discountPercent,
					Subtotal:        l.subtotal,
					IsManualEntry:   l.isManualEntry,
				}
				if err := quotationRepo.CreateItem(item); err != nil {
					return err
				}
				items = append(items, item)
			}
			return auditRepo.Create(&entity.AuditLog{
				UserID:     userID,
				Action:     "quotation.create",
				EntityType: "quotation",
				EntityID:   quotation.ID,
				IPAddress:  entity.ClientIP(ctx),
				Details:    fmt.Sprintf("cotización %s por %s", quotation.QuotationNumber, quotation.GrandTotal.StringFixed(2)),
				CreatedAt:  now,
			})
		})
	}

	err = run()
	if errors.Is(err, domain.ErrDuplicateNumber) {
		uc.log.Warn().Msg("colisión de número de cotización, reintentando una vez")
		err = run()
	}
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(quotation, items), nil
}

// GetQuotation obtiene una cotización con sus líneas.
func (uc *QuotationUseCase) GetQuotation(ctx context.Context, id string) (*dto.QuotationResponse, error) {
	quotation, err := uc.quotationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.quotationRepo.GetItemsByQuotationID(id)
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(quotation, items), nil
}

// ListQuotations lista cotizaciones, opcionalmente por estado.
func (uc *QuotationUseCase) ListQuotations(ctx context.Context, status string, page dto.PageRequest) (*dto.QuotationListResponse, error) {
	page.DefaultPage()
	if status != "" && !entity.ValidQuotationStatus(status) {
		return nil, fmt.Errorf("%w: estado de cotización %q", domain.ErrInvalidInput, status)
	}
	quotations, err := uc.quotationRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.QuotationListResponse{
		Items: make([]dto.QuotationResponse, 0, len(quotations)),
		Page:  dto.NewPage(page.Limit, page.Offset, len(quotations)),
	}
	for _, q := range quotations {
		resp.Items = append(resp.Items, *toQuotationResponse(q, nil))
	}
	return resp, nil
}

// ReplaceItems reemplaza todas las líneas de la cotización y recalcula los
// totales en la misma transacción. No valida ni reserva stock: la cotización
// es una promesa de precio, no de inventario.
func (uc *QuotationUseCase) ReplaceItems(ctx context.Context, userID, id string, in dto.ReplaceQuotationItemsRequest) (*dto.QuotationResponse, error) {
	quotation, err := uc.quotationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, domain.ErrNotFound
	}
	if quotation.Status == entity.QuotationStatusAccepted || quotation.Status == entity.QuotationStatusCancelled {
		return nil, fmt.Errorf("%w: la cotización %s ya está %s", domain.ErrConflict, quotation.QuotationNumber, quotation.Status)
	}

	lines, _, err := resolveLines(uc.productRepo, in.Items)
	if err != nil {
		return nil, err
	}
	discount := quotation.Discount
	if in.Discount != nil {
		discount = *in.Discount
	}
	taxPercent := quotation.TaxPercent
	if in.TaxPercent != nil {
		taxPercent = *in.TaxPercent
	}
	totals, err := computeDocumentTotals(lines, discount, taxPercent, quotation.CustomerName, uc.log)
	if err != nil {
		return nil, err
	}

	var items []*entity.QuotationItem
	err = uc.txRunner.RunQuotation(ctx, func(
		quotationRepo repository.QuotationRepository,
		_ repository.SequenceRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := quotationRepo.DeleteItemsByQuotationID(id); err != nil {
			return err
		}
		items = items[:0]
		for _, l := range lines {
			item := &entity.QuotationItem{
				QuotationID:     id,
				ProductID:       l.productID,
				ProductName:     l.productName,
				Description:     l.description,
				UnitPrice:       l.unitPrice,
				Quantity:        l.quantity,
				DiscountPercent: l.discountPercent,
				Subtotal:        l.subtotal,
				IsManualEntry:   l.isManualEntry,
			}
			if err := quotationRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)
		}
		quotation.Subtotal = totals.Subtotal
		quotation.Discount = discount
		quotation.TaxPercent = taxPercent
		quotation.TaxAmount = totals.TaxAmount
		quotation.GrandTotal = totals.GrandTotal
		quotation.UpdatedAt = time.Now().UTC()
		if err := quotationRepo.UpdateTotals(quotation); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLog{
			UserID:     userID,
			Action:     "quotation.replace_items",
			EntityType: "quotation",
			EntityID:   id,
			IPAddress:  entity.ClientIP(ctx),
			Details:    fmt.Sprintf("%d líneas, total %s", len(lines), quotation.GrandTotal.StringFixed(2)),
			CreatedAt:  quotation.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(quotation, items), nil
}

// UpdateStatus cambia el estado de la cotización.
func (uc *QuotationUseCase) UpdateStatus(ctx context.Context, userID, id string, in dto.UpdateQuotationStatusRequest) (*dto.QuotationResponse, error) {
	if !entity.ValidQuotationStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado de cotización %q", domain.ErrInvalidInput, in.Status)
	}
	quotation, err := uc.quotationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, domain.ErrNotFound
	}
	quotation.Status = in.Status
	quotation.UpdatedAt = time.Now().UTC()
	if err := uc.quotationRepo.UpdateStatus(quotation); err != nil {
		return nil, err
	}
	return toQuotationResponse(quotation, nil), nil
}

// ConvertToOrder convierte la cotización en un pedido real: re-precia las
// líneas con los precios actuales del catálogo, reserva stock y marca la
// cotización como aceptada, todo en una sola transacción. Con stock
// insuficiente nada persiste.
func (uc *QuotationUseCase) ConvertToOrder(ctx context.Context, userID, id string) (*dto.OrderResponse, error) {
	quotation, err := uc.quotationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, domain.ErrNotFound
	}
	switch quotation.Status {
	case entity.QuotationStatusAccepted:
		return nil, fmt.Errorf("%w: la cotización %s ya fue convertida", domain.ErrConflict, quotation.QuotationNumber)
	case entity.QuotationStatusCancelled, entity.QuotationStatusExpired:
		return nil, fmt.Errorf("%w: la cotización %s está %s", domain.ErrConflict, quotation.QuotationNumber, quotation.Status)
	}

	quotationItems, err := uc.quotationRepo.GetItemsByQuotationID(id)
	if err != nil {
		return nil, err
	}
	if len(quotationItems) == 0 {
		return nil, fmt.Errorf("%w: la cotización no tiene líneas", domain.ErrInvalidInput)
	}

	// Re-preciar con el catálogo vigente: el precio pactado en la cotización
	// puede haber quedado viejo. Las entradas manuales conservan su precio.
	lines := make([]resolvedLine, 0, len(quotationItems))
	required := make(map[string]int)
	for _, it := range quotationItems {
		line := resolvedLine{
			productName:     it.ProductName,
			description:     it.Description,
			unitPrice:       it.UnitPrice,
			quantity:        it.Quantity,
			discountPercent: it.DiscountPercent,
			isManualEntry:   it.IsManualEntry,
		}
		if it.ProductID != "" {
			product, err := uc.productRepo.GetByID(it.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil || !product.IsActive {
				return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
			}
			line.productID = product.ID
			line.unitPrice = product.SellingPrice
			line.buyingPrice = product.BuyingPrice
			required[product.ID] += it.Quantity
		}
		subtotal, err := pricing.LineSubtotal(pricing.LineInput{
			Quantity:        line.quantity,
			UnitPrice:       line.unitPrice,
			DiscountPercent: line.discountPercent,
		})
		if err != nil {
			return nil, err
		}
		line.subtotal = subtotal
		lines = append(lines, line)
	}
	totals, err := computeDocumentTotals(lines, quotation.Discount, quotation.TaxPercent, quotation.CustomerName, uc.log)
	if err != nil {
		return nil, err
	}

	var order *entity.Order
	var orderItems []*entity.OrderItem

	run := func() error {
		return uc.txRunner.RunConvert(ctx, func(
			quotationRepo repository.QuotationRepository,
			orderRepo repository.OrderRepository,
			productRepo repository.ProductRepository,
			seqRepo repository.SequenceRepository,
			auditRepo repository.AuditLogRepository,
		) error {
			if err := reserveStock(productRepo, required); err != nil {
				return err
			}
			now := time.Now().UTC()
			number, err := uc.orderGen.Next(seqRepo, now)
			if err != nil {
				return err
			}
			order = &entity.Order{
				OrderNumber:    number,
				CustomerName:   quotation.CustomerName,
				Phone:          quotation.Phone,
				Email:          quotation.Email,
				OrderDate:      now,
				Subtotal:       totals.Subtotal,
				Discount:       quotation.Discount,
				TaxPercent:     quotation.TaxPercent,
				TaxAmount:      totals.TaxAmount,
				GrandTotal:     totals.GrandTotal,
				PaymentStatus:  entity.PaymentStatusPending,
				OrderStatus:    entity.OrderStatusPending,
				DeliveryStatus: entity.DeliveryStatusPending,
				Notes:          fmt.Sprintf("convertido de la cotización %s", quotation.QuotationNumber),
				CreatedByID:    userID,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := orderRepo.Create(order); err != nil {
				return err
			}
			orderItems = orderItems[:0]
			for _, l := range lines {
				item := &entity.OrderItem{
					OrderID:         order.ID,
					ProductID:       l.productID,
					ProductName:     l.productName,
					Description:     l.description,
					BuyingPrice:     l.buyingPrice,
					UnitPrice:       l.unitPrice,
					Quantity:        l.quantity,
					DiscountPercent: l.discountPercent,
					Subtotal:        l.subtotal,
					IsManualEntry:   l.isManualEntry,
				}
				if err := orderRepo.CreateItem(item); err != nil {
					return err
				}
				orderItems = append(orderItems, item)
			}
			quotation.Status = entity.QuotationStatusAccepted
			quotation.UpdatedAt = now
			if err := quotationRepo.UpdateStatus(quotation); err != nil {
				return err
			}
			return auditRepo.Create(&entity.AuditLog{
				UserID:     userID,
				Action:     "quotation.convert",
				EntityType: "quotation",
				EntityID:   quotation.ID,
				IPAddress:  entity.ClientIP(ctx),
				Details:    fmt.Sprintf("cotización %s convertida en pedido %s", quotation.QuotationNumber, order.OrderNumber),
				CreatedAt:  now,
			})
		})
	}

	err = run()
	if errors.Is(err, domain.ErrDuplicateNumber) {
		uc.log.Warn().Msg("colisión de número al convertir cotización, reintentando una vez")
		err = run()
	}
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, orderItems), nil
}

// computeDocumentTotals agrega subtotales y aplica descuento e impuesto,
// dejando constancia en el log cuando el total queda negativo.
func computeDocumentTotals(lines []resolvedLine, discount, taxPercent decimal.Decimal, customer string, log *logger.Logger) (pricing.Totals, error) {
	subtotals := make([]decimal.Decimal, len(lines))
	for i, l := range lines {
		subtotals[i] = l.subtotal
	}
	totals, err := pricing.ComputeTotals(subtotals, discount, taxPercent)
	if err != nil {
		return pricing.Totals{}, err
	}
	if totals.IsNegative() {
		log.Warn().
			Str("customer", customer).
			Str("grand_total", totals.GrandTotal.String()).
			Msg("documento con total negativo: el descuento supera el subtotal más impuesto")
	}
	return totals, nil
}

func toQuotationResponse(quotation *entity.Quotation, items []*entity.QuotationItem) *dto.QuotationResponse {
	resp := &dto.QuotationResponse{
		ID:              quotation.ID,
		QuotationNumber: quotation.QuotationNumber,
		CustomerName:    quotation.CustomerName,
		Phone:           quotation.Phone,
		Email:           quotation.Email,
		ValidUntil:      quotation.ValidUntil,
		Subtotal:        quotation.Subtotal,
		Discount:        quotation.Discount,
		TaxPercent:      quotation.TaxPercent,
		TaxAmount:       quotation.TaxAmount,
		GrandTotal:      quotation.GrandTotal,
		Status:          quotation.Status,
		Notes:           quotation.Notes,
		CreatedAt:       quotation.CreatedAt,
		UpdatedAt:       quotation.UpdatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.QuotationItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Description:     it.Description,
			UnitPrice:       it.UnitPrice,
			Quantity:        it.Quantity,
			DiscountPercent: it.DiscountPercent,
			Subtotal:        it.Subtotal,
			IsManualEntry:   it.IsManualEntry,
		})
	}
	return resp
}

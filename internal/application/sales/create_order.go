package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
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

// CreateOrderUseCase crea un pedido: numeración, totales y reserva de stock
// en una sola transacción.
type CreateOrderUseCase struct {
	txRunner          TxRunner
	productRepo       repository.ProductRepository
	orderGen          *numbering.Generator
	defaultTaxPercent decimal.Decimal
	log               *logger.Logger
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	orderGen *numbering.Generator,
	defaultTaxPercent decimal.Decimal,
	log *logger.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:          txRunner,
		productRepo:       productRepo,
		orderGen:          orderGen,
		defaultTaxPercent: defaultTaxPercent,
		log:               log,
	}
}

// resolvedLine línea ya validada, con precio y costo resueltos desde el catálogo.
type resolvedLine struct {
	productID       string
	productName     string
	description     string
	buyingPrice     decimal.Decimal
	unitPrice       decimal.Decimal
	quantity        int
	discountPercent decimal.Decimal
	subtotal        decimal.Decimal
	isManualEntry   bool
}

// resolveLines valida las líneas del request, resuelve nombre/precio desde el
// catálogo para las que referencian producto y calcula el subtotal de cada una.
// Retorna también la cantidad requerida por producto (agregada entre líneas).
func resolveLines(productRepo repository.ProductRepository, items []dto.DocumentItemRequest) ([]resolvedLine, map[string]int, error) {
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("%w: el documento necesita al menos una línea", domain.ErrInvalidInput)
	}
	lines := make([]resolvedLine, 0, len(items))
	required := make(map[string]int)
	for _, it := range items {
		line := resolvedLine{
			description:     it.Description,
			quantity:        it.Quantity,
			discountPercent: it.DiscountPercent,
		}
		if it.ProductID != "" {
			product, err := productRepo.GetByID(it.ProductID)
			if err != nil {
				return nil, nil, err
			}
			if product == nil || !product.IsActive {
				return nil, nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
			}
			line.productID = product.ID
			line.productName = product.Name
			line.buyingPrice = product.BuyingPrice
			line.unitPrice = product.SellingPrice
			if it.Name != "" {
				line.productName = it.Name
			}
			if it.UnitPrice != nil {
				line.unitPrice = *it.UnitPrice
			}
			required[product.ID] += it.Quantity
		} else {
			// Entrada manual: sin producto, sin stock. Nombre y precio obligatorios.
			if it.Name == "" || it.UnitPrice == nil {
				return nil, nil, fmt.Errorf("%w: una entrada manual requiere nombre y precio", domain.ErrInvalidInput)
			}
			line.productName = it.Name
			line.unitPrice = *it.UnitPrice
			line.isManualEntry = true
		}

		input := pricing.LineInput{
			Quantity:        line.quantity,
			UnitPrice:       line.unitPrice,
			DiscountPercent: line.discountPercent,
		}
		subtotal, err := pricing.LineSubtotal(input)
		if err != nil {
			return nil, nil, err
		}
		line.subtotal = subtotal
		lines = append(lines, line)
	}
	return lines, required, nil
}

// reserveStock bloquea cada producto (FOR UPDATE), verifica disponibilidad y
// descuenta la cantidad requerida. Con stock insuficiente retorna
// ErrInsufficientStock y la tx entera se revierte. Los productos se bloquean
// en orden de ID para que dos pedidos concurrentes no se interbloqueen.
func reserveStock(productRepo repository.ProductRepository, required map[string]int) error {
	ids := make([]string, 0, len(required))
	for productID := range required {
		ids = append(ids, productID)
	}
	sort.Strings(ids)
	for _, productID := range ids {
		qty := required[productID]
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
		}
		if product.StockQuantity < qty {
			return fmt.Errorf("%w: producto %q tiene %d y se pidieron %d",
				domain.ErrInsufficientStock, product.Name, product.StockQuantity, qty)
		}
		if err := productRepo.UpdateStock(productID, product.StockQuantity-qty); err != nil {
			return err
		}
	}
	return nil
}

// CreateOrder valida, calcula totales y persiste pedido + líneas + reserva de
// stock + auditoría atómicamente. Ante colisión de número reintenta una vez.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer_name es obligatorio", domain.ErrInvalidInput)
	}
	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = entity.PaymentStatusPending
	}
	if !entity.ValidPaymentStatus(paymentStatus) {
		return nil, fmt.Errorf("%w: estado de pago %q", domain.ErrInvalidInput, paymentStatus)
	}

	lines, required, err := resolveLines(uc.productRepo, in.Items)
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

	var order *entity.Order
	var orderItems []*entity.OrderItem

	run := func() error {
		return uc.txRunner.RunOrder(ctx, func(
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
				CustomerName:   in.CustomerName,
				Phone:          in.Phone,
				Email:          in.Email,
				OrderDate:      now,
				Subtotal:       totals.Subtotal,
				Discount:       in.Discount,
				TaxPercent:     taxPercent,
				TaxAmount:      totals.TaxAmount,
				GrandTotal:     totals.GrandTotal,
				PaymentStatus:  paymentStatus,
				PaymentMethod:  in.PaymentMethod,
				OrderStatus:    entity.OrderStatusPending,
				DeliveryStatus: entity.DeliveryStatusPending,
				Notes:          in.Notes,
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

			return auditRepo.Create(&entity.AuditLog{
				UserID:     userID,
				Action:     "order.create",
				EntityType: "order",
				EntityID:   order.ID,
				IPAddress:  entity.ClientIP(ctx),
				Details:    fmt.Sprintf("pedido %s por %s", order.OrderNumber, order.GrandTotal.StringFixed(2)),
				CreatedAt:  now,
			})
		})
	}

	err = run()
	if errors.Is(err, domain.ErrDuplicateNumber) {
		// Colisión de número (carrera entre procesos): un solo reintento con
		// número fresco; si vuelve a chocar, se propaga.
		uc.log.Warn().Msg("colisión de número de pedido, reintentando una vez")
		err = run()
	}
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, orderItems), nil
}

func toOrderResponse(order *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		CustomerName:   order.CustomerName,
		Phone:          order.Phone,
		Email:          order.Email,
		OrderDate:      order.OrderDate,
		Subtotal:       order.Subtotal,
		Discount:       order.Discount,
		TaxPercent:     order.TaxPercent,
		TaxAmount:      order.TaxAmount,
		GrandTotal:     order.GrandTotal,
		PaymentStatus:  order.PaymentStatus,
		PaymentMethod:  order.PaymentMethod,
		OrderStatus:    order.OrderStatus,
		DeliveryStatus: order.DeliveryStatus,
		Notes:          order.Notes,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
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

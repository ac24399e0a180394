package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/numbering"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// DeliveryUseCase notas de entrega: desde un pedido o independientes.
type DeliveryUseCase struct {
	txRunner     TxRunner
	deliveryRepo repository.DeliveryRepository
	orderRepo    repository.OrderRepository
	deliveryGen  *numbering.Generator
	log          *logger.Logger
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(
	txRunner TxRunner,
	deliveryRepo repository.DeliveryRepository,
	orderRepo repository.OrderRepository,
	deliveryGen *numbering.Generator,
	log *logger.Logger,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		txRunner:     txRunner,
		deliveryRepo: deliveryRepo,
		orderRepo:    orderRepo,
		deliveryGen:  deliveryGen,
		log:          log,
	}
}

// CreateFromOrder crea una entrega a partir de un pedido. Sin cantidades
// explícitas se entrega todo el pedido; las cantidades pedidas son el tope.
// El pedido pasa a delivery_status=assigned en la misma transacción.
func (uc *DeliveryUseCase) CreateFromOrder(ctx context.Context, userID string, in dto.CreateDeliveryFromOrderRequest) (*dto.DeliveryResponse, error) {
	if in.OrderID == "" || in.DeliveryAddress == "" {
		return nil, fmt.Errorf("%w: order_id y delivery_address son obligatorios", domain.ErrInvalidInput)
	}
	order, err := uc.orderRepo.GetByID(in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, in.OrderID)
	}
	if order.OrderStatus == entity.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: el pedido %s está cancelado", domain.ErrConflict, order.OrderNumber)
	}
	orderItems, err := uc.orderRepo.GetItemsByOrderID(in.OrderID)
	if err != nil {
		return nil, err
	}

	items := make([]*entity.DeliveryItem, 0, len(orderItems))
	for _, oi := range orderItems {
		qty := oi.Quantity
		if in.Quantities != nil {
			requested, ok := in.Quantities[oi.ID]
			if !ok || requested <= 0 {
				continue
			}
			if requested < qty {
				qty = requested
			}
		}
		items = append(items, &entity.DeliveryItem{
			OrderItemID: oi.ID,
			ProductName: oi.ProductName,
			Quantity:    qty,
			UnitPrice:   oi.UnitPrice,
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: la entrega necesita al menos una línea", domain.ErrInvalidInput)
	}

	var delivery *entity.Delivery

	run := func() error {
		return uc.txRunner.RunDelivery(ctx, func(
			deliveryRepo repository.DeliveryRepository,
			orderRepo repository.OrderRepository,
			seqRepo repository.SequenceRepository,
			auditRepo repository.AuditLogRepository,
		) error {
			now := time.Now().UTC()
			number, err := uc.deliveryGen.Next(seqRepo, now)
			if err != nil {
				return err
			}
			delivery = &entity.Delivery{
				DeliveryNumber:  number,
				OrderID:         order.ID,
				CustomerName:    order.CustomerName,
				Phone:           order.Phone,
				DeliveryAddress: in.DeliveryAddress,
				ScheduledDate:   in.ScheduledDate,
				Status:          entity.DeliveryStatusAssigned,
				Notes:           in.Notes,
				AssignedToID:    in.AssignedToID,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := deliveryRepo.Create(delivery); err != nil {
				return err
			}
			for _, it := range items {
				it.DeliveryID = delivery.ID
				if err := deliveryRepo.CreateItem(it); err != nil {
					return err
				}
			}
			order.DeliveryStatus = entity.DeliveryStatusAssigned
			order.UpdatedAt = now
			if err := orderRepo.UpdateStatus(order); err != nil {
				return err
			}
			return auditRepo.Create(&entity.AuditLog{
				UserID:     userID,
				Action:     "delivery.create",
				EntityType: "delivery",
				EntityID:   delivery.ID,
				IPAddress:  entity.ClientIP(ctx),
				Details:    fmt.Sprintf("entrega %s para el pedido %s", delivery.DeliveryNumber, order.OrderNumber),
				CreatedAt:  now,
			})
		})
	}

	err = run()
	if errors.Is(err, domain.ErrDuplicateNumber) {
		uc.log.Warn().Msg("colisión de número de entrega, reintentando una vez")
		err = run()
	}
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(delivery, items), nil
}

// CreateStandalone crea una entrega sin pedido asociado.
func (uc *DeliveryUseCase) CreateStandalone(ctx context.Context, userID string, in dto.CreateStandaloneDeliveryRequest) (*dto.DeliveryResponse, error) {
	if in.CustomerName == "" || in.DeliveryAddress == "" {
		return nil, fmt.Errorf("%w: customer_name y delivery_address son obligatorios", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la entrega necesita al menos una línea", domain.ErrInvalidInput)
	}
	items := make([]*entity.DeliveryItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductName == "" || it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cada línea requiere nombre y cantidad positiva", domain.ErrInvalidInput)
		}
		items = append(items, &entity.DeliveryItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	var delivery *entity.Delivery

	run := func() error {
		return uc.txRunner.RunDelivery(ctx, func(
			deliveryRepo repository.DeliveryRepository,
			_ repository.OrderRepository,
			seqRepo repository.SequenceRepository,
			auditRepo repository.AuditLogRepository,
		) error {
			now := time.Now().UTC()
			number, err := uc.deliveryGen.Next(seqRepo, now)
			if err != nil {
				return err
			}
			status := entity.DeliveryStatusPending
			if in.AssignedToID != "" {
				status = entity.DeliveryStatusAssigned
			}
			delivery = &entity.Delivery{
				DeliveryNumber:  number,
				CustomerName:    in.CustomerName,
				Phone:           in.Phone,
				DeliveryAddress: in.DeliveryAddress,
				ScheduledDate:   in.ScheduledDate,
				Status:          status,
				Notes:           in.Notes,
				AssignedToID:    in.AssignedToID,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := deliveryRepo.Create(delivery); err != nil {
				return err
			}
			for _, it := range items {
				it.DeliveryID = delivery.ID
				if err := deliveryRepo.CreateItem(it); err != nil {
					return err
				}
			}
			return auditRepo.Create(&entity.AuditLog{
				UserID:     userID,
				Action:     "delivery.create",
				EntityType: "delivery",
				EntityID:   delivery.ID,
				IPAddress:  entity.ClientIP(ctx),
				Details:    fmt.Sprintf("entrega independiente %s", delivery.DeliveryNumber),
				CreatedAt:  now,
			})
		})
	}

	err := run()
	if errors.Is(err, domain.ErrDuplicateNumber) {
		uc.log.Warn().Msg("colisión de número de entrega, reintentando una vez")
		err = run()
	}
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(delivery, items), nil
}

// GetDelivery obtiene una entrega con sus líneas.
func (uc *DeliveryUseCase) GetDelivery(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	delivery, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.deliveryRepo.GetItemsByDeliveryID(id)
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(delivery, items), nil
}

// ListDeliveries lista entregas, opcionalmente por estado.
func (uc *DeliveryUseCase) ListDeliveries(ctx context.Context, status string, page dto.PageRequest) (*dto.DeliveryListResponse, error) {
	page.DefaultPage()
	if status != "" && !entity.ValidDeliveryStatus(status) {
		return nil, fmt.Errorf("%w: estado de entrega %q", domain.ErrInvalidInput, status)
	}
	deliveries, err := uc.deliveryRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.DeliveryListResponse{
		Items: make([]dto.DeliveryResponse, 0, len(deliveries)),
		Page:  dto.NewPage(page.Limit, page.Offset, len(deliveries)),
	}
	for _, d := range deliveries {
		resp.Items = append(resp.Items, *toDeliveryResponse(d, nil))
	}
	return resp, nil
}

// UpdateStatus cambia el estado de la entrega. Cuando pasa a delivered se
// registra la hora y, si viene de un pedido, el pedido se sincroniza en la
// misma transacción.
func (uc *DeliveryUseCase) UpdateStatus(ctx context.Context, userID, id string, in dto.UpdateDeliveryStatusRequest) (*dto.DeliveryResponse, error) {
	if !entity.ValidDeliveryStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado de entrega %q", domain.ErrInvalidInput, in.Status)
	}
	delivery, err := uc.deliveryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	delivery.Status = in.Status
	delivery.UpdatedAt = now
	if in.AssignedToID != "" {
		delivery.AssignedToID = in.AssignedToID
	}
	if in.Status == entity.DeliveryStatusDelivered && delivery.DeliveredAt == nil {
		delivery.DeliveredAt = &now
	}

	err = uc.txRunner.RunDelivery(ctx, func(
		deliveryRepo repository.DeliveryRepository,
		orderRepo repository.OrderRepository,
		_ repository.SequenceRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := deliveryRepo.UpdateStatus(delivery); err != nil {
			return err
		}
		if delivery.OrderID != "" {
			order, err := orderRepo.GetByID(delivery.OrderID)
			if err != nil {
				return err
			}
			if order != nil {
				order.DeliveryStatus = in.Status
				order.UpdatedAt = now
				if err := orderRepo.UpdateStatus(order); err != nil {
					return err
				}
			}
		}
		return auditRepo.Create(&entity.AuditLog{
			UserID:     userID,
			Action:     "delivery.status",
			EntityType: "delivery",
			EntityID:   delivery.ID,
			IPAddress:  entity.ClientIP(ctx),
			Details:    fmt.Sprintf("entrega %s -> %s", delivery.DeliveryNumber, in.Status),
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toDeliveryResponse(delivery, nil), nil
}

func toDeliveryResponse(delivery *entity.Delivery, items []*entity.DeliveryItem) *dto.DeliveryResponse {
	resp := &dto.DeliveryResponse{
		ID:              delivery.ID,
		DeliveryNumber:  delivery.DeliveryNumber,
		OrderID:         delivery.OrderID,
		CustomerName:    delivery.CustomerName,
		Phone:           delivery.Phone,
		DeliveryAddress: delivery.DeliveryAddress,
		DeliveredAt:     delivery.DeliveredAt,
		ScheduledDate:   delivery.ScheduledDate,
		Status:          delivery.Status,
		Notes:           delivery.Notes,
		AssignedToID:    delivery.AssignedToID,
		CreatedAt:       delivery.CreatedAt,
		UpdatedAt:       delivery.UpdatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.DeliveryItemResponse{
			ID:          it.ID,
			OrderItemID: it.OrderItemID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return resp
}

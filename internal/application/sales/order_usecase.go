package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// OrderUseCase consultas y cambios de estado de pedidos.
type OrderUseCase struct {
	orderRepo repository.OrderRepository
	auditRepo repository.AuditLogRepository
	log       *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orderRepo repository.OrderRepository, auditRepo repository.AuditLogRepository, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, auditRepo: auditRepo, log: log}
}

// GetOrder obtiene un pedido con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.GetItemsByOrderID(id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

// ListOrders lista pedidos con filtros de estado y rango de fechas.
func (uc *OrderUseCase) ListOrders(ctx context.Context, in dto.ListOrdersRequest) (*dto.OrderListResponse, error) {
	in.DefaultPage()
	if in.OrderStatus != "" && !entity.ValidOrderStatus(in.OrderStatus) {
		return nil, fmt.Errorf("%w: estado de pedido %q", domain.ErrInvalidInput, in.OrderStatus)
	}
	if in.PaymentStatus != "" && !entity.ValidPaymentStatus(in.PaymentStatus) {
		return nil, fmt.Errorf("%w: estado de pago %q", domain.ErrInvalidInput, in.PaymentStatus)
	}

	filter := repository.OrderFilter{
		OrderStatus:   in.OrderStatus,
		PaymentStatus: in.PaymentStatus,
		Limit:         in.Limit,
		Offset:        in.Offset,
	}
	if in.From != "" {
		from, err := time.Parse("2006-01-02", in.From)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha desde %q", domain.ErrInvalidInput, in.From)
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := time.Parse("2006-01-02", in.To)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha hasta %q", domain.ErrInvalidInput, in.To)
		}
		filter.To = &to
	}

	orders, err := uc.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(orders)),
		Page:  dto.NewPage(in.Limit, in.Offset, len(orders)),
	}
	for _, o := range orders {
		resp.Items = append(resp.Items, *toOrderResponse(o, nil))
	}
	return resp, nil
}

// UpdateStatus cambia los estados del pedido. Campos vacíos no se tocan.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, userID, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if in.OrderStatus == "" && in.PaymentStatus == "" && in.DeliveryStatus == "" {
		return nil, fmt.Errorf("%w: nada que actualizar", domain.ErrInvalidInput)
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	if in.OrderStatus != "" {
		if !entity.ValidOrderStatus(in.OrderStatus) {
			return nil, fmt.Errorf("%w: estado de pedido %q", domain.ErrInvalidInput, in.OrderStatus)
		}
		order.OrderStatus = in.OrderStatus
	}
	if in.PaymentStatus != "" {
		if !entity.ValidPaymentStatus(in.PaymentStatus) {
			return nil, fmt.Errorf("%w: estado de pago %q", domain.ErrInvalidInput, in.PaymentStatus)
		}
		order.PaymentStatus = in.PaymentStatus
	}
	if in.DeliveryStatus != "" {
		if !entity.ValidDeliveryStatus(in.DeliveryStatus) {
			return nil, fmt.Errorf("%w: estado de entrega %q", domain.ErrInvalidInput, in.DeliveryStatus)
		}
		order.DeliveryStatus = in.DeliveryStatus
	}
	order.UpdatedAt = time.Now().UTC()

	if err := uc.orderRepo.UpdateStatus(order); err != nil {
		return nil, err
	}
	// Auditoría fuera de la tx: un fallo no revierte el cambio, pero se registra.
	if err := uc.auditRepo.Create(&entity.AuditLog{
		UserID:     userID,
		Action:     "order.status",
		EntityType: "order",
		EntityID:   order.ID,
		IPAddress:  entity.ClientIP(ctx),
		Details: fmt.Sprintf("pedido=%s pago=%s entrega=%s",
			order.OrderStatus, order.PaymentStatus, order.DeliveryStatus),
		CreatedAt: order.UpdatedAt,
	}); err != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("auditoría de cambio de estado no registrada")
	}
	return toOrderResponse(order, nil), nil
}

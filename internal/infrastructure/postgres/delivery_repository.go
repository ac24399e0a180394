package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo implementación de DeliveryRepository (usable con pool o tx).
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador.
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

const deliveryColumns = `id, delivery_number, order_id, customer_name, phone, delivery_address,
	delivered_at, scheduled_date, status, notes, assigned_to_id, created_at, updated_at`

// Create persiste la cabecera de la entrega.
func (r *DeliveryRepo) Create(delivery *entity.Delivery) error {
	if delivery.ID == "" {
		delivery.ID = uuid.New().String()
	}
	query := `
		INSERT INTO deliveries (id, delivery_number, order_id, customer_name, phone, delivery_address, delivered_at, scheduled_date, status, notes, assigned_to_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.DeliveryNumber, nullIfEmpty(delivery.OrderID),
		delivery.CustomerName, nullIfEmpty(delivery.Phone), delivery.DeliveryAddress,
		delivery.DeliveredAt, delivery.ScheduledDate, delivery.Status,
		nullIfEmpty(delivery.Notes), nullIfEmpty(delivery.AssignedToID),
		delivery.CreatedAt, delivery.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateNumber
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la entrega.
func (r *DeliveryRepo) CreateItem(item *entity.DeliveryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO delivery_items (id, delivery_id, order_item_id, product_name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.DeliveryID, nullIfEmpty(item.OrderItemID),
		item.ProductName, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert delivery item: %w", err)
	}
	return nil
}

// GetByID obtiene una entrega por ID. Retorna (nil, nil) si no existe.
func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1`
	d, err := scanDelivery(r.q.QueryRow(context.Background(), query, id).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return d, nil
}

// GetItemsByDeliveryID obtiene todas las líneas de una entrega.
func (r *DeliveryRepo) GetItemsByDeliveryID(deliveryID string) ([]*entity.DeliveryItem, error) {
	query := `
		SELECT id, delivery_id, order_item_id, product_name, quantity, unit_price
		FROM delivery_items WHERE delivery_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("list delivery items: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryItem
	for rows.Next() {
		var it entity.DeliveryItem
		var orderItemID *string
		if err := rows.Scan(&it.ID, &it.DeliveryID, &orderItemID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan delivery item: %w", err)
		}
		it.OrderItemID = derefStr(orderItemID)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista entregas paginadas, opcionalmente por estado.
func (r *DeliveryRepo) List(status string, limit, offset int) ([]*entity.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza estado, fecha de entrega y repartidor asignado.
func (r *DeliveryRepo) UpdateStatus(delivery *entity.Delivery) error {
	query := `
		UPDATE deliveries
		SET status = $2, delivered_at = $3, assigned_to_id = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.Status, delivery.DeliveredAt,
		nullIfEmpty(delivery.AssignedToID), delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDelivery(scan func(...any) error) (*entity.Delivery, error) {
	var d entity.Delivery
	var orderID, phone, notes, assignedToID *string
	err := scan(
		&d.ID, &d.DeliveryNumber, &orderID, &d.CustomerName, &phone, &d.DeliveryAddress,
		&d.DeliveredAt, &d.ScheduledDate, &d.Status, &notes, &assignedToID,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.OrderID = derefStr(orderID)
	d.Phone = derefStr(phone)
	d.Notes = derefStr(notes)
	d.AssignedToID = derefStr(assignedToID)
	return &d, nil
}

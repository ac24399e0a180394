package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, customer_name, phone, email, order_date,
	subtotal, discount, tax_percent, tax_amount, grand_total,
	payment_status, payment_method, order_status, delivery_status,
	notes, created_by_id, created_at, updated_at`

// Create persiste la cabecera del pedido. El índice único de order_number
// convierte la carrera residual de numeración en domain.ErrDuplicateNumber,
// que el caso de uso reintenta una vez con un número fresco.
func (r *OrderRepo) Create(order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, order_number, customer_name, phone, email, order_date, subtotal, discount, tax_percent, tax_amount, grand_total, payment_status, payment_method, order_status, delivery_status, notes, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.CustomerName,
		nullIfEmpty(order.Phone), nullIfEmpty(order.Email), order.OrderDate,
		order.Subtotal, order.Discount, order.TaxPercent, order.TaxAmount, order.GrandTotal,
		order.PaymentStatus, nullIfEmpty(order.PaymentMethod), order.OrderStatus, order.DeliveryStatus,
		nullIfEmpty(order.Notes), nullIfEmpty(order.CreatedByID), order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateNumber
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea del pedido.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, description, buying_price, unit_price, quantity, discount_percent, subtotal, is_manual_entry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, nullIfEmpty(item.ProductID), item.ProductName,
		nullIfEmpty(item.Description), item.BuyingPrice, item.UnitPrice,
		item.Quantity, item.DiscountPercent, item.Subtotal, item.IsManualEntry,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID. Retorna (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetItemsByOrderID obtiene todas las líneas de un pedido.
func (r *OrderRepo) GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, description, buying_price, unit_price, quantity, discount_percent, subtotal, is_manual_entry
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		var productID, description *string
		if err := rows.Scan(
			&it.ID, &it.OrderID, &productID, &it.ProductName, &description,
			&it.BuyingPrice, &it.UnitPrice, &it.Quantity, &it.DiscountPercent,
			&it.Subtotal, &it.IsManualEntry,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		it.ProductID = derefStr(productID)
		it.Description = derefStr(description)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista pedidos con filtros opcionales de estado y rango de fechas.
func (r *OrderRepo) List(filter repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}
	if filter.OrderStatus != "" {
		args = append(args, filter.OrderStatus)
		query += ` AND order_status = $` + strconv.Itoa(len(args))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		query += ` AND payment_status = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND order_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND order_date <= $` + strconv.Itoa(len(args))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza los estados del pedido (pago, pedido, entrega).
func (r *OrderRepo) UpdateStatus(order *entity.Order) error {
	query := `
		UPDATE orders
		SET payment_status = $2, payment_method = $3, order_status = $4,
		    delivery_status = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		order.ID, order.PaymentStatus, nullIfEmpty(order.PaymentMethod),
		order.OrderStatus, order.DeliveryStatus, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) scanOne(row pgx.Row) (*entity.Order, error) {
	o, err := scanOrder(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) scanRow(rows pgx.Rows) (*entity.Order, error) {
	o, err := scanOrder(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return o, nil
}

func scanOrder(scan func(...any) error) (*entity.Order, error) {
	var o entity.Order
	var phone, email, paymentMethod, notes, createdByID *string
	err := scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &phone, &email, &o.OrderDate,
		&o.Subtotal, &o.Discount, &o.TaxPercent, &o.TaxAmount, &o.GrandTotal,
		&o.PaymentStatus, &paymentMethod, &o.OrderStatus, &o.DeliveryStatus,
		&notes, &createdByID, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Phone = derefStr(phone)
	o.Email = derefStr(email)
	o.PaymentMethod = derefStr(paymentMethod)
	o.Notes = derefStr(notes)
	o.CreatedByID = derefStr(createdByID)
	return &o, nil
}

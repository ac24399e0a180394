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

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación de QuotationRepository (usable con pool o tx).
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

const quotationColumns = `id, quotation_number, customer_name, phone, email, valid_until,
	subtotal, discount, tax_percent, tax_amount, grand_total,
	status, notes, created_by_id, created_at, updated_at`

// Create persiste la cabecera de la cotización.
func (r *QuotationRepo) Create(quotation *entity.Quotation) error {
	if quotation.ID == "" {
		quotation.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quotations (id, quotation_number, customer_name, phone, email, valid_until, subtotal, discount, tax_percent, tax_amount, grand_total, status, notes, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		quotation.ID, quotation.QuotationNumber, quotation.CustomerName,
		nullIfEmpty(quotation.Phone), nullIfEmpty(quotation.Email), quotation.ValidUntil,
		quotation.Subtotal, quotation.Discount, quotation.TaxPercent,
		quotation.TaxAmount, quotation.GrandTotal,
		quotation.Status, nullIfEmpty(quotation.Notes), nullIfEmpty(quotation.CreatedByID),
		quotation.CreatedAt, quotation.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateNumber
		}
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la cotización.
func (r *QuotationRepo) CreateItem(item *entity.QuotationItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quotation_items (id, quotation_id, product_id, product_name, description, unit_price, quantity, discount_percent, subtotal, is_manual_entry)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuotationID, nullIfEmpty(item.ProductID), item.ProductName,
		nullIfEmpty(item.Description), item.UnitPrice, item.Quantity,
		item.DiscountPercent, item.Subtotal, item.IsManualEntry,
	)
	if err != nil {
		return fmt.Errorf("insert quotation item: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID. Retorna (nil, nil) si no existe.
func (r *QuotationRepo) GetByID(id string) (*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations WHERE id = $1`
	q, err := scanQuotation(r.q.QueryRow(context.Background(), query, id).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	return q, nil
}

// GetItemsByQuotationID obtiene todas las líneas de una cotización.
func (r *QuotationRepo) GetItemsByQuotationID(quotationID string) ([]*entity.QuotationItem, error) {
	query := `
		SELECT id, quotation_id, product_id, product_name, description, unit_price, quantity, discount_percent, subtotal, is_manual_entry
		FROM quotation_items WHERE quotation_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("list quotation items: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuotationItem
	for rows.Next() {
		var it entity.QuotationItem
		var productID, description *string
		if err := rows.Scan(
			&it.ID, &it.QuotationID, &productID, &it.ProductName, &description,
			&it.UnitPrice, &it.Quantity, &it.DiscountPercent, &it.Subtotal, &it.IsManualEntry,
		); err != nil {
			return nil, fmt.Errorf("scan quotation item: %w", err)
		}
		it.ProductID = derefStr(productID)
		it.Description = derefStr(description)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista cotizaciones paginadas, opcionalmente por estado.
func (r *QuotationRepo) List(status string, limit, offset int) ([]*entity.Quotation, error) {
	query := `SELECT ` + quotationColumns + ` FROM quotations`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza el estado de la cotización.
func (r *QuotationRepo) UpdateStatus(quotation *entity.Quotation) error {
	query := `UPDATE quotations SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		quotation.ID, quotation.Status, quotation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quotation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItemsByQuotationID borra todas las líneas (para reemplazo de ítems).
func (r *QuotationRepo) DeleteItemsByQuotationID(quotationID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM quotation_items WHERE quotation_id = $1`, quotationID)
	if err != nil {
		return fmt.Errorf("delete quotation items: %w", err)
	}
	return nil
}

// UpdateTotals actualiza descuento, impuesto y totales tras reemplazar las líneas.
func (r *QuotationRepo) UpdateTotals(quotation *entity.Quotation) error {
	query := `
		UPDATE quotations
		SET subtotal = $2, discount = $3, tax_percent = $4, tax_amount = $5,
		    grand_total = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		quotation.ID, quotation.Subtotal, quotation.Discount, quotation.TaxPercent,
		quotation.TaxAmount, quotation.GrandTotal, quotation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quotation totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanQuotation(scan func(...any) error) (*entity.Quotation, error) {
	var q entity.Quotation
	var phone, email, notes, createdByID *string
	err := scan(
		&q.ID, &q.QuotationNumber, &q.CustomerName, &phone, &email, &q.ValidUntil,
		&q.Subtotal, &q.Discount, &q.TaxPercent, &q.TaxAmount, &q.GrandTotal,
		&q.Status, &notes, &createdByID, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	q.Phone = derefStr(phone)
	q.Email = derefStr(email)
	q.Notes = derefStr(notes)
	q.CreatedByID = derefStr(createdByID)
	return &q, nil
}

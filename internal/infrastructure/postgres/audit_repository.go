package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de AuditLogRepository. Solo inserta y lista:
// el registro de auditoría es inmutable.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create inserta una entrada de auditoría.
func (r *AuditLogRepo) Create(entry *entity.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, details, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, nullIfEmpty(entry.UserID), entry.Action,
		entry.EntityType, nullIfEmpty(entry.EntityID),
		nullIfEmpty(entry.Details), nullIfEmpty(entry.IPAddress), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List lista entradas de auditoría, las más recientes primero.
func (r *AuditLogRepo) List(limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_id, details, ip_address, created_at
		FROM audit_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var a entity.AuditLog
		var userID, entityID, details, ipAddress *string
		if err := rows.Scan(&a.ID, &userID, &a.Action, &a.EntityType, &entityID, &details, &ipAddress, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		a.UserID = derefStr(userID)
		a.EntityID = derefStr(entityID)
		a.Details = derefStr(details)
		a.IPAddress = derefStr(ipAddress)
		list = append(list, &a)
	}
	return list, rows.Err()
}

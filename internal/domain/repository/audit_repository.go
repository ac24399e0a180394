package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// AuditLogRepository define el puerto de persistencia para el registro de auditoría.
type AuditLogRepository interface {
	Create(entry *entity.AuditLog) error
	List(limit, offset int) ([]*entity.AuditLog, error)
}

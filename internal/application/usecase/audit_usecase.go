package usecase

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// AuditUseCase consulta del registro de auditoría.
type AuditUseCase struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(auditRepo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// ListAuditLogs lista entradas de auditoría, las más recientes primero.
func (uc *AuditUseCase) ListAuditLogs(ctx context.Context, page dto.PageRequest) (*dto.AuditLogListResponse, error) {
	page.DefaultPage()
	entries, err := uc.auditRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.AuditLogListResponse{
		Items: make([]dto.AuditLogResponse, 0, len(entries)),
		Page:  dto.NewPage(page.Limit, page.Offset, len(entries)),
	}
	for _, e := range entries {
		resp.Items = append(resp.Items, dto.AuditLogResponse{
			ID:         e.ID,
			UserID:     e.UserID,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Details:    e.Details,
			IPAddress:  e.IPAddress,
			CreatedAt:  e.CreatedAt,
		})
	}
	return resp, nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// SettingUseCase almacén clave/valor de opciones editables en runtime.
type SettingUseCase struct {
	settingRepo repository.SettingRepository
	auditRepo   repository.AuditLogRepository
	log         *logger.Logger
}

// NewSettingUseCase construye el caso de uso.
func NewSettingUseCase(settingRepo repository.SettingRepository, auditRepo repository.AuditLogRepository, log *logger.Logger) *SettingUseCase {
	return &SettingUseCase{settingRepo: settingRepo, auditRepo: auditRepo, log: log}
}

// GetSetting obtiene un ajuste por clave.
func (uc *SettingUseCase) GetSetting(ctx context.Context, key string) (*dto.SettingResponse, error) {
	setting, err := uc.settingRepo.Get(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, domain.ErrNotFound
	}
	return toSettingResponse(setting), nil
}

// SetSetting crea o actualiza un ajuste y deja rastro en auditoría.
func (uc *SettingUseCase) SetSetting(ctx context.Context, userID, key string, in dto.SetSettingRequest) (*dto.SettingResponse, error) {
	if key == "" || in.Value == "" {
		return nil, fmt.Errorf("%w: clave y valor son obligatorios", domain.ErrInvalidInput)
	}
	category := in.Category
	if category == "" {
		category = "general"
	}
	setting, err := uc.settingRepo.Set(key, in.Value, category)
	if err != nil {
		return nil, err
	}
	if err := uc.auditRepo.Create(&entity.AuditLog{
		UserID:     userID,
		Action:     "setting.set",
		EntityType: "setting",
		EntityID:   setting.ID,
		IPAddress:  entity.ClientIP(ctx),
		Details:    fmt.Sprintf("%s = %s", key, in.Value),
		CreatedAt:  setting.UpdatedAt,
	}); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("auditoría de ajuste no registrada")
	}
	return toSettingResponse(setting), nil
}

// ListSettings lista todos los ajustes.
func (uc *SettingUseCase) ListSettings(ctx context.Context) ([]dto.SettingResponse, error) {
	settings, err := uc.settingRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SettingResponse, 0, len(settings))
	for _, s := range settings {
		out = append(out, *toSettingResponse(s))
	}
	return out, nil
}

func toSettingResponse(s *entity.Setting) *dto.SettingResponse {
	return &dto.SettingResponse{
		ID:        s.ID,
		Key:       s.Key,
		Value:     s.Value,
		Category:  s.Category,
		UpdatedAt: s.UpdatedAt,
	}
}

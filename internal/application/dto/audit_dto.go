package dto

import "time"

// AuditLogResponse salida de una entrada de auditoría.
type AuditLogResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id,omitempty"`
	Details    string    `json:"details,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditLogListResponse lista paginada de auditoría.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// SetSettingRequest crea o actualiza un ajuste por clave.
type SetSettingRequest struct {
	Value    string `json:"value" validate:"required"`
	Category string `json:"category"`
}

// SettingResponse salida de un ajuste.
type SettingResponse struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updated_at"`
}

package entity

import (
	"context"
	"time"
)

// AuditLog registro inmutable de una acción de negocio (crear pedido, ajustar stock, etc.).
type AuditLog struct {
	ID         string
	UserID     string
	Action     string // ej. "order.create", "stock.adjust"
	EntityType string
	EntityID   string
	Details    string
	IPAddress  string
	CreatedAt  time.Time
}

type clientIPKey struct{}

// WithClientIP anota el contexto con la IP del cliente que originó la petición.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP extrae la IP del cliente del contexto; vacío si no fue anotada.
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

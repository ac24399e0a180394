package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleSales    = "sales"
	RoleDelivery = "delivery"
)

// ValidRole valida un rol.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleManager, RoleSales, RoleDelivery:
		return true
	}
	return false
}

// User cuenta de usuario de la aplicación.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

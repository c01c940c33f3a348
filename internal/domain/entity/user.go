package entity

import "time"

// Roles válidos para User. Solo admin tiene privilegios adicionales
// (gestión de usuarios); staff y viewer son equivalentes para el catálogo.
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleViewer = "viewer"
)

// ValidRole verifica que el rol sea uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff || role == RoleViewer
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string // único global
	Email        string // único global
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, staff, viewer
	CreatedAt    time.Time
}

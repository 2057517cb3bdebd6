package entity

import "time"

// Roles de usuario para RBAC.
const (
	RoleAdmin      = "admin"
	RoleProduccion = "produccion"
	RoleVentas     = "ventas"
)

// User representa un usuario de la aplicación.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, produccion, ventas
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package entity

import "time"

// Role rol cerrado del sistema; cualquier otro valor es inválido.
type Role string

// Roles válidos para User.
const (
	RoleAdmin    Role = "admin"
	RoleCashier  Role = "cashier"
	RoleCustomer Role = "customer"
)

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCashier, RoleCustomer:
		return true
	}
	return false
}

// User representa un usuario del POS (administrador, cajero o cliente federado).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt; vacío para cuentas creadas vía Google
	Role         Role
	PhoneNumber  *string // opcional, único cuando existe
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

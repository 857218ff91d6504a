package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleOperator
}

// User usuario del sistema; solo se usa para autorización.
type User struct {
	ID           int64
	Username     string // único
	Email        string
	FullName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, operator
	CreatedAt    time.Time
}

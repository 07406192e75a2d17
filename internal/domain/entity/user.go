package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// ValidRole indica si role es un rol soportado.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleOperator
}

// User representa un usuario del sistema. StaffID lo vincula opcionalmente a un funcionario.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string // admin, operator
	StaffID      string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

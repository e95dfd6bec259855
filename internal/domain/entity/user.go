package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "ADMIN"
	RoleManager   = "MANAGER"
	RoleSales     = "SALES"
	RolePurchase  = "PURCHASE"
	RoleWarehouse = "WAREHOUSE"
	RoleFinance   = "FINANCE"
	RoleEmployee  = "EMPLOYEE"
)

// ValidRole indica si s es uno de los roles conocidos.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleManager, RoleSales, RolePurchase, RoleWarehouse, RoleFinance, RoleEmployee:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Phone        string
	Department   string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta contable.
const (
	AccountTypeAsset     = "ASSET"
	AccountTypeLiability = "LIABILITY"
	AccountTypeEquity    = "EQUITY"
	AccountTypeRevenue   = "REVENUE"
	AccountTypeExpense   = "EXPENSE"
)

// ValidAccountType indica si s es un tipo de cuenta conocido.
func ValidAccountType(s string) bool {
	switch s {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// Account representa una cuenta contable, opcionalmente anidada bajo un padre.
type Account struct {
	ID        string
	Code      string // código único de negocio
	Name      string
	Type      string
	ParentID  *string
	Balance   decimal.Decimal
	IsSystem  bool // cuentas sembradas, no eliminables
	Children  []Account
	CreatedAt time.Time
	UpdatedAt time.Time
}

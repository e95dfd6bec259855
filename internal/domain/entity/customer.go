package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cliente.
const (
	CustomerTypeCompany    = "COMPANY"
	CustomerTypeIndividual = "INDIVIDUAL"
)

// Customer representa un cliente (empresa o persona natural).
type Customer struct {
	ID          string
	Code        string // código único de negocio
	Name        string
	Type        string
	Email       string
	Phone       string
	Address     string
	TaxNumber   string
	BankAccount string
	CreditLimit decimal.Decimal
	CreditDays  int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

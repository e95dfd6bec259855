package entity

import "time"

// Supplier representa un proveedor.
type Supplier struct {
	ID            string
	Code          string // código único de negocio
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	TaxNumber     string
	BankAccount   string
	LeadTime      int // días de entrega
	MinOrderQty   int64
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRequest body para crear clientes.
type CustomerRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Type        string          `json:"type"` // COMPANY | INDIVIDUAL
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	TaxNumber   string          `json:"taxNumber,omitempty"`
	BankAccount string          `json:"bankAccount,omitempty"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	CreditDays  int             `json:"creditDays"`
}

// UpdateCustomerRequest body para PUT /api/customers.
type UpdateCustomerRequest struct {
	ID          string           `json:"id"`
	Name        *string          `json:"name,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Address     *string          `json:"address,omitempty"`
	TaxNumber   *string          `json:"taxNumber,omitempty"`
	BankAccount *string          `json:"bankAccount,omitempty"`
	CreditLimit *decimal.Decimal `json:"creditLimit,omitempty"`
	CreditDays  *int             `json:"creditDays,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
}

// CustomerResponse cliente serializado.
type CustomerResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Address     string          `json:"address,omitempty"`
	TaxNumber   string          `json:"taxNumber,omitempty"`
	BankAccount string          `json:"bankAccount,omitempty"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	CreditDays  int             `json:"creditDays"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SupplierRequest body para crear proveedores.
type SupplierRequest struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	ContactPerson string `json:"contactPerson,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	TaxNumber     string `json:"taxNumber,omitempty"`
	BankAccount   string `json:"bankAccount,omitempty"`
	LeadTime      int    `json:"leadTime"`
	MinOrderQty   int64  `json:"minOrderQty"`
}

// UpdateSupplierRequest body para PUT /api/suppliers.
type UpdateSupplierRequest struct {
	ID            string  `json:"id"`
	Name          *string `json:"name,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	TaxNumber     *string `json:"taxNumber,omitempty"`
	BankAccount   *string `json:"bankAccount,omitempty"`
	LeadTime      *int    `json:"leadTime,omitempty"`
	MinOrderQty   *int64  `json:"minOrderQty,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

// SupplierResponse proveedor serializado.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	TaxNumber     string    `json:"taxNumber,omitempty"`
	BankAccount   string    `json:"bankAccount,omitempty"`
	LeadTime      int       `json:"leadTime"`
	MinOrderQty   int64     `json:"minOrderQty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// WarehouseRequest body para crear bodegas.
type WarehouseRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	Contact   string `json:"contact,omitempty"`
	Phone     string `json:"phone,omitempty"`
	ManagerID string `json:"managerId,omitempty"`
}

// UpdateWarehouseRequest body para PUT /api/warehouses.
type UpdateWarehouseRequest struct {
	ID        string  `json:"id"`
	Name      *string `json:"name,omitempty"`
	Address   *string `json:"address,omitempty"`
	Contact   *string `json:"contact,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	ManagerID *string `json:"managerId,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// WarehouseResponse bodega serializada.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Contact   string    `json:"contact,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	ManagerID string    `json:"managerId,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

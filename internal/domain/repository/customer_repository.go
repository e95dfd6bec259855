package repository

import "github.com/tu-usuario/erp-pro/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByCode(code string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	List(search string, limit, offset int) ([]*entity.Customer, error)
	Count(search string) (int, error)
	Delete(id string) error
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByCode(code string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(search string, limit, offset int) ([]*entity.Supplier, error)
	Count(search string) (int, error)
	Delete(id string) error
}

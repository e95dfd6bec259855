package repository

import "github.com/tu-usuario/erp-pro/internal/domain/entity"

// OrderRepository define el puerto de persistencia para órdenes de venta.
// Create persiste cabecera y líneas juntas.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error) // incluye líneas
	UpdateHeader(order *entity.Order) error   // solo editable en DRAFT; lo valida el caso de uso
	UpdateStatus(id, status string) error
	// UpdateStatusFrom cambia el estado solo si el actual es from; devuelve
	// domain.ErrConflict si otro actor lo cambió antes.
	UpdateStatusFrom(id, from, to string) error
	Delete(id string) error // borra cabecera y líneas
	List(search, status string, limit, offset int) ([]*entity.Order, error)
	Count(search, status string) (int, error)
	CountByCustomer(customerID string) (int, error)
}

// PurchaseRepository define el puerto de persistencia para órdenes de compra.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error) // incluye líneas
	// GetByIDForUpdate bloquea la cabecera dentro de la tx actual; la
	// recepción revalida estado y pendientes sobre esta lectura fresca.
	GetByIDForUpdate(id string) (*entity.Purchase, error)
	UpdateHeader(purchase *entity.Purchase) error
	UpdateStatus(id, status string) error
	// UpdateReceived fija receivedQty por línea y la fecha de recepción.
	UpdateReceived(purchase *entity.Purchase) error
	Delete(id string) error
	List(search, status string, limit, offset int) ([]*entity.Purchase, error)
	Count(search, status string) (int, error)
	CountBySupplier(supplierID string) (int, error)
}

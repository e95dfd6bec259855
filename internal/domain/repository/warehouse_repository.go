package repository

import "github.com/tu-usuario/erp-pro/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	GetByCode(code string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(search string, limit, offset int) ([]*entity.Warehouse, error)
	Count(search string) (int, error)
	Delete(id string) error
}

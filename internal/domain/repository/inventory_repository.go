package repository

import "github.com/tu-usuario/erp-pro/internal/domain/entity"

// InventoryRepository define el puerto de persistencia para registros de
// inventario (clave natural producto+bodega).
type InventoryRepository interface {
	GetByID(id string) (*entity.Inventory, error)
	GetByPair(productID, warehouseID string) (*entity.Inventory, error)
	// GetPairForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene
	// sentido dentro de una transacción.
	GetPairForUpdate(productID, warehouseID string) (*entity.Inventory, error)
	Create(inv *entity.Inventory) error
	UpdateQuantity(id string, quantity int64) error
	UpdateMeta(inv *entity.Inventory) error
	Delete(id string) error
	List(search, warehouseID string, limit, offset int) ([]*entity.Inventory, error)
	Count(search, warehouseID string) (int, error)
	CountByProduct(productID string) (int, error)
	CountByWarehouse(warehouseID string) (int, error)
}

// InventoryMovementRepository define el puerto del libro de movimientos
// (append-only: solo Create y lecturas).
type InventoryMovementRepository interface {
	Create(mov *entity.InventoryMovement) error
	ListByInventory(inventoryID string, limit int) ([]*entity.InventoryMovement, error)
	ListRecent(limit int) ([]*entity.InventoryMovement, error)
}

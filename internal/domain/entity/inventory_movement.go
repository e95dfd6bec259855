package entity

import "time"

// InventoryMovement es una entrada del libro de movimientos: un cambio de
// cantidad con signo aplicado a un registro de inventario. Append-only;
// jamás se modifica después de creado.
//
// ProductID y WarehouseID van desnormalizados para que el historial
// sobreviva a la eliminación del registro de inventario padre.
type InventoryMovement struct {
	ID          string
	InventoryID *string // nil si el registro padre fue eliminado
	ProductID   string
	WarehouseID string
	Kind        string // PURCHASE_IN, SALE_OUT, ...
	Quantity    int64  // con signo: positivo entradas, negativo salidas
	OperatorID  string
	Note        string
	CreatedAt   time.Time
}

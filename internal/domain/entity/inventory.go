package entity

import "time"

// Inventory representa la existencia actual de un producto en una bodega.
// Clave natural compuesta (ProductID, WarehouseID). Quantity nunca debe
// quedar negativa: el motor de ajustes lo garantiza bajo transacción.
type Inventory struct {
	ID           string
	ProductID    string
	WarehouseID  string
	Quantity     int64 // unidades enteras
	ReservedQty  int64
	ReorderPoint int64
	SafetyStock  int64
	Location     string // código de ubicación/bin, texto libre
	LastCheckAt  *time.Time
	UpdatedAt    time.Time
}

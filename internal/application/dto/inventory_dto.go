package dto

import "time"

// AdjustInventoryRequest body para POST /api/inventory.
// Quantity es una magnitud (> 0); el signo lo deriva el tipo de movimiento.
type AdjustInventoryRequest struct {
	ProductID   string `json:"productId"`
	WarehouseID string `json:"warehouseId"`
	Type        string `json:"type"` // PURCHASE_IN, SALE_OUT, ...
	Quantity    int64  `json:"quantity"`
	Note        string `json:"note,omitempty"`
}

// UpdateInventoryRequest body para PUT /api/inventory: solo metadatos,
// nunca cantidades (esas van por movimientos).
type UpdateInventoryRequest struct {
	ID           string `json:"id"`
	ReorderPoint int64  `json:"reorderPoint"`
	SafetyStock  int64  `json:"safetyStock"`
	Location     string `json:"location"`
}

// InventoryResponse registro de inventario serializado.
type InventoryResponse struct {
	ID           string     `json:"id"`
	ProductID    string     `json:"productId"`
	WarehouseID  string     `json:"warehouseId"`
	Quantity     int64      `json:"quantity"`
	ReservedQty  int64      `json:"reservedQty"`
	ReorderPoint int64      `json:"reorderPoint"`
	SafetyStock  int64      `json:"safetyStock"`
	Location     string     `json:"location,omitempty"`
	LastCheckAt  *time.Time `json:"lastCheckAt,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// MovementResponse movimiento del libro serializado.
type MovementResponse struct {
	ID          string    `json:"id"`
	InventoryID *string   `json:"inventoryId,omitempty"`
	ProductID   string    `json:"productId"`
	WarehouseID string    `json:"warehouseId"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"` // con signo
	OperatorID  string    `json:"operatorId"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesByStatus agregado de ventas por estado.
type SalesByStatus struct {
	Status      string
	OrderCount  int
	TotalAmount decimal.Decimal
	FinalAmount decimal.Decimal
}

// SalesDailyRow ventas agregadas de un día.
type SalesDailyRow struct {
	Date       time.Time
	OrderCount int
	Revenue    decimal.Decimal
}

// InventoryStatusSummary conteos de estado de inventario.
type InventoryStatusSummary struct {
	Total      int
	Zero       int             // quantity == 0
	Low        int             // 0 < quantity <= safetyStock
	Normal     int             // quantity > safetyStock
	TotalValue decimal.Decimal // sum(quantity * costPrice)
}

// LowStockRow registro por debajo de su punto de reorden con cantidad sugerida.
type LowStockRow struct {
	InventoryID  string
	ProductID    string
	SKU          string
	ProductName  string
	WarehouseID  string
	Quantity     int64
	ReorderPoint int64
	SafetyStock  int64
	SuggestedQty int64 // reorderPoint + safetyStock - quantity
}

// ReportRepository define el puerto de agregaciones para reportes.
// Las órdenes CANCELLED quedan siempre fuera de los agregados de ventas.
type ReportRepository interface {
	SalesSummary(start, end time.Time) ([]SalesByStatus, error)
	SalesDaily(start, end time.Time) ([]SalesDailyRow, error)
	InventoryStatus() (*InventoryStatusSummary, error)
	LowStock(warehouseID string) ([]LowStockRow, error)
}

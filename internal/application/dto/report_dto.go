package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummaryResponse reporte de ventas agregado.
type SalesSummaryResponse struct {
	Type    string           `json:"type"` // "summary"
	Period  ReportPeriod     `json:"period"`
	Summary SalesSummaryBody `json:"summary"`
}

// ReportPeriod rango de fechas del reporte.
type ReportPeriod struct {
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// SalesSummaryBody totales y desglose por estado.
type SalesSummaryBody struct {
	TotalOrders  int                  `json:"totalOrders"`
	TotalRevenue decimal.Decimal      `json:"totalRevenue"`
	ByStatus     []SalesByStatusEntry `json:"byStatus"`
}

// SalesByStatusEntry agregado de un estado.
type SalesByStatusEntry struct {
	Status      string          `json:"status"`
	OrderCount  int             `json:"orderCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	FinalAmount decimal.Decimal `json:"finalAmount"`
}

// SalesDailyResponse tendencia diaria de ventas.
type SalesDailyResponse struct {
	Type string            `json:"type"` // "daily"
	Data []SalesDailyEntry `json:"data"`
}

// SalesDailyEntry ventas de un día.
type SalesDailyEntry struct {
	Date       string          `json:"date"` // YYYY-MM-DD
	OrderCount int             `json:"orderCount"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// InventoryReportResponse reporte de estado de inventario.
type InventoryReportResponse struct {
	Type    string               `json:"type"` // "status"
	Summary InventoryReportStats `json:"summary"`
	// LowStock registros en o bajo su punto de reorden, con sugerencia de pedido.
	LowStock []LowStockEntry `json:"lowStock"`
}

// InventoryReportStats conteos de estado.
type InventoryReportStats struct {
	Total      int             `json:"total"`
	Zero       int             `json:"zero"`
	Low        int             `json:"low"`
	Normal     int             `json:"normal"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// LowStockEntry registro bajo en stock.
type LowStockEntry struct {
	InventoryID  string `json:"inventoryId"`
	ProductID    string `json:"productId"`
	SKU          string `json:"sku"`
	ProductName  string `json:"productName"`
	WarehouseID  string `json:"warehouseId"`
	Quantity     int64  `json:"quantity"`
	ReorderPoint int64  `json:"reorderPoint"`
	SafetyStock  int64  `json:"safetyStock"`
	SuggestedQty int64  `json:"suggestedQty"`
}

// MovementsReportResponse últimos movimientos de inventario.
type MovementsReportResponse struct {
	Type string             `json:"type"` // "movements"
	Data []MovementResponse `json:"data"`
}

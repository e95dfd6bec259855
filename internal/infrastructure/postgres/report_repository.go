package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones de reportes sobre PostgreSQL.
// Las órdenes CANCELLED quedan fuera de todos los agregados de ventas.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de agregaciones para reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// SalesSummary agrega órdenes por estado dentro del rango.
func (r *ReportRepo) SalesSummary(start, end time.Time) ([]repository.SalesByStatus, error) {
	query := `
		SELECT status, count(*), coalesce(sum(total_amount), 0), coalesce(sum(final_amount), 0)
		FROM orders
		WHERE status <> 'CANCELLED' AND order_date >= $1 AND order_date < $2
		GROUP BY status
		ORDER BY status`
	rows, err := r.q.Query(context.Background(), query, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}
	defer rows.Close()
	var list []repository.SalesByStatus
	for rows.Next() {
		var row repository.SalesByStatus
		if err := rows.Scan(&row.Status, &row.OrderCount, &row.TotalAmount, &row.FinalAmount); err != nil {
			return nil, fmt.Errorf("scan sales summary: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// SalesDaily agrega órdenes por día dentro del rango.
func (r *ReportRepo) SalesDaily(start, end time.Time) ([]repository.SalesDailyRow, error) {
	query := `
		SELECT date_trunc('day', order_date), count(*), coalesce(sum(final_amount), 0)
		FROM orders
		WHERE status <> 'CANCELLED' AND order_date >= $1 AND order_date < $2
		GROUP BY 1
		ORDER BY 1`
	rows, err := r.q.Query(context.Background(), query, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales daily: %w", err)
	}
	defer rows.Close()
	var list []repository.SalesDailyRow
	for rows.Next() {
		var row repository.SalesDailyRow
		if err := rows.Scan(&row.Date, &row.OrderCount, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan sales daily: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// InventoryStatus cuenta registros por franja de existencia y valoriza el stock.
func (r *ReportRepo) InventoryStatus() (*repository.InventoryStatusSummary, error) {
	var s repository.InventoryStatusSummary
	err := r.q.QueryRow(context.Background(), `
		SELECT count(*),
		       count(*) FILTER (WHERE i.quantity = 0),
		       count(*) FILTER (WHERE i.quantity > 0 AND i.quantity <= i.safety_stock),
		       count(*) FILTER (WHERE i.quantity > i.safety_stock),
		       coalesce(sum(i.quantity * p.cost_price), 0)
		FROM inventory i
		JOIN products p ON p.id = i.product_id`).Scan(
		&s.Total, &s.Zero, &s.Low, &s.Normal, &s.TotalValue)
	if err != nil {
		return nil, fmt.Errorf("inventory status: %w", err)
	}
	return &s, nil
}

// LowStock lista registros en o por debajo de su punto de reorden.
func (r *ReportRepo) LowStock(warehouseID string) ([]repository.LowStockRow, error) {
	query := `
		SELECT i.id, p.id, p.sku, p.name, i.warehouse_id, i.quantity, i.reorder_point, i.safety_stock
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.quantity <= i.reorder_point
		  AND ($1 = '' OR i.warehouse_id = $1)
		ORDER BY i.quantity ASC, p.sku`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	var list []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.InventoryID, &row.ProductID, &row.SKU, &row.ProductName,
			&row.WarehouseID, &row.Quantity, &row.ReorderPoint, &row.SafetyStock); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		row.SuggestedQty = row.ReorderPoint + row.SafetyStock - row.Quantity
		list = append(list, row)
	}
	return list, rows.Err()
}

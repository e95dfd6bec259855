// Package reports arma los reportes de ventas e inventario sobre las
// agregaciones del repositorio, con caché de lectura opcional.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/application/inventory"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

// Cache puerto de caché de reportes (implementado por infrastructure/cache).
// Get devuelve (nil, nil) en miss; los fallos de caché nunca rompen el reporte.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// UseCase reportes agregados.
type UseCase struct {
	reportRepo repository.ReportRepository
	movRepo    repository.InventoryMovementRepository
	cache      Cache
	ttl        time.Duration
}

// NewUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewUseCase(reportRepo repository.ReportRepository, movRepo repository.InventoryMovementRepository, cache Cache, ttl time.Duration) *UseCase {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &UseCase{reportRepo: reportRepo, movRepo: movRepo, cache: cache, ttl: ttl}
}

// cached corre fn con caché JSON de por medio. Errores de caché se ignoran.
func cached[T any](ctx context.Context, uc *UseCase, key string, fn func() (*T, error)) (*T, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, key); err == nil && raw != nil {
			var out T
			if err := json.Unmarshal(raw, &out); err == nil {
				return &out, nil
			}
		}
	}
	out, err := fn()
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			_ = uc.cache.Set(ctx, key, raw, uc.ttl)
		}
	}
	return out, nil
}

// normalizeRange aplica el rango por defecto (últimos 30 días) y valida orden.
func normalizeRange(start, end *time.Time) (time.Time, time.Time, error) {
	now := time.Now()
	s := now.AddDate(0, 0, -30)
	e := now
	if start != nil {
		s = *start
	}
	if end != nil {
		e = *end
	}
	if e.Before(s) {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return s, e, nil
}

// SalesSummary totales de ventas y desglose por estado en el rango.
// Las órdenes canceladas no cuentan.
func (uc *UseCase) SalesSummary(ctx context.Context, start, end *time.Time) (*dto.SalesSummaryResponse, error) {
	s, e, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("reports:sales:summary:%s:%s", s.Format("20060102"), e.Format("20060102"))
	return cached(ctx, uc, key, func() (*dto.SalesSummaryResponse, error) {
		rows, err := uc.reportRepo.SalesSummary(s, e)
		if err != nil {
			return nil, err
		}
		body := dto.SalesSummaryBody{ByStatus: make([]dto.SalesByStatusEntry, 0, len(rows))}
		for _, r := range rows {
			body.TotalOrders += r.OrderCount
			body.TotalRevenue = body.TotalRevenue.Add(r.FinalAmount)
			body.ByStatus = append(body.ByStatus, dto.SalesByStatusEntry{
				Status:      r.Status,
				OrderCount:  r.OrderCount,
				TotalAmount: r.TotalAmount,
				FinalAmount: r.FinalAmount,
			})
		}
		return &dto.SalesSummaryResponse{
			Type:    "summary",
			Period:  dto.ReportPeriod{StartDate: &s, EndDate: &e},
			Summary: body,
		}, nil
	})
}

// SalesDaily tendencia diaria de ventas en el rango.
func (uc *UseCase) SalesDaily(ctx context.Context, start, end *time.Time) (*dto.SalesDailyResponse, error) {
	s, e, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("reports:sales:daily:%s:%s", s.Format("20060102"), e.Format("20060102"))
	return cached(ctx, uc, key, func() (*dto.SalesDailyResponse, error) {
		rows, err := uc.reportRepo.SalesDaily(s, e)
		if err != nil {
			return nil, err
		}
		data := make([]dto.SalesDailyEntry, 0, len(rows))
		for _, r := range rows {
			data = append(data, dto.SalesDailyEntry{
				Date:       r.Date.Format("2006-01-02"),
				OrderCount: r.OrderCount,
				Revenue:    r.Revenue,
			})
		}
		return &dto.SalesDailyResponse{Type: "daily", Data: data}, nil
	})
}

// InventoryStatus estado global del inventario más registros bajos en stock.
func (uc *UseCase) InventoryStatus(ctx context.Context, warehouseID string) (*dto.InventoryReportResponse, error) {
	key := "reports:inventory:status:" + warehouseID
	return cached(ctx, uc, key, func() (*dto.InventoryReportResponse, error) {
		summary, err := uc.reportRepo.InventoryStatus()
		if err != nil {
			return nil, err
		}
		low, err := uc.reportRepo.LowStock(warehouseID)
		if err != nil {
			return nil, err
		}
		entries := make([]dto.LowStockEntry, 0, len(low))
		for _, r := range low {
			entries = append(entries, dto.LowStockEntry{
				InventoryID:  r.InventoryID,
				ProductID:    r.ProductID,
				SKU:          r.SKU,
				ProductName:  r.ProductName,
				WarehouseID:  r.WarehouseID,
				Quantity:     r.Quantity,
				ReorderPoint: r.ReorderPoint,
				SafetyStock:  r.SafetyStock,
				SuggestedQty: r.SuggestedQty,
			})
		}
		return &dto.InventoryReportResponse{
			Type: "status",
			Summary: dto.InventoryReportStats{
				Total:      summary.Total,
				Zero:       summary.Zero,
				Low:        summary.Low,
				Normal:     summary.Normal,
				TotalValue: summary.TotalValue,
			},
			LowStock: entries,
		}, nil
	})
}

// Movements últimos movimientos de inventario. Sin caché: es un feed vivo.
func (uc *UseCase) Movements(limit int) (*dto.MovementsReportResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	list, err := uc.movRepo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		data = append(data, *inventory.ToMovementResponse(m))
	}
	return &dto.MovementsReportResponse{Type: "movements", Data: data}, nil
}

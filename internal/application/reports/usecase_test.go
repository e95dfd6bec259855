package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

type fakeReportRepo struct {
	repository.ReportRepository
	summaryCalls int
}

func (f *fakeReportRepo) SalesSummary(start, end time.Time) ([]repository.SalesByStatus, error) {
	f.summaryCalls++
	return []repository.SalesByStatus{
		{Status: entity.OrderStatusConfirmed, OrderCount: 3, TotalAmount: decimal.NewFromInt(300), FinalAmount: decimal.NewFromInt(339)},
		{Status: entity.OrderStatusCompleted, OrderCount: 2, TotalAmount: decimal.NewFromInt(200), FinalAmount: decimal.NewFromInt(226)},
	}, nil
}

func (f *fakeReportRepo) SalesDaily(start, end time.Time) ([]repository.SalesDailyRow, error) {
	return []repository.SalesDailyRow{
		{Date: time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), OrderCount: 2, Revenue: decimal.NewFromInt(100)},
		{Date: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), OrderCount: 1, Revenue: decimal.NewFromInt(50)},
	}, nil
}

func (f *fakeReportRepo) InventoryStatus() (*repository.InventoryStatusSummary, error) {
	return &repository.InventoryStatusSummary{Total: 10, Zero: 2, Low: 3, Normal: 5, TotalValue: decimal.NewFromInt(1234)}, nil
}

func (f *fakeReportRepo) LowStock(warehouseID string) ([]repository.LowStockRow, error) {
	return []repository.LowStockRow{
		{InventoryID: "inv-1", ProductID: "prod-1", SKU: "SKU-1", Quantity: 2, ReorderPoint: 10, SafetyStock: 5, SuggestedQty: 13},
	}, nil
}

type fakeMovRepo struct {
	repository.InventoryMovementRepository
	lastLimit int
}

func (f *fakeMovRepo) ListRecent(limit int) ([]*entity.InventoryMovement, error) {
	f.lastLimit = limit
	return []*entity.InventoryMovement{{ID: "m-1", Kind: "SALE_OUT", Quantity: -5}}, nil
}

type memCache struct {
	data map[string][]byte
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) { return c.data[key], nil }
func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func TestSalesSummary_AgregaYUsaCache(t *testing.T) {
	repo := &fakeReportRepo{}
	cache := &memCache{data: map[string][]byte{}}
	uc := NewUseCase(repo, &fakeMovRepo{}, cache, time.Minute)
	ctx := context.Background()

	out, err := uc.SalesSummary(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Summary.TotalOrders)
	assert.True(t, out.Summary.TotalRevenue.Equal(decimal.NewFromInt(565)))
	assert.Len(t, out.Summary.ByStatus, 2)
	assert.Equal(t, 1, repo.summaryCalls)

	// segunda lectura sale de caché
	again, err := uc.SalesSummary(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.summaryCalls, "no vuelve a la BD")
	assert.Equal(t, out.Summary.TotalOrders, again.Summary.TotalOrders)
}

func TestSalesSummary_RangoInvertido(t *testing.T) {
	uc := NewUseCase(&fakeReportRepo{}, &fakeMovRepo{}, nil, 0)
	start := time.Now()
	end := start.AddDate(0, 0, -1)
	_, err := uc.SalesSummary(context.Background(), &start, &end)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSalesDaily(t *testing.T) {
	uc := NewUseCase(&fakeReportRepo{}, &fakeMovRepo{}, nil, 0)
	out, err := uc.SalesDaily(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, out.Data, 2)
	assert.Equal(t, "2026-08-27", out.Data[0].Date)
}

func TestInventoryStatus(t *testing.T) {
	uc := NewUseCase(&fakeReportRepo{}, &fakeMovRepo{}, nil, 0)
	out, err := uc.InventoryStatus(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 10, out.Summary.Total)
	require.Len(t, out.LowStock, 1)
	assert.Equal(t, int64(13), out.LowStock[0].SuggestedQty)
}

func TestMovements_LimiteAcotado(t *testing.T) {
	movs := &fakeMovRepo{}
	uc := NewUseCase(&fakeReportRepo{}, movs, nil, 0)

	_, err := uc.Movements(0)
	require.NoError(t, err)
	assert.Equal(t, 50, movs.lastLimit, "límite por defecto")

	_, err = uc.Movements(9999)
	require.NoError(t, err)
	assert.Equal(t, 50, movs.lastLimit, "se recorta el exceso")
}

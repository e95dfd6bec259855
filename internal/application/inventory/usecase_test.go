package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	dominv "github.com/tu-usuario/erp-pro/internal/domain/inventory"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvRepo struct {
	repository.InventoryRepository
	byID map[string]*entity.Inventory
}

func newFakeInvRepo() *fakeInvRepo {
	return &fakeInvRepo{byID: map[string]*entity.Inventory{}}
}

func (f *fakeInvRepo) GetByID(id string) (*entity.Inventory, error) {
	if rec, ok := f.byID[id]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeInvRepo) GetByPair(productID, warehouseID string) (*entity.Inventory, error) {
	for _, rec := range f.byID {
		if rec.ProductID == productID && rec.WarehouseID == warehouseID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInvRepo) GetPairForUpdate(productID, warehouseID string) (*entity.Inventory, error) {
	return f.GetByPair(productID, warehouseID)
}

func (f *fakeInvRepo) Create(inv *entity.Inventory) error {
	cp := *inv
	f.byID[inv.ID] = &cp
	return nil
}

func (f *fakeInvRepo) UpdateQuantity(id string, quantity int64) error {
	f.byID[id].Quantity = quantity
	return nil
}

func (f *fakeInvRepo) UpdateMeta(inv *entity.Inventory) error {
	rec := f.byID[inv.ID]
	rec.ReorderPoint = inv.ReorderPoint
	rec.SafetyStock = inv.SafetyStock
	rec.Location = inv.Location
	return nil
}

func (f *fakeInvRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

type fakeMovRepo struct {
	repository.InventoryMovementRepository
	movs []*entity.InventoryMovement
}

func (f *fakeMovRepo) Create(mov *entity.InventoryMovement) error {
	cp := *mov
	f.movs = append(f.movs, &cp)
	return nil
}

func (f *fakeMovRepo) ListByInventory(inventoryID string, limit int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range f.movs {
		if m.InventoryID != nil && *m.InventoryID == inventoryID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directamente con los fakes (sin tx real).
type fakeTxRunner struct {
	inv *fakeInvRepo
	mov *fakeMovRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.InventoryRepository, repository.InventoryMovementRepository) error) error {
	return fn(f.inv, f.mov)
}

type fakeProductRepo struct {
	repository.ProductRepository
	ids map[string]bool
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if f.ids[id] {
		return &entity.Product{ID: id, Name: "p-" + id}, nil
	}
	return nil, nil
}

type fakeWarehouseRepo struct {
	repository.WarehouseRepository
	ids map[string]bool
}

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if f.ids[id] {
		return &entity.Warehouse{ID: id, Code: "W-" + id}, nil
	}
	return nil, nil
}

func newTestUseCase() (*UseCase, *fakeInvRepo, *fakeMovRepo) {
	inv := newFakeInvRepo()
	mov := &fakeMovRepo{}
	uc := NewUseCase(
		&fakeTxRunner{inv: inv, mov: mov},
		inv, mov,
		&fakeProductRepo{ids: map[string]bool{"prod-1": true}},
		&fakeWarehouseRepo{ids: map[string]bool{"wh-1": true}},
	)
	return uc, inv, mov
}

func adjust(t *testing.T, uc *UseCase, kind string, qty int64) *dto.InventoryResponse {
	t.Helper()
	rec, err := uc.Adjust(context.Background(), "user-1", dto.AdjustInventoryRequest{
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		Type:        kind,
		Quantity:    qty,
	})
	require.NoError(t, err)
	return rec
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

// Primer ajuste sobre un par sin registro: nace con 0 y queda en 50,
// con un único movimiento PURCHASE_IN de +50.
func TestAdjust_CreaRegistroEnPrimerMovimiento(t *testing.T) {
	uc, inv, mov := newTestUseCase()

	rec := adjust(t, uc, dominv.KindPurchaseIn, 50)
	assert.Equal(t, int64(50), rec.Quantity)

	stored, _ := inv.GetByPair("prod-1", "wh-1")
	require.NotNil(t, stored)
	assert.Equal(t, int64(50), stored.Quantity)

	require.Len(t, mov.movs, 1, "exactamente un movimiento por ajuste")
	m := mov.movs[0]
	assert.Equal(t, dominv.KindPurchaseIn, m.Kind)
	assert.Equal(t, int64(50), m.Quantity)
	require.NotNil(t, m.InventoryID)
	assert.Equal(t, stored.ID, *m.InventoryID, "el movimiento referencia al registro afectado")
	assert.Equal(t, "user-1", m.OperatorID)
}

// Salida sobre el mismo par: 50 - 20 = 30, movimiento SALE_OUT de -20.
func TestAdjust_SalidaRestaYAnotaDeltaNegativo(t *testing.T) {
	uc, _, mov := newTestUseCase()

	adjust(t, uc, dominv.KindPurchaseIn, 50)
	rec := adjust(t, uc, dominv.KindSaleOut, 20)

	assert.Equal(t, int64(30), rec.Quantity)
	require.Len(t, mov.movs, 2)
	assert.Equal(t, int64(-20), mov.movs[1].Quantity)
	assert.Equal(t, dominv.KindSaleOut, mov.movs[1].Kind)
}

// Para cada tipo: entradas suman |qty|, salidas restan |qty|, y el delta del
// movimiento anotado iguala exactamente el aplicado al saldo.
func TestAdjust_DeltaPorTipo(t *testing.T) {
	cases := []struct {
		kind  string
		delta int64
	}{
		{dominv.KindPurchaseIn, +10},
		{dominv.KindReturnIn, +10},
		{dominv.KindTransferIn, +10},
		{dominv.KindAdjustmentIn, +10},
		{dominv.KindSaleOut, -10},
		{dominv.KindTransferOut, -10},
		{dominv.KindAdjustmentOut, -10},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			uc, _, mov := newTestUseCase()
			before := adjust(t, uc, dominv.KindPurchaseIn, 100).Quantity
			after := adjust(t, uc, tc.kind, 10).Quantity

			assert.Equal(t, before+tc.delta, after)
			last := mov.movs[len(mov.movs)-1]
			assert.Equal(t, tc.delta, last.Quantity)
		})
	}
}

// Una salida mayor al saldo se rechaza sin tocar saldo ni libro:
// la cantidad jamás queda negativa.
func TestAdjust_SalidaMayorAlSaldo_Rechazada(t *testing.T) {
	uc, inv, mov := newTestUseCase()
	adjust(t, uc, dominv.KindPurchaseIn, 30)

	_, err := uc.Adjust(context.Background(), "user-1", dto.AdjustInventoryRequest{
		ProductID: "prod-1", WarehouseID: "wh-1", Type: dominv.KindSaleOut, Quantity: 100,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := inv.GetByPair("prod-1", "wh-1")
	assert.Equal(t, int64(30), stored.Quantity, "el saldo no cambia")
	assert.Len(t, mov.movs, 1, "no se anota movimiento fallido")
}

func TestAdjust_EntradaInvalida(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Adjust(ctx, "u", dto.AdjustInventoryRequest{ProductID: "prod-1", WarehouseID: "wh-1", Type: "TELEPORT", Quantity: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = uc.Adjust(ctx, "u", dto.AdjustInventoryRequest{ProductID: "prod-1", WarehouseID: "wh-1", Type: dominv.KindSaleOut, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad debe ser > 0")

	_, err = uc.Adjust(ctx, "u", dto.AdjustInventoryRequest{ProductID: "ghost", WarehouseID: "wh-1", Type: dominv.KindSaleOut, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	_, err = uc.Adjust(ctx, "u", dto.AdjustInventoryRequest{ProductID: "prod-1", WarehouseID: "ghost", Type: dominv.KindSaleOut, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound, "bodega inexistente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación con precondición de stock cero
// ──────────────────────────────────────────────────────────────────────────────

// Con saldo 30 el delete se rechaza y el registro queda intacto.
func TestDelete_ConStockDistintoDeCero_Rechazado(t *testing.T) {
	uc, inv, _ := newTestUseCase()
	adjust(t, uc, dominv.KindPurchaseIn, 50)
	adjust(t, uc, dominv.KindSaleOut, 20)

	stored, _ := inv.GetByPair("prod-1", "wh-1")
	err := uc.Delete(stored.ID)
	assert.ErrorIs(t, err, domain.ErrNonZeroStock)

	again, _ := inv.GetByPair("prod-1", "wh-1")
	require.NotNil(t, again, "el registro sigue existiendo")
	assert.Equal(t, int64(30), again.Quantity)
}

// Bajar a 0 con ADJUSTMENT_OUT habilita el delete; el historial se conserva.
func TestDelete_ConStockCero_EliminaYConservaHistorial(t *testing.T) {
	uc, inv, mov := newTestUseCase()
	adjust(t, uc, dominv.KindPurchaseIn, 50)
	adjust(t, uc, dominv.KindSaleOut, 20)
	rec := adjust(t, uc, dominv.KindAdjustmentOut, 30)
	assert.Equal(t, int64(0), rec.Quantity)

	stored, _ := inv.GetByPair("prod-1", "wh-1")
	require.NoError(t, uc.Delete(stored.ID))

	gone, _ := inv.GetByPair("prod-1", "wh-1")
	assert.Nil(t, gone)
	assert.Len(t, mov.movs, 3, "el libro de movimientos sobrevive al registro")
}

func TestDelete_NoExiste(t *testing.T) {
	uc, _, _ := newTestUseCase()
	assert.ErrorIs(t, uc.Delete("ghost"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Metadatos
// ──────────────────────────────────────────────────────────────────────────────

// PUT de inventario toca solo metadatos, nunca la cantidad.
func TestUpdateMeta_NoTocaCantidad(t *testing.T) {
	uc, inv, _ := newTestUseCase()
	adjust(t, uc, dominv.KindPurchaseIn, 50)
	stored, _ := inv.GetByPair("prod-1", "wh-1")

	out, err := uc.UpdateMeta(dto.UpdateInventoryRequest{
		ID: stored.ID, ReorderPoint: 10, SafetyStock: 5, Location: "A-01-03",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), out.Quantity)
	assert.Equal(t, int64(10), out.ReorderPoint)
	assert.Equal(t, int64(5), out.SafetyStock)
	assert.Equal(t, "A-01-03", out.Location)
}

func TestUpdateMeta_Validaciones(t *testing.T) {
	uc, _, _ := newTestUseCase()
	_, err := uc.UpdateMeta(dto.UpdateInventoryRequest{ID: "x", ReorderPoint: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.UpdateMeta(dto.UpdateInventoryRequest{ID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Compilación de fakes: deben seguir satisfaciendo los puertos.
var (
	_ repository.InventoryRepository         = (*fakeInvRepo)(nil)
	_ repository.InventoryMovementRepository = (*fakeMovRepo)(nil)
	_ TxRunner                               = (*fakeTxRunner)(nil)
)

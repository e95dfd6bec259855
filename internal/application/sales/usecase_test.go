package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	repository.OrderRepository
	byID map[string]*entity.Order
}

func (f *fakeOrderRepo) Create(o *entity.Order) error {
	cp := *o
	f.byID[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	if o, ok := f.byID[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeOrderRepo) UpdateHeader(o *entity.Order) error {
	cp := *o
	f.byID[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) UpdateStatus(id, status string) error {
	f.byID[id].Status = status
	return nil
}

func (f *fakeOrderRepo) UpdateStatusFrom(id, from, to string) error {
	o, ok := f.byID[id]
	if !ok || o.Status != from {
		return domain.ErrConflict
	}
	o.Status = to
	return nil
}

func (f *fakeOrderRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

type fakeCustomerRepo struct {
	repository.CustomerRepository
	ids map[string]bool
}

func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	if f.ids[id] {
		return &entity.Customer{ID: id, Name: "Cliente " + id}, nil
	}
	return nil, nil
}

type fakeProductRepo struct {
	repository.ProductRepository
	byID map[string]*entity.Product
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, nil
}

type fakeCounter struct{ seq int64 }

func (f *fakeCounter) Next(prefix string, day time.Time) (int64, error) {
	f.seq++
	return f.seq, nil
}

// fakeStock simula el inventario con saldos por producto. La confirmación
// descuenta vía este fake; si falla a mitad, deshace como lo haría la tx.
type fakeStock struct {
	repository.InventoryRepository
	qty       map[string]int64  // productID -> saldo
	productOf map[string]string // inventoryID -> productID
}

func (f *fakeStock) GetPairForUpdate(productID, warehouseID string) (*entity.Inventory, error) {
	if q, ok := f.qty[productID]; ok {
		id := "inv-" + productID
		f.productOf[id] = productID
		return &entity.Inventory{ID: id, ProductID: productID, WarehouseID: warehouseID, Quantity: q}, nil
	}
	return nil, nil
}

func (f *fakeStock) Create(inv *entity.Inventory) error {
	f.qty[inv.ProductID] = inv.Quantity
	f.productOf[inv.ID] = inv.ProductID
	return nil
}

func (f *fakeStock) UpdateQuantity(id string, quantity int64) error {
	f.qty[f.productOf[id]] = quantity
	return nil
}

type fakeMovs struct {
	repository.InventoryMovementRepository
	movs []*entity.InventoryMovement
}

func (f *fakeMovs) Create(m *entity.InventoryMovement) error {
	f.movs = append(f.movs, m)
	return nil
}

// fakeTx simula la atomicidad: toma snapshot y restaura si fn falla.
// beforeRun, si está presente, corre antes de fn y permite intercalar un
// actor concurrente entre la lectura de la orden y la transacción.
type fakeTx struct {
	orders    *fakeOrderRepo
	stock     *fakeStock
	movs      *fakeMovs
	beforeRun func()
}

func (f *fakeTx) Run(_ context.Context, fn func(
	repository.OrderRepository, repository.InventoryRepository, repository.InventoryMovementRepository) error) error {
	if f.beforeRun != nil {
		f.beforeRun()
	}
	qtySnap := make(map[string]int64, len(f.stock.qty))
	for k, v := range f.stock.qty {
		qtySnap[k] = v
	}
	statusSnap := make(map[string]string, len(f.orders.byID))
	for id, o := range f.orders.byID {
		statusSnap[id] = o.Status
	}
	movLen := len(f.movs.movs)

	if err := fn(f.orders, f.stock, f.movs); err != nil {
		f.stock.qty = qtySnap
		for id, st := range statusSnap {
			if o, ok := f.orders.byID[id]; ok {
				o.Status = st
			}
		}
		f.movs.movs = f.movs.movs[:movLen]
		return err
	}
	return nil
}

type env struct {
	uc     *UseCase
	orders *fakeOrderRepo
	stock  *fakeStock
	movs   *fakeMovs
	runner *fakeTx
}

func newEnv() *env {
	orders := &fakeOrderRepo{byID: map[string]*entity.Order{}}
	stock := &fakeStock{qty: map[string]int64{}, productOf: map[string]string{}}
	movs := &fakeMovs{}
	products := &fakeProductRepo{byID: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", Name: "Tornillo", MinPrice: decimal.NewFromInt(1)},
		"prod-2": {ID: "prod-2", Name: "Tuerca", MinPrice: decimal.NewFromInt(1)},
	}}
	runner := &fakeTx{orders: orders, stock: stock, movs: movs}
	uc := NewUseCase(
		runner,
		orders,
		&fakeCustomerRepo{ids: map[string]bool{"cust-1": true}},
		products,
		&fakeCounter{},
		nil, nil,
	)
	return &env{uc: uc, orders: orders, stock: stock, movs: movs, runner: runner}
}

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func createOrder(t *testing.T, e *env, items ...dto.OrderItemRequest) *dto.OrderResponse {
	t.Helper()
	out, err := e.uc.Create("seller-1", dto.CreateOrderRequest{
		CustomerID: "cust-1",
		Items:      items,
	})
	require.NoError(t, err)
	return out
}

func line(productID string, qty int64, price, discount string) dto.OrderItemRequest {
	return dto.OrderItemRequest{ProductID: productID, Quantity: qty, UnitPrice: d(price), Discount: d(discount)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NumeroYTotales(t *testing.T) {
	e := newEnv()
	today := time.Now().Format("20060102")

	// 10*100 - 50 = 950 ; 5*20 - 0 = 100 ; total 1050
	out := createOrder(t, e,
		line("prod-1", 10, "100", "50"),
		line("prod-2", 5, "20", "0"),
	)

	assert.Equal(t, "SO"+today+"0001", out.OrderNumber)
	assert.Equal(t, entity.OrderStatusDraft, out.Status)
	assert.True(t, out.TotalAmount.Equal(d("1050")), "total %s", out.TotalAmount)
	// impuesto por defecto 13%: 1050*0.13 = 136.50
	assert.True(t, out.TaxAmount.Equal(d("136.50")), "tax %s", out.TaxAmount)
	assert.True(t, out.FinalAmount.Equal(d("1186.50")), "final %s", out.FinalAmount)

	// consecutivo por día
	out2 := createOrder(t, e, line("prod-1", 1, "100", "0"))
	assert.Equal(t, "SO"+today+"0002", out2.OrderNumber)
}

func TestCreate_Validaciones(t *testing.T) {
	e := newEnv()

	_, err := e.uc.Create("s", dto.CreateOrderRequest{CustomerID: "ghost", Items: []dto.OrderItemRequest{line("prod-1", 1, "100", "0")}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente inexistente")

	_, err = e.uc.Create("s", dto.CreateOrderRequest{CustomerID: "cust-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = e.uc.Create("s", dto.CreateOrderRequest{CustomerID: "cust-1", Items: []dto.OrderItemRequest{line("prod-1", 0, "100", "0")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = e.uc.Create("s", dto.CreateOrderRequest{CustomerID: "cust-1", Items: []dto.OrderItemRequest{line("ghost", 1, "100", "0")}})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	_, err = e.uc.Create("s", dto.CreateOrderRequest{CustomerID: "cust-1", Items: []dto.OrderItemRequest{line("prod-1", 1, "0.50", "0")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio bajo el mínimo del producto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición y máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_SoloEnDraft(t *testing.T) {
	e := newEnv()
	out := createOrder(t, e, line("prod-1", 10, "100", "0"))
	e.orders.byID[out.ID].Status = entity.OrderStatusConfirmed

	note := "cambio"
	_, err := e.uc.Update(dto.UpdateOrderRequest{ID: out.ID, Note: &note})
	assert.ErrorIs(t, err, domain.ErrNotDraft)
}

func TestUpdate_RecalculaTotales(t *testing.T) {
	e := newEnv()
	out := createOrder(t, e, line("prod-1", 10, "100", "0"))

	updated, err := e.uc.Update(dto.UpdateOrderRequest{
		ID:    out.ID,
		Items: []dto.OrderItemRequest{line("prod-1", 2, "100", "0")},
	})
	require.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(d("200")))
	assert.True(t, updated.TaxAmount.Equal(d("26")))
	assert.True(t, updated.FinalAmount.Equal(d("226")))
}

func TestUpdate_Transiciones(t *testing.T) {
	e := newEnv()
	out := createOrder(t, e, line("prod-1", 1, "100", "0"))

	set := func(s string) error {
		_, err := e.uc.Update(dto.UpdateOrderRequest{ID: out.ID, Status: &s})
		return err
	}

	// DRAFT no salta directo a SHIPPED
	assert.ErrorIs(t, set(entity.OrderStatusShipped), domain.ErrInvalidTransition)
	// confirmar va por su endpoint, no por update
	assert.ErrorIs(t, set(entity.OrderStatusConfirmed), domain.ErrInvalidTransition)
	// cancelar desde DRAFT sí
	require.NoError(t, set(entity.OrderStatusCancelled))
	// CANCELLED es terminal
	assert.ErrorIs(t, set(entity.OrderStatusProcessing), domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirmación
// ──────────────────────────────────────────────────────────────────────────────

func TestConfirm_DescuentaStockYCambiaEstado(t *testing.T) {
	e := newEnv()
	e.stock.qty["prod-1"] = 50
	e.stock.qty["prod-2"] = 10
	out := createOrder(t, e, line("prod-1", 10, "100", "0"), line("prod-2", 4, "20", "0"))

	confirmed, err := e.uc.Confirm(context.Background(), "op-1", out.ID, dto.ConfirmOrderRequest{WarehouseID: "wh-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, confirmed.Status)
	assert.Equal(t, int64(40), e.stock.qty["prod-1"])
	assert.Equal(t, int64(6), e.stock.qty["prod-2"])
	require.Len(t, e.movs.movs, 2)
	assert.Equal(t, int64(-10), e.movs.movs[0].Quantity)
	assert.Equal(t, int64(-4), e.movs.movs[1].Quantity)
}

// Si una línea no alcanza, ninguna queda descontada y el estado no cambia.
func TestConfirm_StockInsuficiente_TodoONada(t *testing.T) {
	e := newEnv()
	e.stock.qty["prod-1"] = 50
	e.stock.qty["prod-2"] = 3 // no alcanza para 4
	out := createOrder(t, e, line("prod-1", 10, "100", "0"), line("prod-2", 4, "20", "0"))

	_, err := e.uc.Confirm(context.Background(), "op-1", out.ID, dto.ConfirmOrderRequest{WarehouseID: "wh-1"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(50), e.stock.qty["prod-1"], "la primera línea también se revierte")
	assert.Equal(t, int64(3), e.stock.qty["prod-2"])
	assert.Empty(t, e.movs.movs)
	assert.Equal(t, entity.OrderStatusDraft, e.orders.byID[out.ID].Status)
}

// El chequeo de DRAFT previo a la tx se hace sobre una lectura que puede
// quedar desfasada: si otra confirmación entra en medio, la transición
// condicional dentro de la tx debe abortar sin descontar stock de nuevo.
func TestConfirm_ConcurrenteNoDescuentaDosVeces(t *testing.T) {
	e := newEnv()
	e.stock.qty["prod-1"] = 50
	out := createOrder(t, e, line("prod-1", 10, "100", "0"))

	// La otra confirmación gana la carrera: descuenta y confirma justo
	// después de nuestra lectura de la orden.
	e.runner.beforeRun = func() {
		e.stock.qty["prod-1"] -= 10
		e.orders.byID[out.ID].Status = entity.OrderStatusConfirmed
	}

	_, err := e.uc.Confirm(context.Background(), "op-1", out.ID, dto.ConfirmOrderRequest{WarehouseID: "wh-1"})
	assert.ErrorIs(t, err, domain.ErrNotDraft)

	assert.Equal(t, int64(40), e.stock.qty["prod-1"], "solo un descuento debe quedar aplicado")
	assert.Empty(t, e.movs.movs, "la confirmación perdedora no registra movimientos")
	assert.Equal(t, entity.OrderStatusConfirmed, e.orders.byID[out.ID].Status)
}

func TestConfirm_SoloDesdeDraft(t *testing.T) {
	e := newEnv()
	e.stock.qty["prod-1"] = 50
	out := createOrder(t, e, line("prod-1", 1, "100", "0"))
	e.orders.byID[out.ID].Status = entity.OrderStatusCancelled

	_, err := e.uc.Confirm(context.Background(), "op-1", out.ID, dto.ConfirmOrderRequest{WarehouseID: "wh-1"})
	assert.ErrorIs(t, err, domain.ErrNotDraft)
}

// ──────────────────────────────────────────────────────────────────────────────
// PDF
// ──────────────────────────────────────────────────────────────────────────────

// El generador de PDF es opcional al construir el caso de uso; sin él la
// operación devuelve error en lugar de reventar.
func TestPDF_SinGeneradorConfigurado(t *testing.T) {
	e := newEnv()
	out := createOrder(t, e, line("prod-1", 1, "100", "0"))

	pdf, err := e.uc.PDF(out.ID)
	assert.Error(t, err)
	assert.Nil(t, pdf)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_SoloEnDraft(t *testing.T) {
	e := newEnv()
	out := createOrder(t, e, line("prod-1", 1, "100", "0"))

	e.orders.byID[out.ID].Status = entity.OrderStatusConfirmed
	assert.ErrorIs(t, e.uc.Delete(out.ID), domain.ErrNotDraft)

	e.orders.byID[out.ID].Status = entity.OrderStatusDraft
	require.NoError(t, e.uc.Delete(out.ID))
	assert.ErrorIs(t, e.uc.Delete(out.ID), domain.ErrNotFound)
}

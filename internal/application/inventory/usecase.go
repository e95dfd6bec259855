package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	dominv "github.com/tu-usuario/erp-pro/internal/domain/inventory"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
	"github.com/tu-usuario/erp-pro/pkg/textutil"
)

// UseCase motor de inventario: ajustes transaccionales con bloqueo de fila,
// metadatos, eliminación con precondición de stock cero y listados.
type UseCase struct {
	txRunner      TxRunner
	invRepo       repository.InventoryRepository
	movRepo       repository.InventoryMovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		invRepo:       invRepo,
		movRepo:       movRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Adjust aplica un cambio de cantidad con signo derivado del tipo de
// movimiento. Dentro de una transacción: bloquea la fila (SELECT FOR UPDATE),
// crea el registro con cantidad 0 si no existe, actualiza el saldo y anota
// exactamente un movimiento cuyo delta firmado iguala el aplicado.
func (uc *UseCase) Adjust(ctx context.Context, operatorID string, in dto.AdjustInventoryRequest) (*dto.InventoryResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" || !dominv.ValidKind(in.Type) || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	// Producto y bodega deben existir antes de tocar inventario.
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	var updated *entity.Inventory
	err = uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		rec, err := ApplyAdjustment(invRepo, movRepo, in.ProductID, in.WarehouseID, in.Type, in.Quantity, operatorID, in.Note)
		if err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInventoryResponse(updated), nil
}

// ApplyAdjustment ejecuta el ajuste usando repositorios ya atados a una
// transacción del caller (ventas y compras lo reutilizan dentro de la suya).
// Devuelve el registro actualizado.
func ApplyAdjustment(
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
	productID, warehouseID, kind string,
	quantity int64,
	operatorID, note string,
) (*entity.Inventory, error) {
	now := time.Now()

	// Bloquea la fila del par producto+bodega para evitar lost updates.
	rec, err := invRepo.GetPairForUpdate(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		// Primera vez que este par mueve stock: nace con cantidad 0.
		rec = &entity.Inventory{
			ID:          uuid.New().String(),
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    0,
			UpdatedAt:   now,
		}
		if err := invRepo.Create(rec); err != nil {
			return nil, err
		}
	}

	delta := dominv.SignedDelta(kind, quantity)
	newQty := rec.Quantity + delta
	if newQty < 0 {
		return nil, domain.ErrInsufficientStock
	}
	if err := invRepo.UpdateQuantity(rec.ID, newQty); err != nil {
		return nil, err
	}

	invID := rec.ID
	mov := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		InventoryID: &invID,
		ProductID:   productID,
		WarehouseID: warehouseID,
		Kind:        kind,
		Quantity:    delta,
		OperatorID:  operatorID,
		Note:        note,
		CreatedAt:   now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	rec.Quantity = newQty
	rec.UpdatedAt = now
	return rec, nil
}

// UpdateMeta actualiza solo metadatos del registro (punto de reorden, stock
// de seguridad, ubicación). Las cantidades van únicamente por movimientos.
func (uc *UseCase) UpdateMeta(in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	if in.ID == "" || in.ReorderPoint < 0 || in.SafetyStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	rec, err := uc.invRepo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	rec.ReorderPoint = in.ReorderPoint
	rec.SafetyStock = in.SafetyStock
	rec.Location = in.Location
	rec.UpdatedAt = time.Now()
	if err := uc.invRepo.UpdateMeta(rec); err != nil {
		return nil, err
	}
	return toInventoryResponse(rec), nil
}

// Delete elimina un registro de inventario. Precondición estricta:
// la cantidad debe ser exactamente 0. El historial de movimientos se conserva.
func (uc *UseCase) Delete(id string) error {
	rec, err := uc.invRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	if rec.Quantity != 0 {
		return domain.ErrNonZeroStock
	}
	return uc.invRepo.Delete(id)
}

// List lista registros de inventario con búsqueda por producto y filtro de bodega.
func (uc *UseCase) List(page dto.PageRequest, warehouseID string) (*dto.ListResponse[dto.InventoryResponse], error) {
	page.Normalize()
	search := textutil.NormalizeSearch(page.Search)
	list, err := uc.invRepo.List(search, warehouseID, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.invRepo.Count(search, warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, rec := range list {
		items = append(items, *toInventoryResponse(rec))
	}
	return dto.NewListResponse(items, total, page), nil
}

// Movements devuelve el historial de un registro (más recientes primero).
func (uc *UseCase) Movements(inventoryID string, limit int) ([]dto.MovementResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	list, err := uc.movRepo.ListByInventory(inventoryID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *ToMovementResponse(m))
	}
	return out, nil
}

func toInventoryResponse(rec *entity.Inventory) *dto.InventoryResponse {
	if rec == nil {
		return nil
	}
	return &dto.InventoryResponse{
		ID:           rec.ID,
		ProductID:    rec.ProductID,
		WarehouseID:  rec.WarehouseID,
		Quantity:     rec.Quantity,
		ReservedQty:  rec.ReservedQty,
		ReorderPoint: rec.ReorderPoint,
		SafetyStock:  rec.SafetyStock,
		Location:     rec.Location,
		LastCheckAt:  rec.LastCheckAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

// ToMovementResponse serializa un movimiento (lo reutilizan los reportes).
func ToMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          m.ID,
		InventoryID: m.InventoryID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		Type:        m.Kind,
		Quantity:    m.Quantity,
		OperatorID:  m.OperatorID,
		Note:        m.Note,
		CreatedAt:   m.CreatedAt,
	}
}

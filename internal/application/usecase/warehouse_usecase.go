package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
	"github.com/tu-usuario/erp-pro/pkg/textutil"
)

// WarehouseUseCase CRUD de bodegas; veto de borrado mientras exista
// inventario en la bodega.
type WarehouseUseCase struct {
	warehouseRepo repository.WarehouseRepository
	invRepo       repository.InventoryRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(warehouseRepo repository.WarehouseRepository, invRepo repository.InventoryRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouseRepo: warehouseRepo, invRepo: invRepo}
}

// Create da de alta una bodega.
func (uc *WarehouseUseCase) Create(in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.warehouseRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      in.Name,
		Address:   in.Address,
		Contact:   in.Contact,
		Phone:     in.Phone,
		ManagerID: in.ManagerID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID devuelve una bodega por id.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con búsqueda por nombre/código.
func (uc *WarehouseUseCase) List(page dto.PageRequest) (*dto.ListResponse[dto.WarehouseResponse], error) {
	page.Normalize()
	search := textutil.NormalizeSearch(page.Search)
	list, err := uc.warehouseRepo.List(search, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.warehouseRepo.Count(search)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return dto.NewListResponse(items, total, page), nil
}

// Update aplica cambios parciales. El código es inmutable.
func (uc *WarehouseUseCase) Update(in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	if in.Contact != nil {
		warehouse.Contact = *in.Contact
	}
	if in.Phone != nil {
		warehouse.Phone = *in.Phone
	}
	if in.ManagerID != nil {
		warehouse.ManagerID = *in.ManagerID
	}
	if in.IsActive != nil {
		warehouse.IsActive = *in.IsActive
	}
	warehouse.UpdatedAt = time.Now()

	if err := uc.warehouseRepo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Delete elimina una bodega solo si no tiene registros de inventario.
func (uc *WarehouseUseCase) Delete(id string) error {
	warehouse, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	refs, err := uc.invRepo.CountByWarehouse(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrHasReferences
	}
	return uc.warehouseRepo.Delete(id)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		Contact:   w.Contact,
		Phone:     w.Phone,
		ManagerID: w.ManagerID,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
	}
}

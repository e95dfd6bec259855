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

// SupplierUseCase CRUD de proveedores con código único y veto de borrado
// cuando existen compras que lo referencian.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
	purchaseRepo repository.PurchaseRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository, purchaseRepo repository.PurchaseRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo, purchaseRepo: purchaseRepo}
}

// Create da de alta un proveedor.
func (uc *SupplierUseCase) Create(in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || in.Name == "" || in.LeadTime < 0 || in.MinOrderQty < 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.supplierRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	supplier := &entity.Supplier{
		ID:            uuid.New().String(),
		Code:          code,
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		TaxNumber:     in.TaxNumber,
		BankAccount:   in.BankAccount,
		LeadTime:      in.LeadTime,
		MinOrderQty:   in.MinOrderQty,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID devuelve un proveedor por id.
func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores con búsqueda por nombre/código.
func (uc *SupplierUseCase) List(page dto.PageRequest) (*dto.ListResponse[dto.SupplierResponse], error) {
	page.Normalize()
	search := textutil.NormalizeSearch(page.Search)
	list, err := uc.supplierRepo.List(search, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.supplierRepo.Count(search)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return dto.NewListResponse(items, total, page), nil
}

// Update aplica cambios parciales. El código es inmutable.
func (uc *SupplierUseCase) Update(in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		supplier.Name = *in.Name
	}
	if in.ContactPerson != nil {
		supplier.ContactPerson = *in.ContactPerson
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if in.TaxNumber != nil {
		supplier.TaxNumber = *in.TaxNumber
	}
	if in.BankAccount != nil {
		supplier.BankAccount = *in.BankAccount
	}
	if in.LeadTime != nil {
		if *in.LeadTime < 0 {
			return nil, domain.ErrInvalidInput
		}
		supplier.LeadTime = *in.LeadTime
	}
	if in.MinOrderQty != nil {
		if *in.MinOrderQty < 0 {
			return nil, domain.ErrInvalidInput
		}
		supplier.MinOrderQty = *in.MinOrderQty
	}
	if in.IsActive != nil {
		supplier.IsActive = *in.IsActive
	}
	supplier.UpdatedAt = time.Now()

	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Delete elimina un proveedor solo si ninguna compra lo referencia.
func (uc *SupplierUseCase) Delete(id string) error {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	refs, err := uc.purchaseRepo.CountBySupplier(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrHasReferences
	}
	return uc.supplierRepo.Delete(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:            s.ID,
		Code:          s.Code,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		TaxNumber:     s.TaxNumber,
		BankAccount:   s.BankAccount,
		LeadTime:      s.LeadTime,
		MinOrderQty:   s.MinOrderQty,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}

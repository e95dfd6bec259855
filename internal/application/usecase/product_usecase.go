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

// ProductUseCase CRUD del catálogo. SKU único; el borrado se veta mientras
// exista inventario que referencie al producto.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	invRepo      repository.InventoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	invRepo repository.InventoryRepository,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo, invRepo: invRepo}
}

// Create da de alta un producto. Los precios no pueden ser negativos y la
// categoría debe existir.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" || in.Name == "" || in.CategoryID == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPrice.IsNegative() || in.SellPrice.IsNegative() || in.MinPrice.IsNegative() || in.Weight.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.productRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         sku,
		Barcode:     in.Barcode,
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Unit:        in.Unit,
		CostPrice:   in.CostPrice,
		SellPrice:   in.SellPrice,
		MinPrice:    in.MinPrice,
		Weight:      in.Weight,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID devuelve un producto por id.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda por nombre/SKU y filtro por categoría.
func (uc *ProductUseCase) List(page dto.PageRequest, categoryID string) (*dto.ListResponse[dto.ProductResponse], error) {
	page.Normalize()
	search := textutil.NormalizeSearch(page.Search)
	list, err := uc.productRepo.List(search, categoryID, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.productRepo.Count(search, categoryID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return dto.NewListResponse(items, total, page), nil
}

// Update aplica cambios parciales. El SKU es inmutable.
func (uc *ProductUseCase) Update(in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.ID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.SellPrice != nil {
		if in.SellPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SellPrice = *in.SellPrice
	}
	if in.MinPrice != nil {
		if in.MinPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.MinPrice = *in.MinPrice
	}
	if in.Weight != nil {
		if in.Weight.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Weight = *in.Weight
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto solo si ningún registro de inventario lo
// referencia.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	refs, err := uc.invRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrHasReferences
	}
	return uc.productRepo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Barcode:     p.Barcode,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Unit:        p.Unit,
		CostPrice:   p.CostPrice,
		SellPrice:   p.SellPrice,
		MinPrice:    p.MinPrice,
		Weight:      p.Weight,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

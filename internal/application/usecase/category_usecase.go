package usecase

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
	"github.com/tu-usuario/erp-pro/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías de producto; slug único, un nivel de
// jerarquía y veto de borrado mientras haya productos en la categoría.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, productRepo: productRepo}
}

// Create da de alta una categoría, opcionalmente colgando de una padre.
func (uc *CategoryUseCase) Create(in dto.CategoryRequest) (*entity.Category, error) {
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if in.Name == "" || slug == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.ParentID != nil {
		parent, err := uc.categoryRepo.GetByID(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		if parent.ParentID != nil {
			// solo un nivel de anidación
			return nil, domain.ErrInvalidInput
		}
	}

	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		ParentID:    in.ParentID,
		IsActive:    true,
		SortOrder:   in.SortOrder,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// List devuelve todas las categorías ordenadas por SortOrder.
func (uc *CategoryUseCase) List() ([]*entity.Category, error) {
	return uc.categoryRepo.List()
}

// Update renombra o reordena una categoría. El slug es inmutable.
func (uc *CategoryUseCase) Update(in dto.CategoryRequest) (*entity.Category, error) {
	if in.ID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.ID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	category.Name = in.Name
	category.Description = in.Description
	category.SortOrder = in.SortOrder
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete elimina una categoría si no tiene productos asociados.
func (uc *CategoryUseCase) Delete(id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	refs, err := uc.productRepo.Count("", id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrHasReferences
	}
	return uc.categoryRepo.Delete(id)
}

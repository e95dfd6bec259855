package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/domain"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos que usa ProductUseCase
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) List(search, categoryID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) Count(search, categoryID string) (int, error) {
	list, _ := f.List(search, categoryID, 0, 0)
	return len(list), nil
}

func (f *fakeProductRepo) Delete(id string) error {
	delete(f.products, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo(ids ...string) *fakeCategoryRepo {
	f := &fakeCategoryRepo{categories: map[string]*entity.Category{}}
	for _, id := range ids {
		f.categories[id] = &entity.Category{ID: id, Name: "Cat " + id, Slug: "cat-" + id, IsActive: true}
	}
	return f
}

func (f *fakeCategoryRepo) Create(c *entity.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCategoryRepo) GetBySlug(slug string) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) List() ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(c *entity.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Delete(id string) error {
	delete(f.categories, id)
	return nil
}

// fakeProductInvRepo solo responde CountByProduct; el resto no se usa aquí.
type fakeProductInvRepo struct {
	refsByProduct map[string]int
}

func (f *fakeProductInvRepo) GetByID(string) (*entity.Inventory, error)             { return nil, nil }
func (f *fakeProductInvRepo) GetByPair(string, string) (*entity.Inventory, error)   { return nil, nil }
func (f *fakeProductInvRepo) GetPairForUpdate(string, string) (*entity.Inventory, error) {
	return nil, nil
}
func (f *fakeProductInvRepo) Create(*entity.Inventory) error         { return nil }
func (f *fakeProductInvRepo) UpdateQuantity(string, int64) error     { return nil }
func (f *fakeProductInvRepo) UpdateMeta(*entity.Inventory) error     { return nil }
func (f *fakeProductInvRepo) Delete(string) error                    { return nil }
func (f *fakeProductInvRepo) List(string, string, int, int) ([]*entity.Inventory, error) {
	return nil, nil
}
func (f *fakeProductInvRepo) Count(string, string) (int, error)    { return 0, nil }
func (f *fakeProductInvRepo) CountByWarehouse(string) (int, error) { return 0, nil }
func (f *fakeProductInvRepo) CountByProduct(productID string) (int, error) {
	return f.refsByProduct[productID], nil
}

func buildProductUC(invRefs map[string]int) (*ProductUseCase, *fakeProductRepo) {
	products := newFakeProductRepo()
	categories := newFakeCategoryRepo("cat-1")
	if invRefs == nil {
		invRefs = map[string]int{}
	}
	return NewProductUseCase(products, categories, &fakeProductInvRepo{refsByProduct: invRefs}), products
}

func validProduct(sku string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:        sku,
		Name:       "Resistencia 10K",
		CategoryID: "cat-1",
		Unit:       "un",
		CostPrice:  decimal.RequireFromString("0.01"),
		SellPrice:  decimal.RequireFromString("0.05"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_SKUDuplicado(t *testing.T) {
	uc, _ := buildProductUC(nil)

	_, err := uc.Create(validProduct("SKU-001"))
	require.NoError(t, err)

	_, err = uc.Create(validProduct("SKU-001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el SKU es clave natural única")
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc, _ := buildProductUC(nil)

	sinSKU := validProduct("")
	_, err := uc.Create(sinSKU)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	negativo := validProduct("SKU-002")
	negativo.CostPrice = decimal.RequireFromString("-1")
	_, err = uc.Create(negativo)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precios negativos rechazados")

	otraCat := validProduct("SKU-003")
	otraCat.CategoryID = "cat-9"
	_, err = uc.Create(otraCat)
	assert.ErrorIs(t, err, domain.ErrNotFound, "la categoría debe existir")
}

// Un producto referenciado por inventario no se puede eliminar.
func TestProductDelete_ConInventario_Rechazado(t *testing.T) {
	uc, repo := buildProductUC(nil)
	out, err := uc.Create(validProduct("SKU-001"))
	require.NoError(t, err)

	ucConRefs := NewProductUseCase(repo, newFakeCategoryRepo("cat-1"),
		&fakeProductInvRepo{refsByProduct: map[string]int{out.ID: 2}})

	err = ucConRefs.Delete(out.ID)
	assert.ErrorIs(t, err, domain.ErrHasReferences)
	assert.Contains(t, repo.products, out.ID, "el producto debe seguir existiendo")
}

func TestProductDelete_SinInventario(t *testing.T) {
	uc, repo := buildProductUC(nil)
	out, err := uc.Create(validProduct("SKU-001"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(out.ID))
	assert.NotContains(t, repo.products, out.ID)

	assert.ErrorIs(t, uc.Delete("p-inexistente"), domain.ErrNotFound)
}

func TestProductUpdate_SKUInmutable(t *testing.T) {
	uc, _ := buildProductUC(nil)
	out, err := uc.Create(validProduct("SKU-001"))
	require.NoError(t, err)

	nuevoNombre := "Resistencia 10K 1%"
	updated, err := uc.Update(dto.UpdateProductRequest{ID: out.ID, Name: &nuevoNombre})
	require.NoError(t, err)

	assert.Equal(t, "SKU-001", updated.SKU)
	assert.Equal(t, nuevoNombre, updated.Name)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/application/usecase"
)

// ProductHandler maneja el catálogo de productos.
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	activity *usecase.ActivityUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, activity *usecase.ActivityUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, activity: activity}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.SKU == "" || in.Name == "" || in.CategoryID == "" {
		return badRequest(c, "VALIDATION", "sku, name y categoryId son requeridos")
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "CREATE", "PRODUCT", out.ID, "SKU "+out.SKU, c.IP())
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"  default(1)
// @Param        pageSize    query  int     false  "Tamaño"  default(20)
// @Param        search      query  string  false  "Búsqueda por nombre o SKU"
// @Param        categoryId  query  string  false  "Filtro por categoría"
// @Success      200  {object}  dto.ListResponse[dto.ProductResponse]
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "query inválida")
	}
	out, err := h.uc.List(page, c.Query("categoryId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (el SKU no se toca)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ID == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	out, err := h.uc.Update(in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	h.activity.Record(GetUserID(c), "UPDATE", "PRODUCT", in.ID, "", c.IP())
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto (sin registros de inventario asociados)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  query  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	if err := h.uc.Delete(id); err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "DELETE", "PRODUCT", id, "", c.IP())
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}

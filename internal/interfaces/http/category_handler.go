package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/application/usecase"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
)

// CategoryHandler maneja las categorías del catálogo.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

func toCategoryResponse(cat *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Slug:        cat.Slug,
		Description: cat.Description,
		ParentID:    cat.ParentID,
		IsActive:    cat.IsActive,
		SortOrder:   cat.SortOrder,
	}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Name == "" || in.Slug == "" {
		return badRequest(c, "VALIDATION", "name y slug son requeridos")
	}
	cat, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCategoryResponse(cat))
}

// List godoc
// @Summary      Listar categorías (ordenadas por sortOrder)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategoryResponse(cat))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría (el slug no se toca)
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ID == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	cat, err := h.uc.Update(in)
	if err != nil {
		return respondError(c, err)
	}
	if cat == nil {
		return notFound(c, "categoría no encontrada")
	}
	return c.JSON(toCategoryResponse(cat))
}

// Delete godoc
// @Summary      Eliminar categoría (sin productos asociados)
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  query  string  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/categories [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	if err := h.uc.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "categoría eliminada"})
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/application/inventory"
	"github.com/tu-usuario/erp-pro/internal/application/usecase"
)

// InventoryHandler maneja existencias y movimientos.
type InventoryHandler struct {
	uc       *inventory.UseCase
	activity *usecase.ActivityUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, activity *usecase.ActivityUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, activity: activity}
}

// Adjust godoc
// @Summary      Registrar un ajuste de inventario
// @Description  Crea el registro si no existe y aplica el delta con signo según el tipo de movimiento. Nunca deja el saldo negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustInventoryRequest  true  "Ajuste (quantity siempre > 0)"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID == "" || in.WarehouseID == "" || in.Type == "" {
		return badRequest(c, "VALIDATION", "productId, warehouseId y type son requeridos")
	}
	out, err := h.uc.Adjust(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "ADJUST", "INVENTORY", out.ID, in.Type, c.IP())
	return c.JSON(out)
}

// List godoc
// @Summary      Listar registros de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page         query  int     false  "Página"  default(1)
// @Param        pageSize     query  int     false  "Tamaño"  default(20)
// @Param        search       query  string  false  "Búsqueda por producto"
// @Param        warehouseId  query  string  false  "Filtro por bodega"
// @Success      200  {object}  dto.ListResponse[dto.InventoryResponse]
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "query inválida")
	}
	out, err := h.uc.List(page, c.Query("warehouseId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateMeta godoc
// @Summary      Actualizar metadatos de un registro (nunca cantidades)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateInventoryRequest  true  "reorderPoint, safetyStock, location"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory [put]
func (h *InventoryHandler) UpdateMeta(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ID == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	out, err := h.uc.UpdateMeta(in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "registro de inventario no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro de inventario (solo con saldo cero)
// @Description  El historial de movimientos se conserva.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  query  string  true  "ID del registro"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	if err := h.uc.Delete(id); err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "DELETE", "INVENTORY", id, "", c.IP())
	return c.JSON(dto.MessageResponse{Message: "registro de inventario eliminado"})
}

// Movements godoc
// @Summary      Listar movimientos de un registro de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del registro"
// @Param        limit  query  int     false  "Límite"  default(50)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.Movements(c.Params("id"), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

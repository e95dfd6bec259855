package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/application/purchasing"
	"github.com/tu-usuario/erp-pro/internal/application/usecase"
)

// PurchaseHandler maneja las órdenes de compra.
type PurchaseHandler struct {
	uc       *purchasing.UseCase
	activity *usecase.ActivityUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.UseCase, activity *usecase.ActivityUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, activity: activity}
}

// Create godoc
// @Summary      Crear orden de compra (nace en DRAFT)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Proveedor, bodega y líneas"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.SupplierID == "" || in.WarehouseID == "" || len(in.Items) == 0 {
		return badRequest(c, "VALIDATION", "supplierId, warehouseId y al menos una línea son requeridos")
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "CREATE", "PURCHASE", out.ID, out.PurchaseNumber, c.IP())
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener compra por ID (con líneas)
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "compra no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página"  default(1)
// @Param        pageSize  query  int     false  "Tamaño"  default(20)
// @Param        search    query  string  false  "Búsqueda por número"
// @Param        status    query  string  false  "Filtro por estado"
// @Success      200  {object}  dto.ListResponse[dto.PurchaseResponse]
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "query inválida")
	}
	out, err := h.uc.List(page, c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar compra (contenido solo en DRAFT; status según la máquina de estados)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePurchaseRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseRequest
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
		return notFound(c, "compra no encontrada")
	}
	h.activity.Record(GetUserID(c), "UPDATE", "PURCHASE", in.ID, "", c.IP())
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir compra: ingresa stock y pasa a PARTIAL o RECEIVED en una transacción
// @Description  Sin líneas en el body se recibe todo lo pendiente.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la compra"
// @Param        body  body  dto.ReceivePurchaseRequest  false  "Líneas recibidas (opcional)"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	out, err := h.uc.Receive(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "RECEIVE", "PURCHASE", out.ID, out.Status, c.IP())
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar compra (solo en DRAFT)
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  query  string  true  "ID de la compra"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchases [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	if err := h.uc.Delete(id); err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "DELETE", "PURCHASE", id, "", c.IP())
	return c.JSON(dto.MessageResponse{Message: "compra eliminada"})
}

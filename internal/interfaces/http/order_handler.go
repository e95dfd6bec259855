package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/application/sales"
	"github.com/tu-usuario/erp-pro/internal/application/usecase"
)

// OrderHandler maneja las órdenes de venta.
type OrderHandler struct {
	uc       *sales.UseCase
	activity *usecase.ActivityUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *sales.UseCase, activity *usecase.ActivityUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, activity: activity}
}

// Create godoc
// @Summary      Crear orden de venta (nace en DRAFT)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Cliente y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.CustomerID == "" || len(in.Items) == 0 {
		return badRequest(c, "VALIDATION", "customerId y al menos una línea son requeridos")
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "CREATE", "ORDER", out.ID, out.OrderNumber, c.IP())
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID (con líneas)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "orden no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página"  default(1)
// @Param        pageSize  query  int     false  "Tamaño"  default(20)
// @Param        search    query  string  false  "Búsqueda por número"
// @Param        status    query  string  false  "Filtro por estado"
// @Success      200  {object}  dto.ListResponse[dto.OrderResponse]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
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
// @Summary      Actualizar orden (contenido solo en DRAFT; status según la máquina de estados)
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateOrderRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
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
		return notFound(c, "orden no encontrada")
	}
	h.activity.Record(GetUserID(c), "UPDATE", "ORDER", in.ID, "", c.IP())
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar orden: descuenta stock y pasa a CONFIRMED en una transacción
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.ConfirmOrderRequest  true  "Bodega de despacho"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/confirm [post]
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.WarehouseID == "" {
		return badRequest(c, "VALIDATION", "warehouseId es requerido")
	}
	out, err := h.uc.Confirm(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "CONFIRM", "ORDER", out.ID, out.OrderNumber, c.IP())
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden (solo en DRAFT)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  query  string  true  "ID de la orden"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	if err := h.uc.Delete(id); err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "DELETE", "ORDER", id, "", c.IP())
	return c.JSON(dto.MessageResponse{Message: "orden eliminada"})
}

// PDF godoc
// @Summary      Descargar el PDF de la orden
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pdf [get]
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	out, err := h.uc.PDF(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orden.pdf"`)
	return c.Send(out)
}

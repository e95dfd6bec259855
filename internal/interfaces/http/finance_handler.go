package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/application/finance"
	"github.com/tu-usuario/erp-pro/internal/application/usecase"
)

// FinanceHandler maneja el plan de cuentas y los asientos.
type FinanceHandler struct {
	uc       *finance.UseCase
	activity *usecase.ActivityUseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *finance.UseCase, activity *usecase.ActivityUseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc, activity: activity}
}

// CreateAccount godoc
// @Summary      Crear cuenta contable
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AccountRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/accounts [post]
func (h *FinanceHandler) CreateAccount(c *fiber.Ctx) error {
	var in dto.AccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Code == "" || in.Name == "" || in.Type == "" {
		return badRequest(c, "VALIDATION", "code, name y type son requeridos")
	}
	out, err := h.uc.CreateAccount(in)
	if err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "CREATE", "ACCOUNT", out.ID, out.Code, c.IP())
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AccountTree godoc
// @Summary      Árbol del plan de cuentas (un nivel de anidación)
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AccountResponse
// @Router       /api/accounts [get]
func (h *FinanceHandler) AccountTree(c *fiber.Ctx) error {
	out, err := h.uc.AccountTree()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteAccount godoc
// @Summary      Eliminar cuenta (no de sistema, sin hijas ni asientos)
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        id  query  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/accounts [delete]
func (h *FinanceHandler) DeleteAccount(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return badRequest(c, "MISSING_ID", "id es requerido")
	}
	if err := h.uc.DeleteAccount(id); err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "DELETE", "ACCOUNT", id, "", c.IP())
	return c.JSON(dto.MessageResponse{Message: "cuenta eliminada"})
}

// CreateTransaction godoc
// @Summary      Crear asiento: numera el comprobante y aplica el efecto al saldo en una transacción
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Datos del asiento"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *FinanceHandler) CreateTransaction(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Type == "" || in.AccountID == "" || in.Direction == "" {
		return badRequest(c, "VALIDATION", "type, accountId y direction son requeridos")
	}
	out, err := h.uc.CreateTransaction(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	h.activity.Record(GetUserID(c), "CREATE", "TRANSACTION", out.ID, out.VoucherNo, c.IP())
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetTransaction godoc
// @Summary      Obtener asiento por ID
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del asiento"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *FinanceHandler) GetTransaction(c *fiber.Ctx) error {
	out, err := h.uc.GetTransaction(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFound(c, "asiento no encontrado")
	}
	return c.JSON(out)
}

// ListTransactions godoc
// @Summary      Listar asientos
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        page      query  int     false  "Página"  default(1)
// @Param        pageSize  query  int     false  "Tamaño"  default(20)
// @Param        type      query  string  false  "Filtro por tipo"
// @Success      200  {object}  dto.ListResponse[dto.TransactionResponse]
// @Router       /api/transactions [get]
func (h *FinanceHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "query inválida")
	}
	out, err := h.uc.ListTransactions(page, c.Query("type"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Voucher godoc
// @Summary      Descargar el comprobante XML de un asiento
// @Tags         finance
// @Security     Bearer
// @Produce      application/xml
// @Param        id  path  string  true  "ID del asiento"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/voucher [get]
func (h *FinanceHandler) Voucher(c *fiber.Ctx) error {
	out, err := h.uc.VoucherXML(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="comprobante.xml"`)
	return c.Send(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-pro/internal/application/dto"
	"github.com/tu-usuario/erp-pro/internal/application/usecase"
)

// ActivityHandler expone el log de actividad (solo lectura).
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Listar el log de actividad
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"  default(1)
// @Param        pageSize    query  int     false  "Tamaño"  default(20)
// @Param        entityType  query  string  false  "Filtro por tipo de entidad"
// @Param        userId      query  string  false  "Filtro por usuario"
// @Success      200  {object}  dto.ListResponse[dto.ActivityResponse]
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "query inválida")
	}
	out, err := h.uc.List(c.Query("entityType"), c.Query("userId"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

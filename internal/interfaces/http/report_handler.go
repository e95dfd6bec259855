package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-pro/internal/application/reports"
)

// ReportHandler expone los reportes de ventas e inventario.
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// parseDate interpreta YYYY-MM-DD; devuelve nil si viene vacío.
func parseDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// Sales godoc
// @Summary      Reporte de ventas (las órdenes CANCELLED no cuentan)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        type       query  string  false  "summary | daily"  default(summary)
// @Param        startDate  query  string  false  "YYYY-MM-DD (por defecto hace 30 días)"
// @Param        endDate    query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200  {object}  dto.SalesSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	start, ok := parseDate(c.Query("startDate"))
	if !ok {
		return badRequest(c, "VALIDATION", "startDate inválida, formato YYYY-MM-DD")
	}
	end, ok := parseDate(c.Query("endDate"))
	if !ok {
		return badRequest(c, "VALIDATION", "endDate inválida, formato YYYY-MM-DD")
	}
	switch c.Query("type", "summary") {
	case "summary":
		out, err := h.uc.SalesSummary(c.Context(), start, end)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	case "daily":
		out, err := h.uc.SalesDaily(c.Context(), start, end)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	default:
		return badRequest(c, "VALIDATION", "type debe ser summary o daily")
	}
}

// Inventory godoc
// @Summary      Reporte de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        type         query  string  false  "status | movements"  default(status)
// @Param        warehouseId  query  string  false  "Filtro de stock bajo por bodega"
// @Param        limit        query  int     false  "Límite de movimientos"  default(20)
// @Success      200  {object}  dto.InventoryReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	switch c.Query("type", "status") {
	case "status":
		out, err := h.uc.InventoryStatus(c.Context(), c.Query("warehouseId"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	case "movements":
		out, err := h.uc.Movements(c.QueryInt("limit", 20))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	default:
		return badRequest(c, "VALIDATION", "type debe ser status o movements")
	}
}

package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// ReportHandler reportes de ventas (solo admin).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesByCategory godoc
// @Summary      Ventas por categoría y producto
// @Description  Excluye ventas anuladas. from/to aceptan YYYY-MM-DD o RFC3339; un to sin hora cubre el día completo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde"
// @Param        to    query  string  false  "Hasta"
// @Success      200   {object}  dto.SalesReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/report [get]
func (h *ReportHandler) SalesByCategory(c *fiber.Ctx) error {
	from, err := parseReportDate(c.Query("from"), false)
	if err != nil {
		return badRequest(c, "VALIDATION", "from: "+err.Error())
	}
	to, err := parseReportDate(c.Query("to"), true)
	if err != nil {
		return badRequest(c, "VALIDATION", "to: "+err.Error())
	}
	out, err := h.uc.SalesByCategory(c.UserContext(), dto.ReportFilter{From: from, To: to})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseReportDate interpreta YYYY-MM-DD (UTC) o RFC3339. endOfDay extiende una fecha sin hora al último instante del día.
func parseReportDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("formato esperado YYYY-MM-DD o RFC3339")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

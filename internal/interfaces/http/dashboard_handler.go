package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartsales-api/internal/application/analytics"
	"github.com/jhoicas/smartsales-api/pkg/logger"
)

// DashboardHandler expone los datos del gráfico principal.
type DashboardHandler struct {
	uc  *analytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetDashboard godoc
// @Summary      Dashboard de ventas
// @Description  Etiquetas, valores, pronóstico lineal y media móvil.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

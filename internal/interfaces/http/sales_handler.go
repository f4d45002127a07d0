package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/application/usecase"
	"github.com/jhoicas/smartsales-api/pkg/logger"
)

// SalesHandler maneja la serie de ventas mensuales.
type SalesHandler struct {
	uc  *usecase.SalesUseCase
	log *logger.Logger
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *usecase.SalesUseCase, log *logger.Logger) *SalesHandler {
	return &SalesHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Serie de ventas con pronóstico
// @Tags         sales
// @Produce      json
// @Success      200  {object}  dto.SalesSeriesResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Append godoc
// @Summary      Agregar periodo de ventas
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalesPeriodRequest  true  "label y value"
// @Success      201   {object}  dto.SalesPeriodDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SalesHandler) Append(c *fiber.Ctx) error {
	var in dto.SalesPeriodRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Append(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Replace godoc
// @Summary      Reemplazar la serie completa
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReplaceSalesRequest  true  "serie ordenada"
// @Success      200   {object}  dto.SalesSeriesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [put]
func (h *SalesHandler) Replace(c *fiber.Ctx) error {
	var in dto.ReplaceSalesRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Replace(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar periodo por etiqueta
// @Tags         sales
// @Security     Bearer
// @Param        label  path  string  true  "Etiqueta del periodo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{label} [delete]
func (h *SalesHandler) Delete(c *fiber.Ctx) error {
	label, err := url.PathUnescape(c.Params("label"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: "label mal codificado", Field: "label"})
	}
	if err := h.uc.Delete(c.UserContext(), label); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

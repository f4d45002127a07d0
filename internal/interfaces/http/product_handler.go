package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartsales-api/internal/application/analytics"
	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/application/inventory"
	"github.com/jhoicas/smartsales-api/pkg/logger"
)

// ProductHandler maneja catálogo, reposición y ventas de stock.
type ProductHandler struct {
	uc        *inventory.StockUseCase
	dashboard *analytics.DashboardUseCase
	log       *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *inventory.StockUseCase, dashboard *analytics.DashboardUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, dashboard: dashboard, log: log}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertProductRequest  true  "name, last_sales, stock"
// @Success      200   {object}  dto.ProductResponse
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, created, err := h.uc.Upsert(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}

// Restock godoc
// @Summary      Reponer stock (crea el producto si no existe)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustRequest  true  "name y quantity"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/restock [post]
func (h *ProductHandler) Restock(c *fiber.Ctx) error {
	var in dto.StockAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Restock(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Sell godoc
// @Summary      Registrar venta de stock
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockAdjustRequest  true  "name y quantity"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/sell [post]
func (h *ProductHandler) Sell(c *fiber.Ctx) error {
	var in dto.StockAdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Sell(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        name  path  string  true  "Nombre del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{name} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: "nombre mal codificado", Field: "name"})
	}
	if err := h.uc.Delete(c.UserContext(), name); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Outlook godoc
// @Summary      Recomendación de reposición por producto
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.ProductOutlookResponse
// @Router       /api/products/outlook [get]
func (h *ProductHandler) Outlook(c *fiber.Ctx) error {
	out, err := h.dashboard.GetProductOutlook(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

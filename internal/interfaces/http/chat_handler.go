package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/application/usecase"
	"github.com/jhoicas/smartsales-api/pkg/logger"
)

// ChatHandler atiende el asistente de ventas.
type ChatHandler struct {
	uc  *usecase.ChatUseCase
	log *logger.Logger
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *usecase.ChatUseCase, log *logger.Logger) *ChatHandler {
	return &ChatHandler{uc: uc, log: log}
}

// Ask godoc
// @Summary      Preguntar al asistente
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "Pregunta"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/chat [post]
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Ask(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/application/ports"
	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/pkg/logger"
)

// Códigos de error expuestos en dto.ErrorResponse.
const (
	CodeValidation        = "VALIDATION"
	CodeInvalidBody       = "INVALID_BODY"
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicate         = "DUPLICATE"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodePersistence       = "PERSISTENCE"
	CodeAIUnavailable     = "AI_UNAVAILABLE"
	CodeInternal          = "INTERNAL"
)

// invalidBody respuesta para cuerpos que no se pueden decodificar.
func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: CodeInvalidBody, Message: "cuerpo de la petición inválido: se espera JSON con los tipos correctos",
	})
}

// respondError traduce errores de dominio a HTTP. Los fallos de infraestructura se registran
// con su causa y al cliente solo le llega un mensaje genérico.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeValidation, Message: vErr.Error(), Field: vErr.Field,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: CodeDuplicate, Message: "ya existe un registro con ese nombre o etiqueta"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: CodeInsufficientStock, Message: "stock insuficiente para la venta"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeUnauthorized, Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: CodeForbidden, Message: "acceso denegado"})
	case errors.Is(err, ports.ErrAIUnavailable):
		log.Warn().Err(err).Str("request_id", GetRequestID(c)).Msg("asistente IA no disponible")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: CodeAIUnavailable, Message: "el asistente no está disponible; intenta de nuevo más tarde",
		})
	case errors.Is(err, domain.ErrPersistence):
		log.Error().Err(err).Str("request_id", GetRequestID(c)).Str("path", c.Path()).Msg("fallo de persistencia")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: CodePersistence, Message: "no se pudo acceder al almacenamiento; no se guardaron cambios",
		})
	default:
		log.Error().Err(err).Str("request_id", GetRequestID(c)).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: "error interno"})
	}
}

// fiberErrorHandler para errores que escapan de los handlers (404 de ruta, panics recuperados).
func fiberErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fErr *fiber.Error
		if errors.As(err, &fErr) {
			code := CodeInternal
			switch fErr.Code {
			case fiber.StatusNotFound:
				code = CodeNotFound
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
				code = CodeInvalidBody
			}
			return c.Status(fErr.Code).JSON(dto.ErrorResponse{Code: code, Message: fErr.Message})
		}
		return respondError(c, log, err)
	}
}

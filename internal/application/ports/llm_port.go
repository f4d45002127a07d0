package ports

import (
	"context"
	"errors"
)

// ErrAIUnavailable el proveedor de IA no está configurado o no respondió.
var ErrAIUnavailable = errors.New("asistente de IA no disponible")

// ChatService puerto de salida hacia el modelo de lenguaje.
// Cualquier adaptador (Anthropic, Gemini, mock) implementa esta interfaz; la aplicación
// solo conoce este contrato. El contexto debe llevar timeout.
type ChatService interface {
	// Reply envía el prompt completo y devuelve el texto de la respuesta.
	Reply(ctx context.Context, prompt string) (string, error)
}

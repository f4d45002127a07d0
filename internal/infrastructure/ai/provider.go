package ai

import (
	"fmt"

	"github.com/jhoicas/smartsales-api/internal/application/ports"
	"github.com/jhoicas/smartsales-api/pkg/config"
)

// Proveedores soportados en AI_PROVIDER.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// NewChatService elige el adaptador según la configuración.
func NewChatService(cfg config.AIConfig) (ports.ChatService, error) {
	switch cfg.Provider {
	case ProviderAnthropic, "":
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case ProviderGemini:
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	default:
		return nil, fmt.Errorf("AI: proveedor desconocido %q (anthropic, gemini)", cfg.Provider)
	}
}

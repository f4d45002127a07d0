package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jhoicas/smartsales-api/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa ChatService.
var _ ports.ChatService = (*GeminiService)(nil)

// GeminiService adaptador de ChatService sobre el SDK de Google Gemini.
type GeminiService struct {
	apiKey string
	model  string
	opts   []option.ClientOption
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
// opts se agregan a la API key (endpoint alternativo, cliente HTTP).
func NewGeminiService(apiKey, model string, opts ...option.ClientOption) *GeminiService {
	return &GeminiService{apiKey: apiKey, model: model, opts: opts}
}

// Reply crea un cliente por llamada, como hace el SDK en sus ejemplos, y lo cierra al terminar.
func (s *GeminiService) Reply(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GEMINI_API_KEY no configurado: %w", ports.ErrAIUnavailable)
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(s.apiKey)}, s.opts...)...)
	if err != nil {
		return "", fmt.Errorf("AI: crear cliente Gemini: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	model.SetTemperature(0.3)
	model.SetMaxOutputTokens(maxOutputTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: Gemini: %w", err)
	}

	reply := responseText(resp)
	if reply == "" {
		return "", fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}
	return reply, nil
}

// responseText concatena las partes de texto del primer candidato.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String())
}

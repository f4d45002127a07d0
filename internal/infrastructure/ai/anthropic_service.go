package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/smartsales-api/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa ChatService.
var _ ports.ChatService = (*AnthropicService)(nil)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
)

// AnthropicService adaptador de ChatService sobre la Messages API de Anthropic (REST).
type AnthropicService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// AnthropicOption ajusta el adaptador (tests, proxies).
type AnthropicOption func(*AnthropicService)

// WithBaseURL cambia el host de la API.
func WithBaseURL(url string) AnthropicOption {
	return func(s *AnthropicService) { s.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient reemplaza el cliente HTTP.
func WithHTTPClient(c *http.Client) AnthropicOption {
	return func(s *AnthropicService) { s.httpClient = c }
}

// NewAnthropicService construye el adaptador. Con apiKey vacío Reply devuelve ErrAIUnavailable.
func NewAnthropicService(apiKey, model string, opts ...AnthropicOption) *AnthropicService {
	s := &AnthropicService{
		apiKey:  apiKey,
		model:   model,
		baseURL: anthropicBaseURL,
		httpClient: &http.Client{
			// El use case impone además un context.WithTimeout más corto.
			Timeout: 25 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Reply envía el prompt como único mensaje de usuario y concatena los bloques de texto.
func (s *AnthropicService) Reply(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado: %w", ports.ErrAIUnavailable)
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     s.model,
		MaxTokens: maxOutputTokens,
		System:    systemPrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	var parsed anthropicResponse
	jsonErr := json.Unmarshal(rawBody, &parsed)
	if resp.StatusCode != http.StatusOK {
		if jsonErr == nil && parsed.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", parsed.Error.Type, parsed.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d", resp.StatusCode)
	}
	if jsonErr != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", jsonErr)
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", fmt.Errorf("AI: Anthropic devolvió respuesta vacía")
	}
	return reply, nil
}

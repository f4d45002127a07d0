package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/smartsales-api/internal/application/analytics"
	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/application/ports"
	"github.com/jhoicas/smartsales-api/internal/domain"
)

// ChatTimeout límite de cada llamada al LLM.
const ChatTimeout = 15 * time.Second

const maxChatMessageLen = 2000

// SnapshotReader fuente de datos del tablero para armar el contexto del prompt.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (*analytics.Snapshot, error)
}

// ChatUseCase responde preguntas sobre el negocio usando el catálogo, la serie y el pronóstico.
// No guarda historial: cada pregunta viaja sola con el estado actual.
type ChatUseCase struct {
	llm     ports.ChatService
	data    SnapshotReader
	timeout time.Duration
}

// NewChatUseCase construye el caso de uso inyectando el puerto ChatService.
func NewChatUseCase(llm ports.ChatService, data SnapshotReader) *ChatUseCase {
	return &ChatUseCase{llm: llm, data: data, timeout: ChatTimeout}
}

// WithTimeout cambia el límite por llamada (tests).
func (uc *ChatUseCase) WithTimeout(d time.Duration) *ChatUseCase {
	uc.timeout = d
	return uc
}

// Ask valida la pregunta, arma el prompt y delega en el LLM.
// Cualquier fallo del proveedor se reporta como ErrAIUnavailable.
func (uc *ChatUseCase) Ask(ctx context.Context, in dto.ChatRequest) (*dto.ChatResponse, error) {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, domain.NewValidationError("message", "es obligatorio")
	}
	if len(msg) > maxChatMessageLen {
		return nil, domain.NewValidationError("message", fmt.Sprintf("máximo %d caracteres", maxChatMessageLen))
	}

	snap, err := uc.data.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	prompt, err := BuildChatPrompt(msg, snap)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	reply, err := uc.llm.Reply(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("chat: %w: %w", ports.ErrAIUnavailable, err)
	}
	return &dto.ChatResponse{Reply: reply}, nil
}

type promptProduct struct {
	Product   string `json:"product"`
	LastSales int64  `json:"last_sales"`
	Stock     int64  `json:"stock"`
}

// BuildChatPrompt arma el prompt: pregunta, catálogo y serie en JSON, y el pronóstico vigente.
func BuildChatPrompt(question string, snap *analytics.Snapshot) (string, error) {
	products := make([]promptProduct, len(snap.Products))
	for i, p := range snap.Products {
		products[i] = promptProduct{Product: p.Name, LastSales: p.LastSales, Stock: p.Stock}
	}
	series := make([]dto.SalesPeriodDTO, len(snap.Periods))
	for i, p := range snap.Periods {
		series[i] = dto.SalesPeriodDTO{Label: p.Label, Value: p.Value}
	}
	productsJSON, err := json.Marshal(products)
	if err != nil {
		return "", fmt.Errorf("chat: serializar catálogo: %w", err)
	}
	seriesJSON, err := json.Marshal(series)
	if err != nil {
		return "", fmt.Errorf("chat: serializar serie: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User question: %s\n\n", question)
	fmt.Fprintf(&b, "Product catalog:\n%s\n\n", productsJSON)
	fmt.Fprintf(&b, "Monthly sales:\n%s\n\n", seriesJSON)
	fmt.Fprintf(&b, "Forecast for next period: %d (trend %s). %s\n\n",
		snap.Forecast.PredictedNextValue, snap.Forecast.Trend, snap.Forecast.Recommendation)
	b.WriteString("Please analyze and answer briefly.")
	return b.String(), nil
}

package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartsales-api/internal/application/analytics"
	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/application/ports"
	"github.com/jhoicas/smartsales-api/internal/application/usecase"
	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/internal/domain/entity"
	"github.com/jhoicas/smartsales-api/internal/infrastructure/memory"
)

// fakeChat registra el último prompt y responde lo configurado.
type fakeChat struct {
	prompt string
	reply  string
	err    error
	block  bool
}

func (f *fakeChat) Reply(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func newChatFixture(t *testing.T, llm ports.ChatService) *usecase.ChatUseCase {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "1", Name: "Widget", LastSales: 120, Stock: 50, CreatedAt: now}))
	for i, v := range []int64{100, 150, 120, 180, 200} {
		label := []string{"Jan", "Feb", "Mar", "Apr", "May"}[i]
		require.NoError(t, store.Sales().Append(ctx, &entity.SalesPeriod{ID: label, Label: label, Value: decimal.NewFromInt(v)}))
	}
	dashboard := analytics.NewDashboardUseCase(store.Sales(), store.Products(), 3)
	return usecase.NewChatUseCase(llm, dashboard)
}

func TestChatAsk_PromptIncluyeDatosDelNegocio(t *testing.T) {
	llm := &fakeChat{reply: "Repón Widget."}
	uc := newChatFixture(t, llm)

	res, err := uc.Ask(context.Background(), dto.ChatRequest{Message: "  ¿Qué repongo?  "})
	require.NoError(t, err)
	assert.Equal(t, "Repón Widget.", res.Reply)

	assert.True(t, strings.HasPrefix(llm.prompt, "User question: ¿Qué repongo?\n"))
	assert.Contains(t, llm.prompt, `"product":"Widget"`)
	assert.Contains(t, llm.prompt, `"label":"May"`)
	assert.Contains(t, llm.prompt, "Forecast for next period: 219 (trend Up)")
}

func TestChatAsk_MensajeVacio(t *testing.T) {
	uc := newChatFixture(t, &fakeChat{})
	_, err := uc.Ask(context.Background(), dto.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChatAsk_ErrorDelProveedor(t *testing.T) {
	uc := newChatFixture(t, &fakeChat{err: errors.New("HTTP 500")})
	_, err := uc.Ask(context.Background(), dto.ChatRequest{Message: "hola"})
	assert.ErrorIs(t, err, ports.ErrAIUnavailable)
}

func TestChatAsk_Timeout(t *testing.T) {
	uc := newChatFixture(t, &fakeChat{block: true}).WithTimeout(20 * time.Millisecond)

	start := time.Now()
	_, err := uc.Ask(context.Background(), dto.ChatRequest{Message: "hola"})
	assert.ErrorIs(t, err, ports.ErrAIUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

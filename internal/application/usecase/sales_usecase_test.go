package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/application/usecase"
	"github.com/jhoicas/smartsales-api/internal/domain"
	"github.com/jhoicas/smartsales-api/internal/domain/forecast"
	"github.com/jhoicas/smartsales-api/internal/infrastructure/memory"
)

func newSalesUseCase() *usecase.SalesUseCase {
	store := memory.NewStore()
	return usecase.NewSalesUseCase(store, store.Sales())
}

func period(label, value string) dto.SalesPeriodRequest {
	return dto.SalesPeriodRequest{Label: label, Value: json.RawMessage(value)}
}

func TestSalesAppend_OrdenYPronostico(t *testing.T) {
	uc := newSalesUseCase()
	ctx := context.Background()
	for _, p := range []dto.SalesPeriodRequest{
		period("Jan", "100"), period("Feb", "150"), period("Mar", "120"), period("Apr", "180"), period("May", "200"),
	} {
		_, err := uc.Append(ctx, p)
		require.NoError(t, err)
	}

	res, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, res.Series, 5)
	assert.Equal(t, "Jan", res.Series[0].Label)
	assert.Equal(t, "May", res.Series[4].Label)
	assert.Equal(t, int64(219), res.Forecast.PredictedNextValue)
	assert.Equal(t, string(forecast.TrendUp), res.Forecast.Trend)
	assert.Equal(t, forecast.RecommendationUp, res.Forecast.Recommendation)
}

func TestSalesAppend_EtiquetaDuplicada(t *testing.T) {
	uc := newSalesUseCase()
	ctx := context.Background()
	_, err := uc.Append(ctx, period("Jan", "100"))
	require.NoError(t, err)

	_, err = uc.Append(ctx, period(" jan ", "5"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSalesAppend_ValorInvalido(t *testing.T) {
	uc := newSalesUseCase()
	ctx := context.Background()
	for _, raw := range []string{`"100"`, `-1`, ``, `null`, `true`} {
		_, err := uc.Append(ctx, period("Jan", raw))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor %s", raw)
	}
	_, err := uc.Append(ctx, period("", "100"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSalesReplace_Atomico(t *testing.T) {
	uc := newSalesUseCase()
	ctx := context.Background()
	_, err := uc.Append(ctx, period("Jan", "100"))
	require.NoError(t, err)

	_, err = uc.Replace(ctx, dto.ReplaceSalesRequest{Series: []dto.SalesPeriodRequest{
		period("Feb", "1"), period("FEB", "2"),
	}})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "series[1].label", vErr.Field)

	res, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, res.Series, 1, "una petición rechazada no modifica la serie")

	res, err = uc.Replace(ctx, dto.ReplaceSalesRequest{Series: []dto.SalesPeriodRequest{
		period("Q1", "10.5"), period("Q2", "11.5"),
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(13), res.Forecast.PredictedNextValue)

	res, err = uc.Replace(ctx, dto.ReplaceSalesRequest{Series: []dto.SalesPeriodRequest{}})
	require.NoError(t, err)
	assert.Empty(t, res.Series)
	assert.Equal(t, forecast.RecommendationInsufficient, res.Forecast.Recommendation)

	_, err = uc.Replace(ctx, dto.ReplaceSalesRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSalesDelete(t *testing.T) {
	uc := newSalesUseCase()
	ctx := context.Background()
	_, err := uc.Append(ctx, period("Jan", "100"))
	require.NoError(t, err)
	_, err = uc.Append(ctx, period("Feb", "150"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, "JAN"))
	assert.ErrorIs(t, uc.Delete(ctx, "Jan"), domain.ErrNotFound)

	res, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, res.Series, 1)
	assert.Equal(t, "Feb", res.Series[0].Label)
	assert.Equal(t, 1, res.Forecast.Points)
}

package forecast_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartsales-api/internal/domain/forecast"
)

func series(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, decimal.NewFromInt(v))
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Vector de referencia: [100,150,120,180,200] sobre x = 1..5
//
//	sumX=15  sumY=750  sumXY=2480  sumX2=55
//	den = 5·55 − 15² = 50      num = 5·2480 − 15·750 = 1150
//	slope = 23   intercept = (750 − 23·15)/5 = 81   pred(6) = 81 + 23·6 = 219
//
// ──────────────────────────────────────────────────────────────────────────────
func TestForecast_VectorExacto(t *testing.T) {
	res := forecast.Forecast(series(100, 150, 120, 180, 200))

	assert.Equal(t, int64(219), res.PredictedNextValue)
	assert.Equal(t, forecast.TrendUp, res.Trend)
	assert.Equal(t, forecast.RecommendationUp, res.Recommendation)
	assert.True(t, res.Slope.Equal(decimal.NewFromInt(23)), "slope=%s", res.Slope)
	assert.True(t, res.Intercept.Equal(decimal.NewFromInt(81)), "intercept=%s", res.Intercept)
	assert.Equal(t, 5, res.Points)
	assert.True(t, res.Sufficient())
}

func TestForecast_Determinista(t *testing.T) {
	in := series(12, 7, 30, 4, 18, 22)
	assert.Equal(t, forecast.Forecast(in), forecast.Forecast(in))
}

func TestForecast_CrecienteEsUp(t *testing.T) {
	cases := [][]int64{
		{1, 2},
		{10, 11, 50},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		{-30, -20, -5},
	}
	for _, c := range cases {
		res := forecast.Forecast(series(c...))
		assert.Equal(t, forecast.TrendUp, res.Trend, "serie %v", c)
		assert.Equal(t, forecast.RecommendationUp, res.Recommendation)
	}
}

func TestForecast_DecrecienteEsDown(t *testing.T) {
	cases := [][]int64{
		{2, 1},
		{500, 300, 299},
		{9, 8, 7, 6, 5, 4},
	}
	for _, c := range cases {
		res := forecast.Forecast(series(c...))
		assert.Equal(t, forecast.TrendDown, res.Trend, "serie %v", c)
		assert.Equal(t, forecast.RecommendationDown, res.Recommendation)
	}
}

func TestForecast_ConstanteEsFlat(t *testing.T) {
	for _, v := range []int64{0, 7, 1250} {
		res := forecast.Forecast(series(v, v, v, v))
		assert.Equal(t, forecast.TrendFlat, res.Trend)
		assert.Equal(t, v, res.PredictedNextValue, "una serie constante proyecta la misma constante")
		assert.Equal(t, forecast.RecommendationFlat, res.Recommendation)
		assert.True(t, res.Slope.IsZero())
	}
}

// Pendiente exactamente cero sin ser constante: [1,3,3,1] es simétrica.
func TestForecast_PendienteCeroExacta(t *testing.T) {
	res := forecast.Forecast(series(1, 3, 3, 1))
	assert.Equal(t, forecast.TrendFlat, res.Trend)
	assert.Equal(t, int64(2), res.PredictedNextValue)
}

func TestForecast_MenosDeDosPuntos(t *testing.T) {
	for _, in := range [][]decimal.Decimal{nil, {}, series(999)} {
		res := forecast.Forecast(in)
		assert.Equal(t, int64(0), res.PredictedNextValue)
		assert.Equal(t, forecast.TrendFlat, res.Trend)
		assert.Equal(t, forecast.RecommendationInsufficient, res.Recommendation)
		assert.False(t, res.Sufficient())
	}
}

// Redondeo mitad alejándose de cero:
// [0,0,1,0] → slope 0.1, intercept 0, pred(5) = 0.5 → 1
// [0,0,-1,0] → pred = −0.5 → −1
func TestForecast_RedondeoMitadLejosDeCero(t *testing.T) {
	up := forecast.Forecast(series(0, 0, 1, 0))
	assert.Equal(t, int64(1), up.PredictedNextValue)
	assert.Equal(t, forecast.TrendUp, up.Trend)

	down := forecast.Forecast(series(0, 0, -1, 0))
	assert.Equal(t, int64(-1), down.PredictedNextValue)
	assert.Equal(t, forecast.TrendDown, down.Trend)
}

func TestForecast_ValoresDecimales(t *testing.T) {
	in := []decimal.Decimal{
		decimal.RequireFromString("10.5"),
		decimal.RequireFromString("11.5"),
	}
	res := forecast.Forecast(in)
	// pred(3) = 12.5 → 13
	assert.Equal(t, int64(13), res.PredictedNextValue)
}

func TestRecommend_MapeoFijo(t *testing.T) {
	require.Equal(t, forecast.RecommendationUp, forecast.Recommend(forecast.TrendUp))
	require.Equal(t, forecast.RecommendationDown, forecast.Recommend(forecast.TrendDown))
	require.Equal(t, forecast.RecommendationFlat, forecast.Recommend(forecast.TrendFlat))
}

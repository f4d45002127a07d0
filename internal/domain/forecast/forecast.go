// Package forecast implementa la proyección de ventas del siguiente período
// (mínimos cuadrados ordinarios con el índice del período como única variable)
// y la recomendación cualitativa derivada de la tendencia.
//
// Todo el cálculo se hace con shopspring/decimal: los acumulados son exactos y el
// redondeo final (mitad alejándose de cero) no depende de errores de coma flotante.
package forecast

import "github.com/shopspring/decimal"

// Trend dirección de la recta ajustada.
type Trend string

const (
	TrendUp   Trend = "Up"
	TrendDown Trend = "Down"
	TrendFlat Trend = "Flat"
)

// MinPoints puntos mínimos para ajustar una recta.
const MinPoints = 2

// Textos de recomendación. Dependen solo de la tendencia.
const (
	RecommendationUp           = "Sales are trending up: increase stock for the next period."
	RecommendationDown         = "Sales are trending down: review pricing and promotion strategy."
	RecommendationFlat         = "Sales are stable: keep monitoring."
	RecommendationInsufficient = "Not enough data to forecast: record at least two periods."
)

// slopePlaces decimales con los que se reportan pendiente e intercepto.
const slopePlaces = 4

// Result proyección derivada; nunca se persiste.
type Result struct {
	PredictedNextValue int64
	Trend              Trend
	Recommendation     string
	Slope              decimal.Decimal
	Intercept          decimal.Decimal
	Points             int
}

// Sufficient indica si la serie tenía datos para ajustar la recta.
func (r Result) Sufficient() bool { return r.Points >= MinPoints }

// Forecast ajusta y = intercept + slope·x con x = 1..n y proyecta x = n+1.
// Con menos de dos puntos devuelve 0, Flat y la recomendación de "faltan datos".
func Forecast(series []decimal.Decimal) Result {
	n := len(series)
	if n < MinPoints {
		return Result{
			Trend:          TrendFlat,
			Recommendation: RecommendationInsufficient,
			Slope:          decimal.Zero,
			Intercept:      decimal.Zero,
			Points:         n,
		}
	}

	var sumX, sumY, sumXY, sumX2 decimal.Decimal
	for i, y := range series {
		x := decimal.NewFromInt(int64(i + 1))
		sumX = sumX.Add(x)
		sumY = sumY.Add(y)
		sumXY = sumXY.Add(x.Mul(y))
		sumX2 = sumX2.Add(x.Mul(x))
	}
	nDec := decimal.NewFromInt(int64(n))

	den := nDec.Mul(sumX2).Sub(sumX.Mul(sumX))
	num := nDec.Mul(sumXY).Sub(sumX.Mul(sumY))
	if den.IsZero() {
		num = decimal.Zero
	}

	// slope = num/den; intercept = (sumY − slope·sumX)/n
	// pred  = intercept + slope·(n+1) = (sumY·den − num·sumX + n(n+1)·num) / (n·den)
	var slope, intercept, predicted decimal.Decimal
	if den.IsZero() {
		slope = decimal.Zero
		intercept = sumY.DivRound(nDec, slopePlaces)
		predicted = sumY.DivRound(nDec, 0)
	} else {
		slope = num.DivRound(den, slopePlaces)
		intercept = sumY.Mul(den).Sub(num.Mul(sumX)).DivRound(nDec.Mul(den), slopePlaces)
		next := nDec.Mul(decimal.NewFromInt(int64(n + 1)))
		predicted = sumY.Mul(den).Sub(num.Mul(sumX)).Add(next.Mul(num)).DivRound(nDec.Mul(den), 0)
	}

	trend := trendOf(num.Sign())
	return Result{
		PredictedNextValue: predicted.IntPart(),
		Trend:              trend,
		Recommendation:     Recommend(trend),
		Slope:              slope,
		Intercept:          intercept,
		Points:             n,
	}
}

// Recommend mapea la tendencia a su texto fijo.
func Recommend(t Trend) string {
	switch t {
	case TrendUp:
		return RecommendationUp
	case TrendDown:
		return RecommendationDown
	default:
		return RecommendationFlat
	}
}

// den > 0 siempre que n >= 2, así que el signo de la pendiente es el del numerador.
func trendOf(sign int) Trend {
	switch {
	case sign > 0:
		return TrendUp
	case sign < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}

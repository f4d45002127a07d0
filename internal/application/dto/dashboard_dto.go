package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartsales-api/internal/domain/forecast"
)

// ForecastDTO resultado del ajuste lineal sobre la serie.
type ForecastDTO struct {
	PredictedNextValue int64           `json:"predicted_next_value"`
	Trend              string          `json:"trend"` // Up | Down | Flat
	Recommendation     string          `json:"recommendation"`
	Slope              decimal.Decimal `json:"slope" swaggertype:"number"`
	Intercept          decimal.Decimal `json:"intercept" swaggertype:"number"`
	Points             int             `json:"points"`
}

// DashboardResponse salida de GET /api/dashboard.
type DashboardResponse struct {
	Labels                  []string          `json:"labels"`
	Values                  []decimal.Decimal `json:"values" swaggertype:"array,number"`
	Forecast                ForecastDTO       `json:"forecast"`
	MovingAveragePrediction int64             `json:"moving_average_prediction"`
	MovingAverageWindow     int               `json:"moving_average_window"`
	PeriodCount             int               `json:"period_count"`
}

// NewForecastDTO adapta el resultado del motor de pronóstico.
func NewForecastDTO(r forecast.Result) ForecastDTO {
	return ForecastDTO{
		PredictedNextValue: r.PredictedNextValue,
		Trend:              string(r.Trend),
		Recommendation:     r.Recommendation,
		Slope:              r.Slope,
		Intercept:          r.Intercept,
		Points:             r.Points,
	}
}

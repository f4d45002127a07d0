package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SalesPeriodRequest un período de la serie: {"label": "Jan", "value": 100}.
type SalesPeriodRequest struct {
	Label string          `json:"label" example:"Jan"`
	Value json.RawMessage `json:"value" swaggertype:"number" example:"100"`
}

// ReplaceSalesRequest entrada de PUT /api/sales.
type ReplaceSalesRequest struct {
	Series []SalesPeriodRequest `json:"series"`
}

// SalesPeriodDTO salida de un período.
type SalesPeriodDTO struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value" swaggertype:"number"`
}

// SalesSeriesResponse salida de GET /api/sales: la serie ordenada más su proyección.
type SalesSeriesResponse struct {
	Series   []SalesPeriodDTO `json:"series"`
	Forecast ForecastDTO      `json:"forecast"`
}

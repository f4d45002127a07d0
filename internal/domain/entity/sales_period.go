package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesPeriod es un período (normalmente un mes) con su venta agregada.
// El orden de la serie lo da Position (cronológico, empieza en 0).
type SalesPeriod struct {
	ID        string
	Label     string
	LabelKey  string
	Value     decimal.Decimal
	Position  int
	CreatedAt time.Time
}

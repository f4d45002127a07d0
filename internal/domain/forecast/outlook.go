package forecast

import "github.com/shopspring/decimal"

// growthFactor crecimiento esperado por producto respecto al último período.
var growthFactor = decimal.RequireFromString("1.2")

// Outlook proyección simple por producto para la tabla de stock.
type Outlook struct {
	Forecast         int64
	Trend            Trend
	RestockNeeded    bool
	SuggestedRestock int64
}

// ProductOutlook proyecta floor(lastSales × 1.2) y sugiere reponer lo que falte
// para cubrir esa demanda con el stock actual.
func ProductOutlook(lastSales, stock int64) Outlook {
	projected := decimal.NewFromInt(lastSales).Mul(growthFactor).Floor().IntPart()
	trend := TrendDown
	if projected > lastSales {
		trend = TrendUp
	}
	var suggested int64
	if projected > stock {
		suggested = projected - stock
	}
	return Outlook{
		Forecast:         projected,
		Trend:            trend,
		RestockNeeded:    suggested > 0,
		SuggestedRestock: suggested,
	}
}

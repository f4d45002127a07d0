package forecast

import "github.com/shopspring/decimal"

// DefaultWindow ventana de la media móvil usada como segunda estimación del tablero.
const DefaultWindow = 3

// MovingAverage promedia los últimos window puntos (todos si hay menos) y redondea
// mitad alejándose de cero. Serie vacía → 0. window <= 0 usa DefaultWindow.
func MovingAverage(series []decimal.Decimal, window int) int64 {
	if len(series) == 0 {
		return 0
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if window > len(series) {
		window = len(series)
	}
	tail := series[len(series)-window:]
	sum := decimal.Zero
	for _, v := range tail {
		sum = sum.Add(v)
	}
	return sum.DivRound(decimal.NewFromInt(int64(window)), 0).IntPart()
}

package inventory

import (
	"math"

	"github.com/jhoicas/smartsales-api/internal/domain"
)

// ValidateQuantity exige una cantidad entera estrictamente positiva.
func ValidateQuantity(qty int64) error {
	if qty <= 0 {
		return domain.NewValidationError("quantity", "debe ser un entero mayor que 0")
	}
	return nil
}

// Restock suma qty al stock actual.
func Restock(stock, qty int64) (int64, error) {
	if err := ValidateQuantity(qty); err != nil {
		return stock, err
	}
	if qty > math.MaxInt64-stock {
		return stock, domain.NewValidationError("quantity", "el stock resultante excede el máximo")
	}
	return stock + qty, nil
}

// Sell descuenta qty del stock. Nunca deja stock negativo: una venta mayor que el
// stock disponible devuelve ErrInsufficientStock y no modifica nada.
func Sell(stock, qty int64) (int64, error) {
	if err := ValidateQuantity(qty); err != nil {
		return stock, err
	}
	if qty > stock {
		return stock, domain.ErrInsufficientStock
	}
	return stock - qty, nil
}

package dto

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/smartsales-api/internal/domain"
)

// Los campos numéricos de entrada llegan como json.RawMessage y se validan aquí:
// solo se aceptan literales numéricos JSON. "12", 1.5 en un entero, true o null se rechazan.

// ParseInt64 exige un literal entero JSON (sin fracción ni exponente).
func ParseInt64(field string, raw json.RawMessage) (int64, error) {
	num, err := parseNumber(field, raw)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(num.String(), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(field, "debe ser un número entero")
	}
	return n, nil
}

// ParseDecimal exige un literal numérico JSON y lo convierte sin pasar por float64.
func ParseDecimal(field string, raw json.RawMessage) (decimal.Decimal, error) {
	num, err := parseNumber(field, raw)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(num.String())
	if err != nil {
		return decimal.Zero, domain.NewValidationError(field, "debe ser un número")
	}
	return d, nil
}

// Límites de los montos de ventas: los mismos que la columna NUMERIC(18, 2) de Postgres,
// para que todos los drivers guarden el mismo valor.
const (
	AmountMaxScale     = 2
	AmountMaxIntDigits = 16
	amountMaxExponent  = 20
)

var amountLimit = decimal.New(1, AmountMaxIntDigits)

// ParseAmount es ParseDecimal acotado: como máximo 2 decimales y menos de 16 dígitos enteros.
// El exponente se revisa antes de cualquier reescalado.
func ParseAmount(field string, raw json.RawMessage) (decimal.Decimal, error) {
	d, err := ParseDecimal(field, raw)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsZero() {
		return decimal.Zero, nil
	}
	exp := d.Exponent()
	if exp < -amountMaxExponent || exp > amountMaxExponent {
		return decimal.Zero, domain.NewValidationError(field, "fuera de rango")
	}
	if exp < -AmountMaxScale && !d.Equal(d.Truncate(AmountMaxScale)) {
		return decimal.Zero, domain.NewValidationError(field, "máximo 2 decimales")
	}
	if d.Abs().GreaterThanOrEqual(amountLimit) {
		return decimal.Zero, domain.NewValidationError(field, "fuera de rango")
	}
	return d.Truncate(AmountMaxScale), nil
}

func parseNumber(field string, raw json.RawMessage) (json.Number, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", domain.NewValidationError(field, "es obligatorio")
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", domain.NewValidationError(field, "debe ser un número")
	}
	num, ok := v.(json.Number)
	if !ok {
		return "", domain.NewValidationError(field, "debe ser un número")
	}
	return num, nil
}

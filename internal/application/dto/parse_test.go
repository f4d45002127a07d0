package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smartsales-api/internal/application/dto"
	"github.com/jhoicas/smartsales-api/internal/domain"
)

func TestParseInt64(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int64
		ok   bool
	}{
		{"entero", `5`, 5, true},
		{"negativo se parsea, lo rechaza el dominio", `-3`, -3, true},
		{"espacios", ` 42 `, 42, true},
		{"fraccion", `1.5`, 0, false},
		{"exponente", `1e3`, 0, false},
		{"cadena numerica", `"5"`, 0, false},
		{"texto", `"abc"`, 0, false},
		{"booleano", `true`, 0, false},
		{"null", `null`, 0, false},
		{"ausente", ``, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dto.ParseInt64("quantity", json.RawMessage(tc.raw))
			if !tc.ok {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				var vErr *domain.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "quantity", vErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDecimal(t *testing.T) {
	d, err := dto.ParseDecimal("value", json.RawMessage(`150.25`))
	require.NoError(t, err)
	assert.Equal(t, "150.25", d.String())

	d, err = dto.ParseDecimal("value", json.RawMessage(`1e2`))
	require.NoError(t, err)
	assert.Equal(t, "100", d.String())

	_, err = dto.ParseDecimal("value", json.RawMessage(`"150"`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = dto.ParseDecimal("value", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"entero", `100`, "100", true},
		{"dos decimales", `10.55`, "10.55", true},
		{"ceros sobrantes", `10.500`, "10.5", true},
		{"cero con exponente", `0e-3000000`, "0", true},
		{"maximo", `9999999999999999.99`, "9999999999999999.99", true},
		{"tres decimales", `10.555`, "", false},
		{"exponente negativo enorme", `1e-3000000`, "", false},
		{"exponente positivo enorme", `1e3000000`, "", false},
		{"dieciseis digitos enteros", `1e16`, "", false},
		{"cadena", `"10"`, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := dto.ParseAmount("value", json.RawMessage(tc.raw))
			if !tc.ok {
				var vErr *domain.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "value", vErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

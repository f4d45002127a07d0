package entity

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeKey devuelve la clave de unicidad de un nombre o etiqueta:
// sin espacios en los extremos y con case folding Unicode ("Widget" == "WIDGET" == "widget").
func NormalizeKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

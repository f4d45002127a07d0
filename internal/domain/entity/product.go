package entity

import "time"

// Product representa un producto del tablero: ventas del último período y stock actual.
// Name es único sin distinguir mayúsculas; NameKey guarda la forma normalizada.
type Product struct {
	ID        string
	Name      string // nombre visible, se conserva la primera grafía registrada
	NameKey   string
	LastSales int64 // unidades vendidas en el último período (>= 0)
	Stock     int64 // unidades disponibles (>= 0)
	CreatedAt time.Time
	UpdatedAt time.Time
}

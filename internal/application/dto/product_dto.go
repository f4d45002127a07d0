package dto

import (
	"encoding/json"
	"time"
)

// StockAdjustRequest entrada de POST /api/products/restock y /api/products/sell.
type StockAdjustRequest struct {
	Name     string          `json:"name" example:"Widget"`
	Quantity json.RawMessage `json:"quantity" swaggertype:"integer" example:"5"`
}

// UpsertProductRequest entrada de POST /api/products: crea o sobrescribe los contadores.
type UpsertProductRequest struct {
	Name      string          `json:"name" example:"Widget"`
	LastSales json.RawMessage `json:"last_sales" swaggertype:"integer" example:"120"`
	Stock     json.RawMessage `json:"stock" swaggertype:"integer" example:"50"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LastSales int64     `json:"last_sales"`
	Stock     int64     `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductListResponse lista de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ProductOutlookDTO proyección por producto (tabla de stock del tablero).
type ProductOutlookDTO struct {
	Product          string `json:"product"`
	LastSales        int64  `json:"last_sales"`
	Forecast         int64  `json:"forecast"`
	Trend            string `json:"trend"`
	Stock            int64  `json:"stock"`
	RestockNeeded    bool   `json:"restock_needed"`
	SuggestedRestock int64  `json:"suggested_restock"`
}

// ProductOutlookResponse salida de GET /api/products/outlook.
type ProductOutlookResponse struct {
	Items        []ProductOutlookDTO `json:"items"`
	RestockCount int                 `json:"restock_count"` // productos con restock_needed
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
	Type string `json:"type" validate:"required"` // main_depot, workshop, store, supplier, customer
}

// UpdateLocationRequest entrada para actualizar una ubicación.
type UpdateLocationRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
	Type *string `json:"type"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationStockRow fila de stock de un lote en la ubicación (para pickers de
// "lotes disponibles aquí" en los colaboradores).
type LocationStockRow struct {
	LotID           string          `json:"lot_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// LocationDetailResponse ubicación con sus filas de distribución.
type LocationDetailResponse struct {
	LocationResponse
	Stock []LocationStockRow `json:"stock"`
}

// LocationListResponse lista paginada de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

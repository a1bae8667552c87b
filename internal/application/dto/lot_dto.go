package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLotRequest entrada para crear un lote directamente (sin pasar por un IN).
// Si LotNumber va vacío, el registro genera uno único.
type CreateLotRequest struct {
	ItemID            string          `json:"item_id" validate:"required"`
	LotNumber         string          `json:"lot_number"`
	SupplierID        *string         `json:"supplier_id"`
	ManufacturingDate *time.Time      `json:"manufacturing_date"`
	ExpirationDate    *time.Time      `json:"expiration_date"`
	InitialQuantity   decimal.Decimal `json:"initial_quantity"`
	Notes             string          `json:"notes"`
}

// UpdateLotRequest entrada para actualizar un lote. InitialQuantity e ItemID
// se aceptan en el cuerpo solo para poder rechazarlos con IMMUTABLE.
type UpdateLotRequest struct {
	LotNumber         *string          `json:"lot_number"`
	SupplierID        *string          `json:"supplier_id"`
	ManufacturingDate *time.Time       `json:"manufacturing_date"`
	ExpirationDate    *time.Time       `json:"expiration_date"`
	Status            *string          `json:"status"`
	Notes             *string          `json:"notes"`
	InitialQuantity   *decimal.Decimal `json:"initial_quantity"`
	ItemID            *string          `json:"item_id"`
}

// LotLocationRow distribución de un lote en una ubicación.
type LotLocationRow struct {
	LocationID      string          `json:"location_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
}

// LotResponse salida de un lote con su distribución por ubicación.
type LotResponse struct {
	ID                string           `json:"id"`
	LotNumber         string           `json:"lot_number"`
	ItemID            string           `json:"item_id"`
	SupplierID        *string          `json:"supplier_id,omitempty"`
	ManufacturingDate *time.Time       `json:"manufacturing_date,omitempty"`
	ExpirationDate    *time.Time       `json:"expiration_date,omitempty"`
	ReceivedDate      time.Time        `json:"received_date"`
	InitialQuantity   decimal.Decimal  `json:"initial_quantity"`
	Status            string           `json:"status"`
	Notes             string           `json:"notes"`
	TotalQuantity     decimal.Decimal  `json:"total_quantity"`
	Locations         []LotLocationRow `json:"locations"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// LotListResponse lista paginada de lotes.
type LotListResponse struct {
	Items []LotResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

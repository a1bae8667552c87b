package dto

import "github.com/shopspring/decimal"

// QuantityResponse cantidad de un lote en una ubicación.
type QuantityResponse struct {
	LotID      string          `json:"lot_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ItemTotalResponse total de un artículo sumando todos sus lotes y ubicaciones.
type ItemTotalResponse struct {
	ItemID string          `json:"item_id"`
	Total  decimal.Decimal `json:"total"`
}

// SetMinimumRequest fija el umbral de reposición de un par (lote, ubicación).
type SetMinimumRequest struct {
	LotID           string          `json:"lot_id" validate:"required"`
	LocationID      string          `json:"location_id" validate:"required"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
}

// ReorderRow fila del reporte de reposición: stock en o bajo el umbral.
type ReorderRow struct {
	LotID           string          `json:"lot_id"`
	LocationID      string          `json:"location_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	Shortfall       decimal.Decimal `json:"shortfall"`
}

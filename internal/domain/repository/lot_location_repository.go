package repository

import (
	"github.com/shopspring/decimal"

	"github.com/crisvega-dev/imprenta-stock/internal/domain/entity"
)

// LotLocationRepository define el puerto sobre la distribución de stock por
// (lote, ubicación). Las escrituras pasan exclusivamente por ApplyDelta y
// SetMinimum; ningún otro componente muta quantity directamente.
type LotLocationRepository interface {
	// Get devuelve la fila del par; si no existe, una fila con quantity 0.
	Get(lotID, locationID string) (*entity.LotLocation, error)
	// GetForUpdate igual que Get pero bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(lotID, locationID string) (*entity.LotLocation, error)
	// ApplyDelta suma delta (positivo o negativo) a la fila, creándola si no
	// existe y delta > 0. Retorna domain.ErrNegativeStock si el resultado
	// quedaría por debajo de 0.
	ApplyDelta(lotID, locationID string, delta decimal.Decimal) error
	// SetMinimum fija el umbral informativo de reposición del par.
	SetMinimum(lotID, locationID string, minimum decimal.Decimal) error

	ListByLot(lotID string) ([]*entity.LotLocation, error)
	ListByLocation(locationID string) ([]*entity.LotLocation, error)
	// ListAvailableLots lotes del artículo con quantity > 0 en la ubicación.
	ListAvailableLots(itemID, locationID string) ([]*entity.Lot, error)
	// ListBelowMinimum filas con quantity <= minimum_quantity y minimum > 0.
	ListBelowMinimum(locationID string) ([]*entity.LotLocation, error)

	SumByLot(lotID string) (decimal.Decimal, error)
	SumByItem(itemID string) (decimal.Decimal, error)
	// HasStock indica si el lote tiene alguna fila con quantity > 0.
	HasStock(lotID string) (bool, error)
}

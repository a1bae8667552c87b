package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/crisvega-dev/imprenta-stock/internal/application/dto"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/entity"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/repository"
)

// Availability es el verificador de disponibilidad: lecturas puras sobre la
// distribución confirmada. Los drafts nunca afectan estos números.
type Availability struct {
	stockRepo repository.LotLocationRepository
}

// NewAvailability construye el verificador.
func NewAvailability(stockRepo repository.LotLocationRepository) *Availability {
	return &Availability{stockRepo: stockRepo}
}

// QuantityAt cantidad de un lote en una ubicación (0 si no hay fila).
func (a *Availability) QuantityAt(lotID, locationID string) (decimal.Decimal, error) {
	row, err := a.stockRepo.Get(lotID, locationID)
	if err != nil {
		return decimal.Zero, err
	}
	return row.Quantity, nil
}

// LotsFor lotes del artículo con stock disponible (> 0) en la ubicación.
func (a *Availability) LotsFor(itemID, locationID string) ([]*entity.Lot, error) {
	return a.stockRepo.ListAvailableLots(itemID, locationID)
}

// TotalForItem total del artículo sumando todos sus lotes y ubicaciones.
func (a *Availability) TotalForItem(itemID string) (decimal.Decimal, error) {
	return a.stockRepo.SumByItem(itemID)
}

// ReorderList filas de stock en o bajo su umbral de reposición. Si locationID
// va vacío se revisan todas las ubicaciones.
func (a *Availability) ReorderList(locationID string) ([]dto.ReorderRow, error) {
	rows, err := a.stockRepo.ListBelowMinimum(locationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReorderRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ReorderRow{
			LotID:           r.LotID,
			LocationID:      r.LocationID,
			Quantity:        r.Quantity,
			MinimumQuantity: r.MinimumQuantity,
			Shortfall:       r.MinimumQuantity.Sub(r.Quantity),
		})
	}
	return out, nil
}

// SetMinimum fija el umbral informativo de reposición de un par (lote, ubicación).
// No es una escritura de stock: quantity no se toca.
func (a *Availability) SetMinimum(lotID, locationID string, minimum decimal.Decimal) error {
	return a.stockRepo.SetMinimum(lotID, locationID, minimum)
}

package repository

import "github.com/crisvega-dev/imprenta-stock/internal/domain/entity"

// LotFilter filtros para listar lotes.
type LotFilter struct {
	ItemID     string
	LocationID string // solo lotes con presencia (quantity > 0) en esa ubicación
	Status     string
}

// LotRepository define el puerto de persistencia para lotes (DIP).
// Create retorna domain.ErrDuplicateLotNumber si el lot_number ya existe.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	GetForUpdate(id string) (*entity.Lot, error)
	GetByNumber(lotNumber string) (*entity.Lot, error)
	List(filter LotFilter, limit, offset int) ([]*entity.Lot, error)
	Update(lot *entity.Lot) error
	UpdateStatus(id, status string) error
	Delete(id string) error
}

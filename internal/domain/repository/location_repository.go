package repository

import "github.com/crisvega-dev/imprenta-stock/internal/domain/entity"

// LocationRepository define el puerto de persistencia para ubicaciones (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List(locationType string, limit, offset int) ([]*entity.Location, error)
	Update(location *entity.Location) error
	Delete(id string) error
}

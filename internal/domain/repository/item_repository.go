package repository

import "github.com/crisvega-dev/imprenta-stock/internal/domain/entity"

// ItemRepository define el puerto de persistencia para el catálogo de artículos (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
	Update(item *entity.Item) error
	Delete(id string) error
}

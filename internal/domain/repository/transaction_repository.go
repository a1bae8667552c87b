package repository

import "github.com/crisvega-dev/imprenta-stock/internal/domain/entity"

// TransactionFilter filtros para listar transacciones.
type TransactionFilter struct {
	Status string
	Type   string
	ItemID string
	LotID  string
}

// TransactionRepository define el puerto de persistencia para transacciones (DIP).
type TransactionRepository interface {
	Create(trx *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	// GetForUpdate bloquea la fila de la transacción para serializar
	// validate/cancel concurrentes sobre el mismo draft.
	GetForUpdate(id string) (*entity.Transaction, error)
	List(filter TransactionFilter, limit, offset int) ([]*entity.Transaction, error)
	Update(trx *entity.Transaction) error
	Delete(id string) error
	// ExistsByLot indica si alguna transacción referencia el lote.
	ExistsByLot(lotID string) (bool, error)
}

package ledger

import (
	"context"

	"github.com/crisvega-dev/imprenta-stock/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la verificación de suficiencia
// y los ApplyDelta de un validate sean una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		lotRepo repository.LotRepository,
		stockRepo repository.LotLocationRepository,
	) error) error
}

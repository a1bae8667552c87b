package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotLocation es el registro de distribución: cuántas unidades de un lote hay
// en una ubicación. Una fila por par (lot_id, location_id); quantity >= 0 siempre.
// Solo el motor de transacciones escribe estas filas (vía ApplyDelta).
type LotLocation struct {
	LotID           string
	LocationID      string
	Quantity        decimal.Decimal
	MinimumQuantity decimal.Decimal // umbral informativo de reposición
	UpdatedAt       time.Time
}

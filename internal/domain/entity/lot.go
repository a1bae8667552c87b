package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote. "depleted" lo asigna el motor cuando el total distribuido
// llega a 0; "expired" y "recalled" solo por acción administrativa explícita.
const (
	LotStatusActive   = "active"
	LotStatusExpired  = "expired"
	LotStatusRecalled = "recalled"
	LotStatusDepleted = "depleted"
)

// Lot representa una partida trazable de un artículo: procedencia del proveedor,
// fechas de fabricación/vencimiento y cantidad inicial inmutable.
// Invariante: la suma de sus LotLocation nunca supera InitialQuantity.
type Lot struct {
	ID                string
	LotNumber         string
	ItemID            string
	SupplierID        *string
	ManufacturingDate *time.Time
	ExpirationDate    *time.Time
	ReceivedDate      time.Time
	InitialQuantity   decimal.Decimal
	Status            string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidLotStatus verifica que el estado sea uno de los soportados.
func ValidLotStatus(s string) bool {
	switch s {
	case LotStatusActive, LotStatusExpired, LotStatusRecalled, LotStatusDepleted:
		return true
	}
	return false
}

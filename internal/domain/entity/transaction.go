package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	TransactionTypeIN         = "IN"         // entrada
	TransactionTypeOUT        = "OUT"        // salida
	TransactionTypeTRANSFER   = "TRANSFER"   // traslado entre ubicaciones
	TransactionTypeADJUSTMENT = "ADJUSTMENT" // ajuste con signo según ubicación poblada
)

// Estados de una transacción. Las transiciones válidas son
// draft -> validated y draft -> cancelled; ambas terminales.
const (
	TransactionStatusDraft     = "draft"
	TransactionStatusValidated = "validated"
	TransactionStatusCancelled = "cancelled"
)

// Transaction representa un movimiento de stock propuesto o confirmado.
// En draft no toca stock; solo la transición a validated aplica los deltas.
// Una transacción validada es un asiento inmutable del ledger: revertirla
// requiere una transacción nueva en sentido contrario.
type Transaction struct {
	ID           string
	ItemID       string
	LotID        *string // nil solo mientras un IN está pendiente de crear lote
	FromLocation *string
	ToLocation   *string
	Quantity     decimal.Decimal // siempre > 0; el signo lo implica el tipo
	Type         string
	Status       string
	SupplierID   *string // solo IN: sella el lote nuevo
	Notes        string
	CreatedBy    string
	ValidatedBy  *string
	CreatedAt    time.Time
	ValidatedAt  *time.Time
}

// ValidTransactionType verifica que el tipo sea uno de los soportados.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeIN, TransactionTypeOUT, TransactionTypeTRANSFER, TransactionTypeADJUSTMENT:
		return true
	}
	return false
}

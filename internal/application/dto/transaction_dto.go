package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest entrada para proponer un movimiento de stock.
// Campos requeridos según tipo: IN -> to_location; OUT -> from_location y
// lot_id; TRANSFER -> ambas ubicaciones y lot_id; ADJUSTMENT -> lot_id y
// exactamente una ubicación. CreatedBy opcional: si va vacío se toma del token.
type CreateTransactionRequest struct {
	Type         string          `json:"type" validate:"required"`
	ItemID       string          `json:"item_id" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	CreatedBy    string          `json:"created_by"`
	FromLocation *string         `json:"from_location"`
	ToLocation   *string         `json:"to_location"`
	LotID        *string         `json:"lot_id"`
	SupplierID   *string         `json:"supplier_id"`
	Notes        string          `json:"notes"`
}

// UpdateTransactionRequest entrada para editar un draft.
type UpdateTransactionRequest struct {
	Quantity     *decimal.Decimal `json:"quantity"`
	FromLocation *string          `json:"from_location"`
	ToLocation   *string          `json:"to_location"`
	LotID        *string          `json:"lot_id"`
	SupplierID   *string          `json:"supplier_id"`
	Notes        *string          `json:"notes"`
}

// ValidateTransactionRequest entrada para validar un draft.
// ValidatedBy opcional: si va vacío se toma del token.
type ValidateTransactionRequest struct {
	ValidatedBy string `json:"validated_by"`
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID           string          `json:"id"`
	ItemID       string          `json:"item_id"`
	LotID        *string         `json:"lot_id,omitempty"`
	FromLocation *string         `json:"from_location,omitempty"`
	ToLocation   *string         `json:"to_location,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	Notes        string          `json:"notes"`
	CreatedBy    string          `json:"created_by"`
	ValidatedBy  *string         `json:"validated_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	ValidatedAt  *time.Time      `json:"validated_at,omitempty"`
}

// TransactionListResponse lista paginada de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

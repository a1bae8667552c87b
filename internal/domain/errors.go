package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Máquina de estados de transacciones: draft -> validated | cancelled, sin más transiciones.
	ErrInvalidStateTransition = errors.New("transición de estado inválida")
	ErrImmutableTransaction   = errors.New("la transacción ya no es editable")

	// Campos inmutables del lote (initial_quantity, item_id).
	ErrImmutableField     = errors.New("campo inmutable")
	ErrDuplicateLotNumber = errors.New("número de lote duplicado")
	ErrLotInUse           = errors.New("el lote tiene stock o transacciones asociadas")

	// ErrNegativeStock nunca debe llegar al caller: si aparece es un defecto del
	// motor (la verificación de suficiencia falló) y aborta la unidad de commit.
	ErrNegativeStock = errors.New("stock negativo: invariante violado")
)

package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crisvega-dev/imprenta-stock/internal/application/lots"
	"github.com/crisvega-dev/imprenta-stock/internal/domain"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/entity"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/repository"
)

// Engine es el motor de transacciones de stock: máquina de estados
// draft -> validated | cancelled, con aplicación atómica de deltas.
//
// En draft el stock no se toca. La transición a validated re-ejecuta la
// verificación de suficiencia y aplica los deltas dentro de una sola
// transacción de BD con bloqueo de fila (SELECT FOR UPDATE) sobre los pares
// (lote, ubicación) afectados: de dos validates concurrentes que drenan el
// mismo par, el perdedor ve el efecto completo del ganador y o bien valida
// sobre los números actualizados o bien falla con stock insuficiente.
type Engine struct {
	txRunner  TxRunner
	txRepo    repository.TransactionRepository
	lotRepo   repository.LotRepository
	stockRepo repository.LotLocationRepository
	itemRepo  repository.ItemRepository
	locRepo   repository.LocationRepository
}

// NewEngine construye el motor.
func NewEngine(
	txRunner TxRunner,
	txRepo repository.TransactionRepository,
	lotRepo repository.LotRepository,
	stockRepo repository.LotLocationRepository,
	itemRepo repository.ItemRepository,
	locRepo repository.LocationRepository,
) *Engine {
	return &Engine{
		txRunner:  txRunner,
		txRepo:    txRepo,
		lotRepo:   lotRepo,
		stockRepo: stockRepo,
		itemRepo:  itemRepo,
		locRepo:   locRepo,
	}
}

// CreateInput entrada para proponer un movimiento. Los punteros nil significan
// "no aplica" según el tipo de movimiento.
type CreateInput struct {
	Type         string
	ItemID       string
	Quantity     decimal.Decimal
	CreatedBy    string
	FromLocation *string
	ToLocation   *string
	LotID        *string
	SupplierID   *string
	Notes        string
}

// UpdateInput campos editables de un draft.
type UpdateInput struct {
	Quantity     *decimal.Decimal
	FromLocation *string
	ToLocation   *string
	LotID        *string
	SupplierID   *string
	Notes        *string
}

// Create valida la estructura del movimiento, ejecuta una verificación de
// suficiencia NO vinculante (otra transacción puede consumir el stock antes
// del validate) y persiste la transacción en draft. No reserva stock.
func (e *Engine) Create(ctx context.Context, in CreateInput) (*entity.Transaction, error) {
	if in.CreatedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	trx := &entity.Transaction{
		ID:           uuid.New().String(),
		ItemID:       in.ItemID,
		LotID:        in.LotID,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		Quantity:     in.Quantity,
		Type:         in.Type,
		Status:       entity.TransactionStatusDraft,
		SupplierID:   in.SupplierID,
		Notes:        in.Notes,
		CreatedBy:    in.CreatedBy,
		CreatedAt:    now,
	}
	if err := validateStructure(trx); err != nil {
		return nil, err
	}
	if err := e.checkReferences(trx); err != nil {
		return nil, err
	}
	if err := e.precheck(trx); err != nil {
		return nil, err
	}
	if err := e.txRepo.Create(trx); err != nil {
		return nil, err
	}
	return trx, nil
}

// Update edita un draft y re-valida estructura y suficiencia (no vinculante).
// Falla con ErrImmutableTransaction si la transacción ya no está en draft.
func (e *Engine) Update(ctx context.Context, id string, in UpdateInput) (*entity.Transaction, error) {
	trx, err := e.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if trx == nil {
		return nil, domain.ErrNotFound
	}
	if trx.Status != entity.TransactionStatusDraft {
		return nil, domain.ErrImmutableTransaction
	}
	if in.Quantity != nil {
		trx.Quantity = *in.Quantity
	}
	if in.FromLocation != nil {
		trx.FromLocation = nilIfEmpty(in.FromLocation)
	}
	if in.ToLocation != nil {
		trx.ToLocation = nilIfEmpty(in.ToLocation)
	}
	if in.LotID != nil {
		trx.LotID = nilIfEmpty(in.LotID)
	}
	if in.SupplierID != nil {
		trx.SupplierID = nilIfEmpty(in.SupplierID)
	}
	if in.Notes != nil {
		trx.Notes = *in.Notes
	}
	if err := validateStructure(trx); err != nil {
		return nil, err
	}
	if err := e.checkReferences(trx); err != nil {
		return nil, err
	}
	if err := e.precheck(trx); err != nil {
		return nil, err
	}
	if err := e.txRepo.Update(trx); err != nil {
		return nil, err
	}
	return trx, nil
}

// Validate confirma un draft: única operación que muta la distribución.
// Dentro de una transacción de BD bloquea la fila de la transacción, re-ejecuta
// la verificación de suficiencia (la del create puede estar desactualizada),
// aplica los deltas, recalcula el estado de los lotes tocados y marca la
// transacción como validated. Si falla, el draft queda intacto y ningún delta
// parcial es visible.
func (e *Engine) Validate(ctx context.Context, id, validatedBy string) (*entity.Transaction, error) {
	if validatedBy == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Transaction
	err := e.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		lotRepo repository.LotRepository,
		stockRepo repository.LotLocationRepository,
	) error {
		trx, err := txRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if trx == nil {
			return domain.ErrNotFound
		}
		if trx.Status != entity.TransactionStatusDraft {
			return domain.ErrInvalidStateTransition
		}
		now := time.Now()
		touched, err := apply(trx, lotRepo, stockRepo, now)
		if err != nil {
			return err
		}
		for _, lotID := range touched {
			if err := lots.RecomputeStatus(lotRepo, stockRepo, lotID); err != nil {
				return err
			}
		}
		trx.Status = entity.TransactionStatusValidated
		trx.ValidatedBy = &validatedBy
		trx.ValidatedAt = &now
		if err := txRepo.Update(trx); err != nil {
			return err
		}
		out = trx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel pasa un draft a cancelled. Sin efecto sobre stock: en draft nunca se
// tocó. Desde cualquier otro estado falla con ErrInvalidStateTransition.
func (e *Engine) Cancel(ctx context.Context, id string) (*entity.Transaction, error) {
	var out *entity.Transaction
	err := e.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		_ repository.LotRepository,
		_ repository.LotLocationRepository,
	) error {
		trx, err := txRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if trx == nil {
			return domain.ErrNotFound
		}
		if trx.Status != entity.TransactionStatusDraft {
			return domain.ErrInvalidStateTransition
		}
		trx.Status = entity.TransactionStatusCancelled
		if err := txRepo.Update(trx); err != nil {
			return err
		}
		out = trx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un draft. Las transacciones validated y cancelled son
// asientos permanentes del ledger: borrarlas falla con ErrImmutableTransaction.
func (e *Engine) Delete(ctx context.Context, id string) error {
	return e.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		_ repository.LotRepository,
		_ repository.LotLocationRepository,
	) error {
		trx, err := txRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if trx == nil {
			return domain.ErrNotFound
		}
		if trx.Status != entity.TransactionStatusDraft {
			return domain.ErrImmutableTransaction
		}
		return txRepo.Delete(id)
	})
}

// GetByID obtiene una transacción.
func (e *Engine) GetByID(id string) (*entity.Transaction, error) {
	return e.txRepo.GetByID(id)
}

// List lista transacciones con filtros.
func (e *Engine) List(filter repository.TransactionFilter, limit, offset int) ([]*entity.Transaction, error) {
	return e.txRepo.List(filter, limit, offset)
}

// validateStructure verifica los campos requeridos por tipo.
func validateStructure(trx *entity.Transaction) error {
	if !entity.ValidTransactionType(trx.Type) {
		return fmt.Errorf("%w: tipo %q no soportado", domain.ErrInvalidInput, trx.Type)
	}
	if !trx.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: quantity debe ser > 0", domain.ErrInvalidInput)
	}
	if trx.ItemID == "" {
		return fmt.Errorf("%w: item_id requerido", domain.ErrInvalidInput)
	}
	switch trx.Type {
	case entity.TransactionTypeIN:
		if trx.ToLocation == nil || trx.FromLocation != nil {
			return fmt.Errorf("%w: IN requiere to_location y ninguna from_location", domain.ErrInvalidInput)
		}
	case entity.TransactionTypeOUT:
		if trx.FromLocation == nil || trx.LotID == nil || trx.ToLocation != nil {
			return fmt.Errorf("%w: OUT requiere from_location y lot_id", domain.ErrInvalidInput)
		}
	case entity.TransactionTypeTRANSFER:
		if trx.FromLocation == nil || trx.ToLocation == nil || trx.LotID == nil {
			return fmt.Errorf("%w: TRANSFER requiere from_location, to_location y lot_id", domain.ErrInvalidInput)
		}
		if *trx.FromLocation == *trx.ToLocation {
			return fmt.Errorf("%w: TRANSFER requiere ubicaciones distintas", domain.ErrInvalidInput)
		}
	case entity.TransactionTypeADJUSTMENT:
		if trx.LotID == nil {
			return fmt.Errorf("%w: ADJUSTMENT requiere lot_id", domain.ErrInvalidInput)
		}
		if (trx.FromLocation == nil) == (trx.ToLocation == nil) {
			return fmt.Errorf("%w: ADJUSTMENT requiere exactamente una ubicación", domain.ErrInvalidInput)
		}
	}
	return nil
}

// checkReferences verifica que artículo, ubicaciones y lote existan y que el
// lote pertenezca al artículo indicado.
func (e *Engine) checkReferences(trx *entity.Transaction) error {
	item, err := e.itemRepo.GetByID(trx.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("%w: artículo %s", domain.ErrNotFound, trx.ItemID)
	}
	for _, locID := range []*string{trx.FromLocation, trx.ToLocation} {
		if locID == nil {
			continue
		}
		loc, err := e.locRepo.GetByID(*locID)
		if err != nil {
			return err
		}
		if loc == nil {
			return fmt.Errorf("%w: ubicación %s", domain.ErrNotFound, *locID)
		}
	}
	if trx.LotID != nil {
		lot, err := e.lotRepo.GetByID(*trx.LotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return fmt.Errorf("%w: lote %s", domain.ErrNotFound, *trx.LotID)
		}
		if lot.ItemID != trx.ItemID {
			return fmt.Errorf("%w: el lote no pertenece al artículo", domain.ErrInvalidInput)
		}
	}
	return nil
}

// precheck verificación de suficiencia no vinculante en create/update: da
// feedback temprano al caller pero no reserva ni bloquea stock.
func (e *Engine) precheck(trx *entity.Transaction) error {
	if src := debitSource(trx); src != nil {
		row, err := e.stockRepo.Get(*trx.LotID, *src)
		if err != nil {
			return err
		}
		if row.Quantity.LessThan(trx.Quantity) {
			return shortfall(row.Quantity, trx.Quantity)
		}
	}
	if creditsExistingLot(trx) {
		lot, err := e.lotRepo.GetByID(*trx.LotID)
		if err != nil {
			return err
		}
		if lot == nil {
			return domain.ErrNotFound
		}
		total, err := e.stockRepo.SumByLot(*trx.LotID)
		if err != nil {
			return err
		}
		if err := checkCapacity(lot, total, trx.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// apply traduce el movimiento en uno o dos ApplyDelta dentro de la transacción
// de BD en curso. Retorna los lotes tocados para recalcular su estado.
func apply(
	trx *entity.Transaction,
	lotRepo repository.LotRepository,
	stockRepo repository.LotLocationRepository,
	now time.Time,
) ([]string, error) {
	switch trx.Type {
	case entity.TransactionTypeIN:
		if trx.LotID == nil {
			// Alta de lote implícita: el IN crea el lote con la cantidad
			// recibida como initial_quantity y el proveedor del movimiento.
			lot := &entity.Lot{
				ID:              uuid.New().String(),
				LotNumber:       lots.GenerateNumber(trx.ItemID, now),
				ItemID:          trx.ItemID,
				SupplierID:      trx.SupplierID,
				ReceivedDate:    now,
				InitialQuantity: trx.Quantity,
				Status:          entity.LotStatusActive,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := lotRepo.Create(lot); err != nil {
				return nil, err
			}
			trx.LotID = &lot.ID
		} else {
			if err := creditChecked(trx, lotRepo, stockRepo); err != nil {
				return nil, err
			}
		}
		if err := stockRepo.ApplyDelta(*trx.LotID, *trx.ToLocation, trx.Quantity); err != nil {
			return nil, err
		}
		return []string{*trx.LotID}, nil

	case entity.TransactionTypeOUT:
		if err := debit(trx, stockRepo, *trx.FromLocation); err != nil {
			return nil, err
		}
		return []string{*trx.LotID}, nil

	case entity.TransactionTypeTRANSFER:
		if err := debit(trx, stockRepo, *trx.FromLocation); err != nil {
			return nil, err
		}
		if err := stockRepo.ApplyDelta(*trx.LotID, *trx.ToLocation, trx.Quantity); err != nil {
			return nil, err
		}
		return []string{*trx.LotID}, nil

	case entity.TransactionTypeADJUSTMENT:
		if trx.FromLocation != nil {
			if err := debit(trx, stockRepo, *trx.FromLocation); err != nil {
				return nil, err
			}
		} else {
			if err := creditChecked(trx, lotRepo, stockRepo); err != nil {
				return nil, err
			}
			if err := stockRepo.ApplyDelta(*trx.LotID, *trx.ToLocation, trx.Quantity); err != nil {
				return nil, err
			}
		}
		return []string{*trx.LotID}, nil
	}
	return nil, domain.ErrInvalidInput
}

// debit bloquea la fila origen, verifica suficiencia (vinculante) y resta.
func debit(trx *entity.Transaction, stockRepo repository.LotLocationRepository, locationID string) error {
	row, err := stockRepo.GetForUpdate(*trx.LotID, locationID)
	if err != nil {
		return err
	}
	if row.Quantity.LessThan(trx.Quantity) {
		return shortfall(row.Quantity, trx.Quantity)
	}
	return stockRepo.ApplyDelta(*trx.LotID, locationID, trx.Quantity.Neg())
}

// creditChecked bloquea el lote y verifica que el incremento no supere la
// capacidad restante (initial_quantity - total distribuido).
func creditChecked(trx *entity.Transaction, lotRepo repository.LotRepository, stockRepo repository.LotLocationRepository) error {
	lot, err := lotRepo.GetForUpdate(*trx.LotID)
	if err != nil {
		return err
	}
	if lot == nil {
		return domain.ErrNotFound
	}
	total, err := stockRepo.SumByLot(*trx.LotID)
	if err != nil {
		return err
	}
	return checkCapacity(lot, total, trx.Quantity)
}

func checkCapacity(lot *entity.Lot, total, quantity decimal.Decimal) error {
	if total.Add(quantity).GreaterThan(lot.InitialQuantity) {
		return fmt.Errorf("%w: el lote %s solo admite %s unidades más",
			domain.ErrInvalidInput, lot.LotNumber, lot.InitialQuantity.Sub(total))
	}
	return nil
}

func shortfall(available, requested decimal.Decimal) error {
	return fmt.Errorf("%w: disponible %s, solicitado %s (faltan %s)",
		domain.ErrInsufficientStock, available, requested, requested.Sub(available))
}

// debitSource devuelve la ubicación que se debita, o nil si el movimiento no debita.
func debitSource(trx *entity.Transaction) *string {
	switch trx.Type {
	case entity.TransactionTypeOUT, entity.TransactionTypeTRANSFER:
		return trx.FromLocation
	case entity.TransactionTypeADJUSTMENT:
		return trx.FromLocation
	}
	return nil
}

// creditsExistingLot indica si el movimiento incrementa el total de un lote ya creado.
func creditsExistingLot(trx *entity.Transaction) bool {
	switch trx.Type {
	case entity.TransactionTypeIN:
		return trx.LotID != nil
	case entity.TransactionTypeADJUSTMENT:
		return trx.ToLocation != nil
	}
	return false
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

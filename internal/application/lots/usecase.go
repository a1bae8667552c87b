package lots

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crisvega-dev/imprenta-stock/internal/application/dto"
	"github.com/crisvega-dev/imprenta-stock/internal/domain"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/entity"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/repository"
)

// Registry casos de uso del registro de lotes: creación con número único,
// edición de campos no inmutables, borrado protegido y listados con distribución.
// Nunca escribe filas de lot_locations; eso es exclusivo del motor de transacciones.
type Registry struct {
	lotRepo   repository.LotRepository
	stockRepo repository.LotLocationRepository
	txRepo    repository.TransactionRepository
	itemRepo  repository.ItemRepository
}

// NewRegistry construye el registro de lotes.
func NewRegistry(
	lotRepo repository.LotRepository,
	stockRepo repository.LotLocationRepository,
	txRepo repository.TransactionRepository,
	itemRepo repository.ItemRepository,
) *Registry {
	return &Registry{lotRepo: lotRepo, stockRepo: stockRepo, txRepo: txRepo, itemRepo: itemRepo}
}

// Create crea un lote. Si in.LotNumber va vacío se genera uno único;
// si el número indicado ya existe retorna ErrDuplicateLotNumber.
// InitialQuantity debe ser >= 0 y es inmutable después.
func (r *Registry) Create(in dto.CreateLotRequest) (*dto.LotResponse, error) {
	if in.ItemID == "" || in.InitialQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item, err := r.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	number := in.LotNumber
	if number == "" {
		number = GenerateNumber(in.ItemID, now)
	}
	lot := &entity.Lot{
		ID:                uuid.New().String(),
		LotNumber:         number,
		ItemID:            in.ItemID,
		SupplierID:        in.SupplierID,
		ManufacturingDate: in.ManufacturingDate,
		ExpirationDate:    in.ExpirationDate,
		ReceivedDate:      now,
		InitialQuantity:   in.InitialQuantity,
		Status:            entity.LotStatusActive,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := r.lotRepo.Create(lot); err != nil {
		return nil, err
	}
	return r.toResponse(lot)
}

// GetByID obtiene un lote con su distribución por ubicación.
func (r *Registry) GetByID(id string) (*dto.LotResponse, error) {
	lot, err := r.lotRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, nil
	}
	return r.toResponse(lot)
}

// Update edita campos no inmutables (fechas, notas, estado, proveedor).
// Intentar cambiar InitialQuantity o ItemID falla con ErrImmutableField.
// El paso a expired/recalled es siempre una acción administrativa explícita
// que entra por aquí; el motor solo asigna depleted.
func (r *Registry) Update(id string, in dto.UpdateLotRequest) (*dto.LotResponse, error) {
	if in.InitialQuantity != nil || in.ItemID != nil {
		return nil, domain.ErrImmutableField
	}
	lot, err := r.lotRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, nil
	}
	if in.LotNumber != nil && *in.LotNumber != lot.LotNumber {
		if *in.LotNumber == "" {
			return nil, domain.ErrInvalidInput
		}
		lot.LotNumber = *in.LotNumber
	}
	if in.SupplierID != nil {
		lot.SupplierID = in.SupplierID
	}
	if in.ManufacturingDate != nil {
		lot.ManufacturingDate = in.ManufacturingDate
	}
	if in.ExpirationDate != nil {
		lot.ExpirationDate = in.ExpirationDate
	}
	if in.Status != nil {
		if !entity.ValidLotStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		lot.Status = *in.Status
	}
	if in.Notes != nil {
		lot.Notes = *in.Notes
	}
	lot.UpdatedAt = time.Now()
	if err := r.lotRepo.Update(lot); err != nil {
		return nil, err
	}
	return r.toResponse(lot)
}

// Delete elimina un lote. Falla con ErrLotInUse si alguna transacción lo
// referencia o si conserva stock en alguna ubicación.
func (r *Registry) Delete(id string) error {
	lot, err := r.lotRepo.GetByID(id)
	if err != nil {
		return err
	}
	if lot == nil {
		return domain.ErrNotFound
	}
	referenced, err := r.txRepo.ExistsByLot(id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrLotInUse
	}
	stocked, err := r.stockRepo.HasStock(id)
	if err != nil {
		return err
	}
	if stocked {
		return domain.ErrLotInUse
	}
	return r.lotRepo.Delete(id)
}

// List lista lotes con filtros y su distribución embebida.
func (r *Registry) List(filter repository.LotFilter, limit, offset int) (*dto.LotListResponse, error) {
	list, err := r.lotRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LotResponse, 0, len(list))
	for _, lot := range list {
		resp, err := r.toResponse(lot)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.LotListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// RecomputeStatus recalcula el estado del lote tras una mutación de stock:
// si el total distribuido llegó a 0, un lote activo pasa a depleted.
// Nunca reactiva: un depleted queda depleted salvo reset administrativo.
func RecomputeStatus(
	lotRepo repository.LotRepository,
	stockRepo repository.LotLocationRepository,
	lotID string,
) error {
	total, err := stockRepo.SumByLot(lotID)
	if err != nil {
		return err
	}
	if !total.IsZero() {
		return nil
	}
	lot, err := lotRepo.GetByID(lotID)
	if err != nil {
		return err
	}
	if lot == nil {
		return domain.ErrNotFound
	}
	if lot.Status != entity.LotStatusActive {
		return nil
	}
	return lotRepo.UpdateStatus(lotID, entity.LotStatusDepleted)
}

func (r *Registry) toResponse(lot *entity.Lot) (*dto.LotResponse, error) {
	rows, err := r.stockRepo.ListByLot(lot.ID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	locations := make([]dto.LotLocationRow, 0, len(rows))
	for _, row := range rows {
		total = total.Add(row.Quantity)
		locations = append(locations, dto.LotLocationRow{
			LocationID:      row.LocationID,
			Quantity:        row.Quantity,
			MinimumQuantity: row.MinimumQuantity,
		})
	}
	return &dto.LotResponse{
		ID:                lot.ID,
		LotNumber:         lot.LotNumber,
		ItemID:            lot.ItemID,
		SupplierID:        lot.SupplierID,
		ManufacturingDate: lot.ManufacturingDate,
		ExpirationDate:    lot.ExpirationDate,
		ReceivedDate:      lot.ReceivedDate,
		InitialQuantity:   lot.InitialQuantity,
		Status:            lot.Status,
		Notes:             lot.Notes,
		TotalQuantity:     total,
		Locations:         locations,
		CreatedAt:         lot.CreatedAt,
		UpdatedAt:         lot.UpdatedAt,
	}, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/crisvega-dev/imprenta-stock/internal/domain"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/entity"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/repository"
)

var _ repository.LotLocationRepository = (*LotLocationRepo)(nil)

// LotLocationRepo implementación de LotLocationRepository sobre PostgreSQL
// (usable con pool o tx). Toda escritura de quantity pasa por ApplyDelta.
type LotLocationRepo struct {
	q Querier
}

// NewLotLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotLocationRepository(q Querier) *LotLocationRepo {
	return &LotLocationRepo{q: q}
}

// Get obtiene la fila del par; si no existe, una fila con quantity 0.
func (r *LotLocationRepo) Get(lotID, locationID string) (*entity.LotLocation, error) {
	return r.getOne(`
		SELECT lot_id, location_id, quantity, minimum_quantity, updated_at
		FROM lot_locations WHERE lot_id = $1 AND location_id = $2`, lotID, locationID)
}

// GetForUpdate igual que Get pero bloqueando la fila (SELECT FOR UPDATE):
// el motor lo usa para que dos validates sobre el mismo par se serialicen.
func (r *LotLocationRepo) GetForUpdate(lotID, locationID string) (*entity.LotLocation, error) {
	return r.getOne(`
		SELECT lot_id, location_id, quantity, minimum_quantity, updated_at
		FROM lot_locations WHERE lot_id = $1 AND location_id = $2
		FOR UPDATE`, lotID, locationID)
}

func (r *LotLocationRepo) getOne(query, lotID, locationID string) (*entity.LotLocation, error) {
	var ll entity.LotLocation
	err := r.q.QueryRow(context.Background(), query, lotID, locationID).Scan(
		&ll.LotID, &ll.LocationID, &ll.Quantity, &ll.MinimumQuantity, &ll.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.LotLocation{
				LotID:           lotID,
				LocationID:      locationID,
				Quantity:        decimal.Zero,
				MinimumQuantity: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get lot location: %w", err)
	}
	return &ll, nil
}

// ApplyDelta suma delta a la fila del par, creándola si no existe. El CHECK
// quantity >= 0 de la tabla y la verificación del RETURNING son la última
// barrera del invariante: un resultado negativo retorna ErrNegativeStock y
// el TxRunner descarta la unidad completa.
func (r *LotLocationRepo) ApplyDelta(lotID, locationID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO lot_locations (lot_id, location_id, quantity, minimum_quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (lot_id, location_id)
		DO UPDATE SET quantity = lot_locations.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var result decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, lotID, locationID, delta).Scan(&result)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrNegativeStock
		}
		return fmt.Errorf("apply delta: %w", err)
	}
	if result.IsNegative() {
		return domain.ErrNegativeStock
	}
	return nil
}

// SetMinimum fija el umbral informativo de reposición sin tocar quantity.
func (r *LotLocationRepo) SetMinimum(lotID, locationID string, minimum decimal.Decimal) error {
	if minimum.IsNegative() {
		return domain.ErrInvalidInput
	}
	query := `
		INSERT INTO lot_locations (lot_id, location_id, quantity, minimum_quantity, updated_at)
		VALUES ($1, $2, 0, $3, now())
		ON CONFLICT (lot_id, location_id)
		DO UPDATE SET minimum_quantity = EXCLUDED.minimum_quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, lotID, locationID, minimum)
	if err != nil {
		return fmt.Errorf("set minimum: %w", err)
	}
	return nil
}

// ListByLot filas de distribución de un lote.
func (r *LotLocationRepo) ListByLot(lotID string) ([]*entity.LotLocation, error) {
	return r.list(`
		SELECT lot_id, location_id, quantity, minimum_quantity, updated_at
		FROM lot_locations WHERE lot_id = $1 ORDER BY location_id`, lotID)
}

// ListByLocation filas de distribución presentes en una ubicación.
func (r *LotLocationRepo) ListByLocation(locationID string) ([]*entity.LotLocation, error) {
	return r.list(`
		SELECT lot_id, location_id, quantity, minimum_quantity, updated_at
		FROM lot_locations WHERE location_id = $1 ORDER BY lot_id`, locationID)
}

// ListBelowMinimum filas en o bajo su umbral de reposición (umbral > 0).
func (r *LotLocationRepo) ListBelowMinimum(locationID string) ([]*entity.LotLocation, error) {
	query := `
		SELECT lot_id, location_id, quantity, minimum_quantity, updated_at
		FROM lot_locations
		WHERE minimum_quantity > 0 AND quantity <= minimum_quantity`
	args := []any{}
	if locationID != "" {
		query += ` AND location_id = $1`
		args = append(args, locationID)
	}
	query += ` ORDER BY quantity - minimum_quantity`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list below minimum: %w", err)
	}
	defer rows.Close()
	return scanLotLocations(rows)
}

func (r *LotLocationRepo) list(query string, arg any) ([]*entity.LotLocation, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list lot locations: %w", err)
	}
	defer rows.Close()
	return scanLotLocations(rows)
}

func scanLotLocations(rows pgx.Rows) ([]*entity.LotLocation, error) {
	var list []*entity.LotLocation
	for rows.Next() {
		var ll entity.LotLocation
		if err := rows.Scan(&ll.LotID, &ll.LocationID, &ll.Quantity, &ll.MinimumQuantity, &ll.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lot location: %w", err)
		}
		list = append(list, &ll)
	}
	return list, rows.Err()
}

// ListAvailableLots lotes de un artículo con quantity > 0 en la ubicación.
func (r *LotLocationRepo) ListAvailableLots(itemID, locationID string) ([]*entity.Lot, error) {
	query := `
		SELECT l.id, l.lot_number, l.item_id, l.supplier_id, l.manufacturing_date,
			l.expiration_date, l.received_date, l.initial_quantity, l.status, l.notes,
			l.created_at, l.updated_at
		FROM lots l
		JOIN lot_locations ll ON ll.lot_id = l.id
		WHERE l.item_id = $1 AND ll.location_id = $2 AND ll.quantity > 0
		ORDER BY l.received_date`
	rows, err := r.q.Query(context.Background(), query, itemID, locationID)
	if err != nil {
		return nil, fmt.Errorf("list available lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.LotNumber, &l.ItemID, &l.SupplierID, &l.ManufacturingDate,
			&l.ExpirationDate, &l.ReceivedDate, &l.InitialQuantity, &l.Status,
			&l.Notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan available lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// SumByLot total distribuido de un lote entre todas las ubicaciones.
func (r *LotLocationRepo) SumByLot(lotID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM lot_locations WHERE lot_id = $1`, lotID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum by lot: %w", err)
	}
	return total, nil
}

// SumByItem total de un artículo sumando todos sus lotes y ubicaciones.
func (r *LotLocationRepo) SumByItem(itemID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(ll.quantity), 0)
		FROM lot_locations ll
		JOIN lots l ON l.id = ll.lot_id
		WHERE l.item_id = $1`, itemID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum by item: %w", err)
	}
	return total, nil
}

// HasStock indica si el lote conserva stock en alguna ubicación.
func (r *LotLocationRepo) HasStock(lotID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM lot_locations WHERE lot_id = $1 AND quantity > 0)`, lotID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has stock: %w", err)
	}
	return exists, nil
}

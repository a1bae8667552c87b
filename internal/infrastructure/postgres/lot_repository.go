package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crisvega-dev/imprenta-stock/internal/domain"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/entity"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = `id, lot_number, item_id, supplier_id, manufacturing_date,
	expiration_date, received_date, initial_quantity, status, notes, created_at, updated_at`

// Create persiste un lote. Retorna ErrDuplicateLotNumber si el número ya existe.
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.LotNumber, lot.ItemID, lot.SupplierID, lot.ManufacturingDate,
		lot.ExpirationDate, lot.ReceivedDate, lot.InitialQuantity, lot.Status,
		lot.Notes, lot.CreatedAt, lot.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateLotNumber
		}
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	return r.getOne(`SELECT `+lotColumns+` FROM lots WHERE id = $1`, id)
}

// GetForUpdate obtiene un lote bloqueando su fila (SELECT FOR UPDATE):
// serializa las verificaciones de capacidad contra initial_quantity.
func (r *LotRepo) GetForUpdate(id string) (*entity.Lot, error) {
	return r.getOne(`SELECT `+lotColumns+` FROM lots WHERE id = $1 FOR UPDATE`, id)
}

// GetByNumber obtiene un lote por su número único.
func (r *LotRepo) GetByNumber(lotNumber string) (*entity.Lot, error) {
	return r.getOne(`SELECT `+lotColumns+` FROM lots WHERE lot_number = $1`, lotNumber)
}

func (r *LotRepo) getOne(query string, arg any) (*entity.Lot, error) {
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &l.LotNumber, &l.ItemID, &l.SupplierID, &l.ManufacturingDate,
		&l.ExpirationDate, &l.ReceivedDate, &l.InitialQuantity, &l.Status,
		&l.Notes, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// List lista lotes con filtros opcionales. El filtro LocationID restringe a
// lotes con presencia (quantity > 0) en esa ubicación.
func (r *LotRepo) List(filter repository.LotFilter, limit, offset int) ([]*entity.Lot, error) {
	query := `SELECT ` + lotColumns + ` FROM lots WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(` AND id IN (
			SELECT lot_id FROM lot_locations WHERE location_id = $%d AND quantity > 0)`, pos)
		args = append(args, filter.LocationID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY received_date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.LotNumber, &l.ItemID, &l.SupplierID, &l.ManufacturingDate,
			&l.ExpirationDate, &l.ReceivedDate, &l.InitialQuantity, &l.Status,
			&l.Notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update actualiza los campos mutables del lote. initial_quantity e item_id
// no aparecen en el SET: la capa de aplicación los rechaza y la query ni los toca.
func (r *LotRepo) Update(lot *entity.Lot) error {
	query := `
		UPDATE lots SET lot_number = $2, supplier_id = $3, manufacturing_date = $4,
			expiration_date = $5, status = $6, notes = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.LotNumber, lot.SupplierID, lot.ManufacturingDate,
		lot.ExpirationDate, lot.Status, lot.Notes, lot.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateLotNumber
		}
		return fmt.Errorf("update lot: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado del lote.
func (r *LotRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE lots SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update lot status: %w", err)
	}
	return nil
}

// Delete elimina un lote.
func (r *LotRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM lots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lot: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crisvega-dev/imprenta-stock/internal/domain/entity"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, item_id, lot_id, from_location, to_location, quantity,
	type, status, supplier_id, notes, created_by, validated_by, created_at, validated_at`

// Create persiste una transacción (normalmente en draft).
func (r *TransactionRepo) Create(trx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		trx.ID, trx.ItemID, trx.LotID, trx.FromLocation, trx.ToLocation, trx.Quantity,
		trx.Type, trx.Status, trx.SupplierID, trx.Notes, trx.CreatedBy,
		trx.ValidatedBy, trx.CreatedAt, trx.ValidatedAt)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	return r.getOne(`SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la transacción (SELECT FOR UPDATE):
// dos validates concurrentes del mismo draft se serializan aquí y el segundo
// encuentra el estado ya en validated.
func (r *TransactionRepo) GetForUpdate(id string) (*entity.Transaction, error) {
	return r.getOne(`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id)
}

func (r *TransactionRepo) getOne(query, id string) (*entity.Transaction, error) {
	var t entity.Transaction
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ItemID, &t.LotID, &t.FromLocation, &t.ToLocation, &t.Quantity,
		&t.Type, &t.Status, &t.SupplierID, &t.Notes, &t.CreatedBy,
		&t.ValidatedBy, &t.CreatedAt, &t.ValidatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// List lista transacciones con filtros opcionales.
func (r *TransactionRepo) List(filter repository.TransactionFilter, limit, offset int) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.LotID != "" {
		query += fmt.Sprintf(" AND lot_id = $%d", pos)
		args = append(args, filter.LotID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.ItemID, &t.LotID, &t.FromLocation, &t.ToLocation, &t.Quantity,
			&t.Type, &t.Status, &t.SupplierID, &t.Notes, &t.CreatedBy,
			&t.ValidatedBy, &t.CreatedAt, &t.ValidatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza una transacción (campos de draft o la transición de estado).
func (r *TransactionRepo) Update(trx *entity.Transaction) error {
	query := `
		UPDATE transactions SET item_id = $2, lot_id = $3, from_location = $4,
			to_location = $5, quantity = $6, type = $7, status = $8, supplier_id = $9,
			notes = $10, validated_by = $11, validated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		trx.ID, trx.ItemID, trx.LotID, trx.FromLocation, trx.ToLocation, trx.Quantity,
		trx.Type, trx.Status, trx.SupplierID, trx.Notes, trx.ValidatedBy, trx.ValidatedAt)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

// Delete elimina una transacción (el motor solo lo permite en draft).
func (r *TransactionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// ExistsByLot indica si alguna transacción referencia el lote.
func (r *TransactionRepo) ExistsByLot(lotID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE lot_id = $1)`, lotID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by lot: %w", err)
	}
	return exists, nil
}

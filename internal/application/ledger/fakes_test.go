package ledger_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crisvega-dev/imprenta-stock/internal/domain"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/entity"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/repository"
)

// memDB almacén en memoria compartido por los repos fake. El runner de
// transacciones toma el mutex y un snapshot antes de ejecutar el callback:
// si falla, restaura el snapshot, igual que un ROLLBACK.
type memDB struct {
	mu        sync.Mutex
	items     map[string]entity.Item
	locations map[string]entity.Location
	lots      map[string]entity.Lot
	stock     map[string]entity.LotLocation // clave lotID|locationID
	txs       map[string]entity.Transaction
}

func newMemDB() *memDB {
	return &memDB{
		items:     map[string]entity.Item{},
		locations: map[string]entity.Location{},
		lots:      map[string]entity.Lot{},
		stock:     map[string]entity.LotLocation{},
		txs:       map[string]entity.Transaction{},
	}
}

func stockKey(lotID, locationID string) string { return lotID + "|" + locationID }

func (db *memDB) snapshot() (map[string]entity.Lot, map[string]entity.LotLocation, map[string]entity.Transaction) {
	lots := make(map[string]entity.Lot, len(db.lots))
	for k, v := range db.lots {
		lots[k] = v
	}
	stock := make(map[string]entity.LotLocation, len(db.stock))
	for k, v := range db.stock {
		stock[k] = v
	}
	txs := make(map[string]entity.Transaction, len(db.txs))
	for k, v := range db.txs {
		txs[k] = v
	}
	return lots, stock, txs
}

// memTxRunner serializa los callbacks con el mutex del almacén y descarta
// todos los cambios si el callback falla.
type memTxRunner struct {
	db *memDB
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	txRepo repository.TransactionRepository,
	lotRepo repository.LotRepository,
	stockRepo repository.LotLocationRepository,
) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	lots, stock, txs := r.db.snapshot()
	err := fn(&memTxRepo{db: r.db}, &memLotRepo{db: r.db}, &memStockRepo{db: r.db})
	if err != nil {
		r.db.lots, r.db.stock, r.db.txs = lots, stock, txs
		return err
	}
	return nil
}

// ── Repos fake ───────────────────────────────────────────────────────────────

type memItemRepo struct{ db *memDB }

func (r *memItemRepo) Create(item *entity.Item) error {
	r.db.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	if it, ok := r.db.items[id]; ok {
		out := it
		return &out, nil
	}
	return nil, nil
}

func (r *memItemRepo) List(limit, offset int) ([]*entity.Item, error) { return nil, nil }
func (r *memItemRepo) Update(item *entity.Item) error                 { return nil }
func (r *memItemRepo) Delete(id string) error                         { return nil }

type memLocationRepo struct{ db *memDB }

func (r *memLocationRepo) Create(loc *entity.Location) error {
	r.db.locations[loc.ID] = *loc
	return nil
}

func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	if l, ok := r.db.locations[id]; ok {
		out := l
		return &out, nil
	}
	return nil, nil
}

func (r *memLocationRepo) List(locationType string, limit, offset int) ([]*entity.Location, error) {
	return nil, nil
}
func (r *memLocationRepo) Update(loc *entity.Location) error { return nil }
func (r *memLocationRepo) Delete(id string) error            { return nil }

type memLotRepo struct{ db *memDB }

func (r *memLotRepo) Create(lot *entity.Lot) error {
	for _, existing := range r.db.lots {
		if existing.LotNumber == lot.LotNumber {
			return domain.ErrDuplicateLotNumber
		}
	}
	r.db.lots[lot.ID] = *lot
	return nil
}

func (r *memLotRepo) GetByID(id string) (*entity.Lot, error) {
	if l, ok := r.db.lots[id]; ok {
		out := l
		return &out, nil
	}
	return nil, nil
}

func (r *memLotRepo) GetForUpdate(id string) (*entity.Lot, error) { return r.GetByID(id) }

func (r *memLotRepo) GetByNumber(lotNumber string) (*entity.Lot, error) {
	for _, l := range r.db.lots {
		if l.LotNumber == lotNumber {
			out := l
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memLotRepo) List(filter repository.LotFilter, limit, offset int) ([]*entity.Lot, error) {
	var list []*entity.Lot
	for _, l := range r.db.lots {
		if filter.ItemID != "" && l.ItemID != filter.ItemID {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.LocationID != "" {
			row, ok := r.db.stock[stockKey(l.ID, filter.LocationID)]
			if !ok || !row.Quantity.GreaterThan(decimal.Zero) {
				continue
			}
		}
		out := l
		list = append(list, &out)
	}
	return list, nil
}

func (r *memLotRepo) Update(lot *entity.Lot) error {
	r.db.lots[lot.ID] = *lot
	return nil
}

func (r *memLotRepo) UpdateStatus(id, status string) error {
	l, ok := r.db.lots[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.Status = status
	r.db.lots[id] = l
	return nil
}

func (r *memLotRepo) Delete(id string) error {
	delete(r.db.lots, id)
	return nil
}

type memStockRepo struct{ db *memDB }

func (r *memStockRepo) Get(lotID, locationID string) (*entity.LotLocation, error) {
	if row, ok := r.db.stock[stockKey(lotID, locationID)]; ok {
		out := row
		return &out, nil
	}
	return &entity.LotLocation{
		LotID:           lotID,
		LocationID:      locationID,
		Quantity:        decimal.Zero,
		MinimumQuantity: decimal.Zero,
	}, nil
}

func (r *memStockRepo) GetForUpdate(lotID, locationID string) (*entity.LotLocation, error) {
	return r.Get(lotID, locationID)
}

func (r *memStockRepo) ApplyDelta(lotID, locationID string, delta decimal.Decimal) error {
	key := stockKey(lotID, locationID)
	row, ok := r.db.stock[key]
	if !ok {
		row = entity.LotLocation{LotID: lotID, LocationID: locationID, Quantity: decimal.Zero, MinimumQuantity: decimal.Zero}
	}
	result := row.Quantity.Add(delta)
	if result.IsNegative() {
		return domain.ErrNegativeStock
	}
	row.Quantity = result
	row.UpdatedAt = time.Now()
	r.db.stock[key] = row
	return nil
}

func (r *memStockRepo) SetMinimum(lotID, locationID string, minimum decimal.Decimal) error {
	if minimum.IsNegative() {
		return domain.ErrInvalidInput
	}
	key := stockKey(lotID, locationID)
	row, ok := r.db.stock[key]
	if !ok {
		row = entity.LotLocation{LotID: lotID, LocationID: locationID, Quantity: decimal.Zero}
	}
	row.MinimumQuantity = minimum
	row.UpdatedAt = time.Now()
	r.db.stock[key] = row
	return nil
}

func (r *memStockRepo) ListByLot(lotID string) ([]*entity.LotLocation, error) {
	var list []*entity.LotLocation
	for key, row := range r.db.stock {
		if strings.HasPrefix(key, lotID+"|") {
			out := row
			list = append(list, &out)
		}
	}
	return list, nil
}

func (r *memStockRepo) ListByLocation(locationID string) ([]*entity.LotLocation, error) {
	var list []*entity.LotLocation
	for _, row := range r.db.stock {
		if row.LocationID == locationID {
			out := row
			list = append(list, &out)
		}
	}
	return list, nil
}

func (r *memStockRepo) ListAvailableLots(itemID, locationID string) ([]*entity.Lot, error) {
	var list []*entity.Lot
	for _, row := range r.db.stock {
		if row.LocationID != locationID || !row.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		lot, ok := r.db.lots[row.LotID]
		if !ok || lot.ItemID != itemID {
			continue
		}
		out := lot
		list = append(list, &out)
	}
	return list, nil
}

func (r *memStockRepo) ListBelowMinimum(locationID string) ([]*entity.LotLocation, error) {
	var list []*entity.LotLocation
	for _, row := range r.db.stock {
		if locationID != "" && row.LocationID != locationID {
			continue
		}
		if !row.MinimumQuantity.GreaterThan(decimal.Zero) {
			continue
		}
		if row.Quantity.LessThanOrEqual(row.MinimumQuantity) {
			out := row
			list = append(list, &out)
		}
	}
	return list, nil
}

func (r *memStockRepo) SumByLot(lotID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for key, row := range r.db.stock {
		if strings.HasPrefix(key, lotID+"|") {
			total = total.Add(row.Quantity)
		}
	}
	return total, nil
}

func (r *memStockRepo) SumByItem(itemID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, row := range r.db.stock {
		lot, ok := r.db.lots[row.LotID]
		if ok && lot.ItemID == itemID {
			total = total.Add(row.Quantity)
		}
	}
	return total, nil
}

func (r *memStockRepo) HasStock(lotID string) (bool, error) {
	for key, row := range r.db.stock {
		if strings.HasPrefix(key, lotID+"|") && row.Quantity.GreaterThan(decimal.Zero) {
			return true, nil
		}
	}
	return false, nil
}

type memTxRepo struct{ db *memDB }

func (r *memTxRepo) Create(trx *entity.Transaction) error {
	r.db.txs[trx.ID] = *trx
	return nil
}

func (r *memTxRepo) GetByID(id string) (*entity.Transaction, error) {
	if t, ok := r.db.txs[id]; ok {
		out := t
		return &out, nil
	}
	return nil, nil
}

func (r *memTxRepo) GetForUpdate(id string) (*entity.Transaction, error) { return r.GetByID(id) }

func (r *memTxRepo) List(filter repository.TransactionFilter, limit, offset int) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	for _, t := range r.db.txs {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.ItemID != "" && t.ItemID != filter.ItemID {
			continue
		}
		if filter.LotID != "" && (t.LotID == nil || *t.LotID != filter.LotID) {
			continue
		}
		out := t
		list = append(list, &out)
	}
	return list, nil
}

func (r *memTxRepo) Update(trx *entity.Transaction) error {
	r.db.txs[trx.ID] = *trx
	return nil
}

func (r *memTxRepo) Delete(id string) error {
	delete(r.db.txs, id)
	return nil
}

func (r *memTxRepo) ExistsByLot(lotID string) (bool, error) {
	for _, t := range r.db.txs {
		if t.LotID != nil && *t.LotID == lotID {
			return true, nil
		}
	}
	return false, nil
}

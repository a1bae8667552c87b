package lots_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisvega-dev/imprenta-stock/internal/application/dto"
	"github.com/crisvega-dev/imprenta-stock/internal/application/lots"
	"github.com/crisvega-dev/imprenta-stock/internal/domain"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/entity"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/repository"
)

const testItemID = "item-papel-bond"

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// ── Fakes mínimos ────────────────────────────────────────────────────────────

type fakeLotRepo struct {
	lots map[string]entity.Lot
}

func (r *fakeLotRepo) Create(lot *entity.Lot) error {
	for _, existing := range r.lots {
		if existing.LotNumber == lot.LotNumber {
			return domain.ErrDuplicateLotNumber
		}
	}
	r.lots[lot.ID] = *lot
	return nil
}

func (r *fakeLotRepo) GetByID(id string) (*entity.Lot, error) {
	if l, ok := r.lots[id]; ok {
		out := l
		return &out, nil
	}
	return nil, nil
}

func (r *fakeLotRepo) GetForUpdate(id string) (*entity.Lot, error) { return r.GetByID(id) }

func (r *fakeLotRepo) GetByNumber(lotNumber string) (*entity.Lot, error) {
	for _, l := range r.lots {
		if l.LotNumber == lotNumber {
			out := l
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeLotRepo) List(filter repository.LotFilter, limit, offset int) ([]*entity.Lot, error) {
	var list []*entity.Lot
	for _, l := range r.lots {
		if filter.ItemID != "" && l.ItemID != filter.ItemID {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		out := l
		list = append(list, &out)
	}
	return list, nil
}

func (r *fakeLotRepo) Update(lot *entity.Lot) error {
	r.lots[lot.ID] = *lot
	return nil
}

func (r *fakeLotRepo) UpdateStatus(id, status string) error {
	l, ok := r.lots[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.Status = status
	r.lots[id] = l
	return nil
}

func (r *fakeLotRepo) Delete(id string) error {
	delete(r.lots, id)
	return nil
}

type fakeStockRepo struct {
	repository.LotLocationRepository // métodos no usados entran en pánico

	totals map[string]decimal.Decimal
	rows   map[string][]*entity.LotLocation
}

func (r *fakeStockRepo) SumByLot(lotID string) (decimal.Decimal, error) {
	return r.totals[lotID], nil
}

func (r *fakeStockRepo) HasStock(lotID string) (bool, error) {
	return r.totals[lotID].GreaterThan(decimal.Zero), nil
}

func (r *fakeStockRepo) ListByLot(lotID string) ([]*entity.LotLocation, error) {
	return r.rows[lotID], nil
}

type fakeTxRepo struct {
	repository.TransactionRepository

	lotRefs map[string]bool
}

func (r *fakeTxRepo) ExistsByLot(lotID string) (bool, error) { return r.lotRefs[lotID], nil }

type fakeItemRepo struct {
	items map[string]entity.Item
}

func (r *fakeItemRepo) Create(item *entity.Item) error { return nil }

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	if it, ok := r.items[id]; ok {
		out := it
		return &out, nil
	}
	return nil, nil
}

func (r *fakeItemRepo) List(limit, offset int) ([]*entity.Item, error) { return nil, nil }
func (r *fakeItemRepo) Update(item *entity.Item) error                 { return nil }
func (r *fakeItemRepo) Delete(id string) error                         { return nil }

type testRig struct {
	registry *lots.Registry
	lotRepo  *fakeLotRepo
	stock    *fakeStockRepo
	txs      *fakeTxRepo
}

func newRig(t *testing.T) *testRig {
	t.Helper()
	lotRepo := &fakeLotRepo{lots: map[string]entity.Lot{}}
	stock := &fakeStockRepo{
		totals: map[string]decimal.Decimal{},
		rows:   map[string][]*entity.LotLocation{},
	}
	txs := &fakeTxRepo{lotRefs: map[string]bool{}}
	items := &fakeItemRepo{items: map[string]entity.Item{
		testItemID: {ID: testItemID, Name: "Papel bond 75g"},
	}}
	return &testRig{
		registry: lots.NewRegistry(lotRepo, stock, txs, items),
		lotRepo:  lotRepo,
		stock:    stock,
		txs:      txs,
	}
}

// ── Numeración ───────────────────────────────────────────────────────────────

func TestGenerateNumber_Formato(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	number := lots.GenerateNumber("a1b2c3d4-e5f6-7890-abcd-ef0123456789", at)

	parts := strings.Split(number, "-")
	require.Len(t, parts, 4)
	assert.Equal(t, "L", parts[0])
	assert.Equal(t, "20260314093000", parts[1])
	assert.Equal(t, "A1B2C3", parts[2], "token del artículo: 6 caracteres sin guiones, mayúsculas")
	assert.Len(t, parts[3], 4)
}

func TestGenerateNumber_NoRepite(t *testing.T) {
	at := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := lots.GenerateNumber(testItemID, at)
		assert.False(t, seen[n], "número repetido: %s", n)
		seen[n] = true
	}
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestCreate_GeneraNumeroSiVaVacio(t *testing.T) {
	rig := newRig(t)
	out, err := rig.registry.Create(dto.CreateLotRequest{
		ItemID: testItemID, InitialQuantity: dec(100),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.LotNumber, "L-"))
	assert.Equal(t, entity.LotStatusActive, out.Status)
	assert.True(t, out.TotalQuantity.IsZero(), "crear el lote no distribuye stock")
}

func TestCreate_NumeroDuplicado(t *testing.T) {
	rig := newRig(t)
	_, err := rig.registry.Create(dto.CreateLotRequest{
		ItemID: testItemID, LotNumber: "L-REP-001", InitialQuantity: dec(100),
	})
	require.NoError(t, err)

	_, err = rig.registry.Create(dto.CreateLotRequest{
		ItemID: testItemID, LotNumber: "L-REP-001", InitialQuantity: dec(50),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateLotNumber)
}

func TestCreate_Invalido(t *testing.T) {
	rig := newRig(t)

	_, err := rig.registry.Create(dto.CreateLotRequest{InitialQuantity: dec(10)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin artículo")

	_, err = rig.registry.Create(dto.CreateLotRequest{ItemID: testItemID, InitialQuantity: dec(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad inicial negativa")

	_, err = rig.registry.Create(dto.CreateLotRequest{ItemID: "item-fantasma", InitialQuantity: dec(10)})
	assert.ErrorIs(t, err, domain.ErrNotFound, "artículo inexistente")
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestUpdate_CamposInmutables(t *testing.T) {
	rig := newRig(t)
	out, err := rig.registry.Create(dto.CreateLotRequest{
		ItemID: testItemID, InitialQuantity: dec(100),
	})
	require.NoError(t, err)

	q := dec(200)
	_, err = rig.registry.Update(out.ID, dto.UpdateLotRequest{InitialQuantity: &q})
	assert.ErrorIs(t, err, domain.ErrImmutableField, "initial_quantity es inmutable")

	otherItem := "item-otro"
	_, err = rig.registry.Update(out.ID, dto.UpdateLotRequest{ItemID: &otherItem})
	assert.ErrorIs(t, err, domain.ErrImmutableField, "item_id es inmutable")
}

func TestUpdate_EstadoAdministrativo(t *testing.T) {
	rig := newRig(t)
	out, err := rig.registry.Create(dto.CreateLotRequest{
		ItemID: testItemID, InitialQuantity: dec(100),
	})
	require.NoError(t, err)

	recalled := entity.LotStatusRecalled
	updated, err := rig.registry.Update(out.ID, dto.UpdateLotRequest{Status: &recalled})
	require.NoError(t, err)
	assert.Equal(t, entity.LotStatusRecalled, updated.Status)

	bogus := "vendido"
	_, err = rig.registry.Update(out.ID, dto.UpdateLotRequest{Status: &bogus})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestDelete_LoteEnUso(t *testing.T) {
	rig := newRig(t)
	out, err := rig.registry.Create(dto.CreateLotRequest{
		ItemID: testItemID, InitialQuantity: dec(100),
	})
	require.NoError(t, err)

	rig.txs.lotRefs[out.ID] = true
	err = rig.registry.Delete(out.ID)
	assert.ErrorIs(t, err, domain.ErrLotInUse, "referenciado por transacciones")

	rig.txs.lotRefs[out.ID] = false
	rig.stock.totals[out.ID] = dec(5)
	err = rig.registry.Delete(out.ID)
	assert.ErrorIs(t, err, domain.ErrLotInUse, "conserva stock")

	rig.stock.totals[out.ID] = decimal.Zero
	require.NoError(t, rig.registry.Delete(out.ID))

	err = rig.registry.Delete(out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── RecomputeStatus ──────────────────────────────────────────────────────────

func TestRecomputeStatus(t *testing.T) {
	rig := newRig(t)
	out, err := rig.registry.Create(dto.CreateLotRequest{
		ItemID: testItemID, InitialQuantity: dec(100),
	})
	require.NoError(t, err)

	// Con total > 0 el estado no cambia.
	rig.stock.totals[out.ID] = dec(20)
	require.NoError(t, lots.RecomputeStatus(rig.lotRepo, rig.stock, out.ID))
	assert.Equal(t, entity.LotStatusActive, rig.lotRepo.lots[out.ID].Status)

	// Total en 0: un lote activo pasa a depleted.
	rig.stock.totals[out.ID] = decimal.Zero
	require.NoError(t, lots.RecomputeStatus(rig.lotRepo, rig.stock, out.ID))
	assert.Equal(t, entity.LotStatusDepleted, rig.lotRepo.lots[out.ID].Status)
}

func TestRecomputeStatus_NoPisaEstadosAdministrativos(t *testing.T) {
	rig := newRig(t)
	out, err := rig.registry.Create(dto.CreateLotRequest{
		ItemID: testItemID, InitialQuantity: dec(100),
	})
	require.NoError(t, err)

	recalled := entity.LotStatusRecalled
	_, err = rig.registry.Update(out.ID, dto.UpdateLotRequest{Status: &recalled})
	require.NoError(t, err)

	rig.stock.totals[out.ID] = decimal.Zero
	require.NoError(t, lots.RecomputeStatus(rig.lotRepo, rig.stock, out.ID))
	assert.Equal(t, entity.LotStatusRecalled, rig.lotRepo.lots[out.ID].Status,
		"recalled no debe pasar a depleted")
}

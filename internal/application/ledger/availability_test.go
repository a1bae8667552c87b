package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisvega-dev/imprenta-stock/internal/application/ledger"
	"github.com/crisvega-dev/imprenta-stock/internal/domain"
	"github.com/crisvega-dev/imprenta-stock/internal/domain/entity"
)

func newTestAvailability(t *testing.T) (*ledger.Availability, *memDB) {
	t.Helper()
	db := newMemDB()
	db.items[testItemID] = entity.Item{ID: testItemID, Name: "Papel couché 150g"}
	return ledger.NewAvailability(&memStockRepo{db: db}), db
}

func TestQuantityAt_SinFilaEsCero(t *testing.T) {
	availability, _ := newTestAvailability(t)
	qty, err := availability.QuantityAt("lote-x", "loc-x")
	require.NoError(t, err)
	assert.True(t, qty.IsZero(), "par sin fila debe responder 0, no error")
}

func TestQuantityAt_ConStock(t *testing.T) {
	availability, db := newTestAvailability(t)
	seedLot(db, "lote-1", 100, 35)

	qty, err := availability.QuantityAt("lote-1", testLocDepot)
	require.NoError(t, err)
	assert.True(t, dec(35).Equal(qty))
}

func TestLotsFor_SoloConStockPositivo(t *testing.T) {
	availability, db := newTestAvailability(t)
	seedLot(db, "lote-1", 100, 35)
	seedLot(db, "lote-2", 50, 0) // presente pero drenado

	lots, err := availability.LotsFor(testItemID, testLocDepot)
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "lote-1", lots[0].ID)
}

func TestTotalForItem_SumaLotesYUbicaciones(t *testing.T) {
	availability, db := newTestAvailability(t)
	seedLot(db, "lote-1", 100, 35)
	seedLot(db, "lote-2", 50, 10)
	db.stock[stockKey("lote-1", testLocTaller)] = entity.LotLocation{
		LotID: "lote-1", LocationID: testLocTaller, Quantity: dec(5),
	}

	total, err := availability.TotalForItem(testItemID)
	require.NoError(t, err)
	assert.True(t, dec(50).Equal(total))
}

func TestReorder_UmbralYShortfall(t *testing.T) {
	availability, db := newTestAvailability(t)
	seedLot(db, "lote-1", 100, 3)
	seedLot(db, "lote-2", 100, 80)

	require.NoError(t, availability.SetMinimum("lote-1", testLocDepot, dec(10)))
	require.NoError(t, availability.SetMinimum("lote-2", testLocDepot, dec(10)))

	rows, err := availability.ReorderList(testLocDepot)
	require.NoError(t, err)
	require.Len(t, rows, 1, "solo lote-1 está bajo su umbral")
	assert.Equal(t, "lote-1", rows[0].LotID)
	assert.True(t, dec(7).Equal(rows[0].Shortfall))
}

func TestSetMinimum_NoTocaStock(t *testing.T) {
	availability, db := newTestAvailability(t)
	seedLot(db, "lote-1", 100, 35)

	require.NoError(t, availability.SetMinimum("lote-1", testLocDepot, dec(10)))
	row := db.stock[stockKey("lote-1", testLocDepot)]
	assert.True(t, dec(35).Equal(row.Quantity))
	assert.True(t, dec(10).Equal(row.MinimumQuantity))
	assert.True(t, row.UpdatedAt.Before(time.Now().Add(time.Second)))
}

func TestSetMinimum_NegativoRechazado(t *testing.T) {
	availability, _ := newTestAvailability(t)
	err := availability.SetMinimum("lote-1", testLocDepot, dec(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

package fleet

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/config"
	"busline.mx/erp/internal/features/finance"
)

var now = time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	cfg := &config.Config{BusDefaultCapacity: 24, BusPriceVolvo: "2500000.00", BusPriceDefault: "2000000.00"}
	svc := NewService(mock, NewRepository(mock), finance.NewRepository(mock, time.UTC), cfg)
	svc.now = func() time.Time { return now }
	return svc, mock
}

func TestBusPrice(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, int64(250000000), svc.BusPrice("Volvo"))
	assert.Equal(t, int64(250000000), svc.BusPrice(" volvo"))
	assert.Equal(t, int64(200000000), svc.BusPrice("Mercedes Benz"))
}

func TestAddBus_DebitsLedger(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT balance FROM ledger_entries").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(10000000000)))
	mock.ExpectQuery("INSERT INTO buses").
		WithArgs("Volvo", "9700", 2024, 24, "new", now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(4)))
	mock.ExpectQuery("INSERT INTO ledger_entries").
		WithArgs(pgxmock.AnyArg(), "Purchase of bus Volvo 9700", int64(0), int64(250000000), int64(9750000000)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectCommit()

	bus, entry, err := svc.AddBus(context.Background(), BusRequest{Brand: "Volvo", Model: "9700", Year: 2024, State: StateNew})
	require.NoError(t, err)
	assert.Equal(t, int64(4), bus.ID)
	assert.Equal(t, 24, bus.Capacity)
	assert.Equal(t, int64(9750000000), entry.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddBus_InsufficientFunds(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT balance FROM ledger_entries").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(100)))
	mock.ExpectRollback()

	_, _, err := svc.AddBus(context.Background(), BusRequest{Brand: "Irizar", Model: "i6", Year: 2023, Capacity: 40, State: StateUsed})
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddBus_InvalidState(t *testing.T) {
	svc, mock := newTestService(t)
	_, _, err := svc.AddBus(context.Background(), BusRequest{Brand: "Volvo", Model: "9700", Year: 2024, State: "shiny"})
	var verr *common.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

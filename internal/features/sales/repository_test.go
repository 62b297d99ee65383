package sales

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/features/finance"
)

var (
	travel = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	soldAt = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
)

func newMockRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewRepository(mock, finance.NewRepository(mock, time.UTC)), mock
}

func expectDeparture(mock pgxmock.PgxPoolIface, scheduleID int64, capacity int, price int64) {
	mock.ExpectQuery("FROM schedules s").WithArgs(scheduleID).
		WillReturnRows(pgxmock.NewRows([]string{"capacity", "price"}).AddRow(capacity, price))
}

func expectSeatFree(mock pgxmock.PgxPoolIface, scheduleID int64, seat int, taken bool) {
	mock.ExpectQuery("SELECT EXISTS").WithArgs(scheduleID, travel, seat).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(taken))
}

func booking(seats ...int) BookingRequest {
	return BookingRequest{FirstName: "Ana", LastName: "Li", ScheduleID: 3, TravelDate: travel, Seats: seats}
}

// 100,000,000.00 opening balance, two seats at 250.00: balance 100,000,500.00.
func TestCommit_SimpleSale(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	expectDeparture(mock, 3, 24, 25000)
	expectSeatFree(mock, 3, 5, false)
	expectSeatFree(mock, 3, 6, false)
	mock.ExpectQuery("INSERT INTO tickets").
		WithArgs(int64(3), travel, 5, "Ana", "Li", int64(25000), soldAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery("INSERT INTO tickets").
		WithArgs(int64(3), travel, 6, "Ana", "Li", int64(25000), soldAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT balance FROM ledger_entries").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(10000000000)))
	mock.ExpectQuery("INSERT INTO ledger_entries").
		WithArgs(pgxmock.AnyArg(), "Sale of 2 tickets to Ana Li", int64(50000), int64(0), int64(10000050000)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectCommit()

	receipt, err := repo.Commit(context.Background(), booking(5, 6), soldAt)
	require.NoError(t, err)
	assert.Len(t, receipt.Tickets, 2)
	assert.Equal(t, int64(11), receipt.Tickets[0].ID)
	assert.Equal(t, int64(50000), receipt.Total)
	assert.Equal(t, int64(10000050000), receipt.Entry.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Seat 7 is already sold: the booking of [6, 7] writes nothing.
func TestCommit_SeatConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	expectDeparture(mock, 3, 24, 25000)
	expectSeatFree(mock, 3, 6, false)
	expectSeatFree(mock, 3, 7, true)
	mock.ExpectRollback()

	_, err := repo.Commit(context.Background(), booking(6, 7), soldAt)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSeatTaken)
	var ste *common.SeatTakenError
	require.True(t, errors.As(err, &ste))
	assert.Equal(t, 7, ste.Seat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A concurrent sale slipping between the check and the insert hits the
// unique index and surfaces as the same seat conflict.
func TestCommit_UniqueViolationIsSeatConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	expectDeparture(mock, 3, 24, 25000)
	expectSeatFree(mock, 3, 9, false)
	mock.ExpectQuery("INSERT INTO tickets").
		WithArgs(int64(3), travel, 9, "Ana", "Li", int64(25000), soldAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.Commit(context.Background(), booking(9), soldAt)
	var ste *common.SeatTakenError
	require.True(t, errors.As(err, &ste))
	assert.Equal(t, 9, ste.Seat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommit_OutOfRangeBeforeAnyWrite(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	expectDeparture(mock, 3, 24, 25000)
	mock.ExpectRollback()

	_, err := repo.Commit(context.Background(), booking(30), soldAt)
	assert.ErrorIs(t, err, common.ErrSeatOutOfRange)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommit_UnknownSchedule(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM schedules s").WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"capacity", "price"}))
	mock.ExpectRollback()

	_, err := repo.Commit(context.Background(), booking(1), soldAt)
	assert.ErrorIs(t, err, common.ErrScheduleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommit_LedgerFailureRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	expectDeparture(mock, 3, 24, 25000)
	expectSeatFree(mock, 3, 1, false)
	mock.ExpectQuery("INSERT INTO tickets").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(20)))
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := repo.Commit(context.Background(), booking(1), soldAt)
	require.Error(t, err)
	assert.False(t, common.IsBusinessError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableSeats(t *testing.T) {
	repo, mock := newMockRepo(t)

	expectDeparture(mock, 3, 4, 25000)
	mock.ExpectQuery("SELECT seat_number FROM tickets").WithArgs(int64(3), travel).
		WillReturnRows(pgxmock.NewRows([]string{"seat_number"}).AddRow(2).AddRow(4))

	a, err := repo.AvailableSeats(context.Background(), 3, travel)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, a.Free)
	assert.Equal(t, []int{2, 4}, a.Occupied)
	assert.Equal(t, 4, a.Capacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two bookings on the same departure and date, one after the other: the
// seats sold by the first are occupied for the second, which is refused
// on its first overlapping seat without writing.
func TestCommit_SequentialBookingsNeverOverbook(t *testing.T) {
	repo, mock := newMockRepo(t)
	sold := map[int]bool{}

	mock.ExpectBegin()
	expectDeparture(mock, 3, 4, 25000)
	for _, seat := range []int{2, 3} {
		expectSeatFree(mock, 3, seat, sold[seat])
	}
	for i, seat := range []int{2, 3} {
		mock.ExpectQuery("INSERT INTO tickets").
			WithArgs(int64(3), travel, seat, "Ana", "Li", int64(25000), soldAt).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(20 + i)))
	}
	mock.ExpectExec("SELECT pg_advisory_xact_lock").WillReturnResult(pgxmock.NewResult("SELECT", 1))
	mock.ExpectQuery("SELECT balance FROM ledger_entries").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(10000000000)))
	mock.ExpectQuery("INSERT INTO ledger_entries").
		WithArgs(pgxmock.AnyArg(), "Sale of 2 tickets to Ana Li", int64(50000), int64(0), int64(10000050000)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectCommit()

	first, err := repo.Commit(context.Background(), booking(2, 3), soldAt)
	require.NoError(t, err)
	occupied := pgxmock.NewRows([]string{"seat_number"})
	for _, tk := range first.Tickets {
		sold[tk.SeatNumber] = true
		occupied.AddRow(tk.SeatNumber)
	}

	expectDeparture(mock, 3, 4, 25000)
	mock.ExpectQuery("SELECT seat_number FROM tickets").WithArgs(int64(3), travel).WillReturnRows(occupied)
	a, err := repo.AvailableSeats(context.Background(), 3, travel)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, a.Free)

	mock.ExpectBegin()
	expectDeparture(mock, 3, 4, 25000)
	expectSeatFree(mock, 3, 4, sold[4])
	expectSeatFree(mock, 3, 3, sold[3])
	mock.ExpectRollback()

	_, err = repo.Commit(context.Background(), booking(4, 3), soldAt)
	var ste *common.SeatTakenError
	require.True(t, errors.As(err, &ste))
	assert.Equal(t, 3, ste.Seat)
	assert.NoError(t, mock.ExpectationsWereMet())
}

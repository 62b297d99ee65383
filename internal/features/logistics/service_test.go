package logistics

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busline.mx/erp/internal/common"
)

func newTestService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewService(mock, NewRepository(mock)), mock
}

func TestAddRoute(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("INSERT INTO routes").
		WithArgs("Monterrey", "Saltillo", 85.5, "1h 20m", int64(35000)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))

	rt, err := svc.AddRoute(context.Background(), RouteRequest{
		Origin: " Monterrey ", Destination: "Saltillo", DistanceKm: 85.5, Duration: "1h 20m", Price: 35000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), rt.ID)
	assert.Equal(t, "Monterrey", rt.Origin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddRoute_RejectsNonPositive(t *testing.T) {
	svc, mock := newTestService(t)

	tests := []RouteRequest{
		{Origin: "A", Destination: "B", DistanceKm: 0, Duration: "1h", Price: 100},
		{Origin: "A", Destination: "B", DistanceKm: 10, Duration: "1h", Price: 0},
		{Origin: "", Destination: "B", DistanceKm: 10, Duration: "1h", Price: 100},
	}
	for _, req := range tests {
		_, err := svc.AddRoute(context.Background(), req)
		var verr *common.ValidationError
		assert.ErrorAs(t, err, &verr)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRoute_NotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec("UPDATE routes").
		WithArgs(int64(99), "A", "B", 10.0, "1h", int64(100)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	_, err := svc.UpdateRoute(context.Background(), 99, RouteRequest{Origin: "A", Destination: "B", DistanceKm: 10, Duration: "1h", Price: 100})
	assert.ErrorIs(t, err, common.ErrRouteNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoute_WithSchedulesRefused(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM schedules").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err := svc.DeleteRoute(context.Background(), 3)
	assert.ErrorIs(t, err, common.ErrRouteHasSchedules)
	assert.Contains(t, err.Error(), "2 schedules")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRoute(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM schedules").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("DELETE FROM routes").WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DeleteRoute(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddSchedule(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes WHERE id").WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("FROM buses WHERE id").WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("INSERT INTO schedules").
		WithArgs(int64(1), int64(2), "08:00", "09:20", "Mon-Fri").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectCommit()

	sch, err := svc.AddSchedule(context.Background(), ScheduleRequest{
		RouteID: 1, BusID: 2, Departure: "08:00", Arrival: "09:20", Days: "Mon-Fri",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), sch.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddSchedule_BadClock(t *testing.T) {
	svc, mock := newTestService(t)

	for _, dep := range []string{"8:00", "24:00", "12:60", "ab:cd"} {
		_, err := svc.AddSchedule(context.Background(), ScheduleRequest{
			RouteID: 1, BusID: 2, Departure: dep, Arrival: "09:20", Days: "daily",
		})
		var verr *common.ValidationError
		assert.ErrorAs(t, err, &verr, dep)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddSchedule_UnknownBus(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM routes WHERE id").WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("FROM buses WHERE id").WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := svc.AddSchedule(context.Background(), ScheduleRequest{
		RouteID: 1, BusID: 7, Departure: "08:00", Arrival: "09:20", Days: "daily",
	})
	assert.ErrorIs(t, err, common.ErrBusNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func expectScheduleWithTickets(mock pgxmock.PgxPoolIface, id int64, tickets int) {
	mock.ExpectBegin()
	mock.ExpectQuery("FROM schedules WHERE id").WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM tickets").WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(tickets))
}

func TestDeleteSchedule_TicketsNeedForce(t *testing.T) {
	svc, mock := newTestService(t)

	expectScheduleWithTickets(mock, 5, 3)
	mock.ExpectRollback()

	_, err := svc.DeleteSchedule(context.Background(), 5, false)
	assert.ErrorIs(t, err, common.ErrScheduleHasTickets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSchedule_ForceCascades(t *testing.T) {
	svc, mock := newTestService(t)

	expectScheduleWithTickets(mock, 5, 3)
	mock.ExpectExec("DELETE FROM tickets").WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("DELETE FROM schedules").WithArgs(int64(5)).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	removed, err := svc.DeleteSchedule(context.Background(), 5, true)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSchedule_NotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM schedules WHERE id").WithArgs(int64(8)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := svc.DeleteSchedule(context.Background(), 8, true)
	assert.ErrorIs(t, err, common.ErrScheduleNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busline.mx/erp/internal/config"
	"busline.mx/erp/internal/console/filters"
	"busline.mx/erp/internal/features/auth"
	"busline.mx/erp/internal/features/logistics"
)

var userCols = []string{"id", "first_name", "last_name", "username", "password_hash",
	"role", "department", "employee_id", "created_at"}

func newTestConsole(t *testing.T, in string) (*Console, *bytes.Buffer, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	cfg := &config.Config{SessionTTL: time.Hour, LoginMaxAttempts: 3, LoginLockoutWindow: time.Hour}
	out := &bytes.Buffer{}
	authService := auth.NewService(auth.NewRepository(mock), cfg)
	h := Handlers{
		Auth:      auth.NewHandler(authService, out),
		Logistics: logistics.NewHandler(logistics.NewService(mock, logistics.NewRepository(mock)), out),
	}
	c := New(strings.NewReader(in), out, authService, filters.NewAccessFilter(nil), h)
	return c, out, mock
}

func loggedIn(role auth.Role, dept auth.Department) *auth.Session {
	return &auth.Session{UserID: 2, Username: "op", FullName: "Op Erator", Role: role, Department: dept,
		ExpiresAt: time.Now().Add(time.Hour)}
}

func TestExecute_RequiresLogin(t *testing.T) {
	c, out, mock := newTestConsole(t, "")
	c.Execute(context.Background(), "logistics routes")
	assert.Contains(t, out.String(), "not logged in")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_Login(t *testing.T) {
	c, out, mock := newTestConsole(t, "")
	hash, err := auth.HashPassword("rutas2024")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT COUNT").WithArgs("marlop", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM users WHERE username").WithArgs("marlop").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(5), "Mario", "López", "marlop", hash, "head", "logistics", (*int64)(nil), time.Now()))
	mock.ExpectExec("INSERT INTO login_attempts").WithArgs("marlop", true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	c.Execute(context.Background(), "login marlop rutas2024")
	require.NotNil(t, c.Session())
	assert.Equal(t, auth.DeptLogistics, c.Session().Department)
	assert.Contains(t, out.String(), "Welcome, Mario López")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_RoutesToDepartment(t *testing.T) {
	c, out, mock := newTestConsole(t, "")
	c.session = loggedIn(auth.RoleHead, auth.DeptLogistics)

	mock.ExpectQuery("FROM routes").
		WillReturnRows(pgxmock.NewRows([]string{"id", "origin", "destination", "distance_km", "duration", "price"}).
			AddRow(int64(1), "Ciudad de México", "Puebla", 135.0, "2h 10m", int64(32000)))

	c.Execute(context.Background(), "logistics routes")
	assert.Contains(t, out.String(), "Ciudad de México")
	assert.Contains(t, out.String(), "$320.00")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_OtherDepartmentForbidden(t *testing.T) {
	c, out, mock := newTestConsole(t, "")
	c.session = loggedIn(auth.RoleEmployee, auth.DeptSales)

	c.Execute(context.Background(), "logistics routes")
	assert.Contains(t, out.String(), "no access")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_ExpiredSessionCleared(t *testing.T) {
	c, out, _ := newTestConsole(t, "")
	c.session = loggedIn(auth.RoleAdmin, auth.DeptAll)
	c.session.ExpiresAt = time.Now().Add(-time.Minute)

	c.Execute(context.Background(), "reports summary")
	assert.Nil(t, c.Session())
	assert.Contains(t, out.String(), "session expired")
}

func TestExecute_UnknownAndMissingSubcommand(t *testing.T) {
	c, out, _ := newTestConsole(t, "")
	c.session = loggedIn(auth.RoleAdmin, auth.DeptAll)

	c.Execute(context.Background(), "logistics fly")
	assert.Contains(t, out.String(), `Unknown command "logistics fly"`)

	out.Reset()
	c.Execute(context.Background(), "logistics")
	assert.Contains(t, out.String(), "needs a subcommand")
}

func TestExecute_PanicRecovered(t *testing.T) {
	c, out, _ := newTestConsole(t, "")
	c.session = loggedIn(auth.RoleAdmin, auth.DeptAll)

	// Staff handler is not wired in this console, so the call panics.
	assert.NotPanics(t, func() { c.Execute(context.Background(), "hr list") })
	assert.Contains(t, out.String(), "internal error")
}

func TestExecute_Logout(t *testing.T) {
	c, out, _ := newTestConsole(t, "")
	c.session = loggedIn(auth.RoleHead, auth.DeptLogistics)

	c.Execute(context.Background(), "logout")
	assert.Nil(t, c.Session())
	assert.Contains(t, out.String(), "Logged out")
}

func TestRun_StopsOnQuit(t *testing.T) {
	c, out, _ := newTestConsole(t, "help\nquit\nhelp\n")
	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, 1, strings.Count(out.String(), "login <username> <password> |"))
	assert.Contains(t, out.String(), "Bye")
}

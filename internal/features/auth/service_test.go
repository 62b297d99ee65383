package auth

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/config"
)

var userCols = []string{"id", "first_name", "last_name", "username", "password_hash",
	"role", "department", "employee_id", "created_at"}

func newTestService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	cfg := &config.Config{
		AdminUsername:      "admin",
		AdminPasswordHash:  "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		SessionTTL:         time.Hour,
		LoginMaxAttempts:   3,
		LoginLockoutWindow: time.Hour,
	}
	svc := NewService(NewRepository(mock), cfg)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return svc, mock
}

func TestLogin_Success(t *testing.T) {
	svc, mock := newTestService(t)
	hash, err := HashPassword("ventas123")
	require.NoError(t, err)
	empID := int64(4)

	mock.ExpectQuery("SELECT COUNT").WithArgs("anali", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM users WHERE username").WithArgs("anali").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(7), "Ana", "Li", "anali", hash, "employee", "sales", &empID, time.Now()))
	mock.ExpectExec("INSERT INTO login_attempts").WithArgs("anali", true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	sess, err := svc.Login(context.Background(), "anali", "ventas123")
	require.NoError(t, err)
	assert.Equal(t, int64(7), sess.UserID)
	assert.Len(t, sess.ID, 36)
	assert.Equal(t, "Ana Li", sess.FullName)
	assert.Equal(t, DeptSales, sess.Department)
	assert.Equal(t, RoleEmployee, sess.Role)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), sess.ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mock := newTestService(t)
	hash, err := HashPassword("ventas123")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT COUNT").WithArgs("anali", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("FROM users WHERE username").WithArgs("anali").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(7), "Ana", "Li", "anali", hash, "employee", "sales", (*int64)(nil), time.Now()))
	mock.ExpectExec("INSERT INTO login_attempts").WithArgs("anali", false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	_, err = svc.Login(context.Background(), "anali", "nope")
	assert.ErrorIs(t, err, common.ErrWrongCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_LockedOut(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT COUNT").WithArgs("anali", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	_, err := svc.Login(context.Background(), "anali", "ventas123")
	assert.ErrorIs(t, err, common.ErrTooManyAttempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two failures, a success, then a typo: only the typo counts, so the next
// attempt is not locked out.
func TestLogin_SuccessClearsFailures(t *testing.T) {
	svc, mock := newTestService(t)
	hash, err := HashPassword("ventas123")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM login_attempts[\s\S]*MAX\(attempted_at\)[\s\S]*AND success`).
		WithArgs("anali", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("FROM users WHERE username").WithArgs("anali").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(7), "Ana", "Li", "anali", hash, "employee", "sales", (*int64)(nil), time.Now()))
	mock.ExpectExec("INSERT INTO login_attempts").WithArgs("anali", true).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	_, err = svc.Login(context.Background(), "anali", "ventas123")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateHead_RequiresAdmin(t *testing.T) {
	svc, mock := newTestService(t)
	head := &Session{Role: RoleHead, Department: DeptSales}

	_, err := svc.CreateHead(context.Background(), head, HeadRequest{
		FirstName: "Luis", LastName: "Ruiz", Username: "luisr", Password: "abcdef", Department: DeptFinance,
	})
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateHead_UnknownDepartment(t *testing.T) {
	svc, _ := newTestService(t)
	admin := &Session{Role: RoleAdmin, Department: DeptAll}

	_, err := svc.CreateHead(context.Background(), admin, HeadRequest{
		FirstName: "Luis", LastName: "Ruiz", Username: "luisr", Password: "abcdef", Department: "marketing",
	})
	var verr *common.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestEnsureAdmin_AlreadyPresent(t *testing.T) {
	svc, mock := newTestService(t)
	mock.ExpectQuery("FROM users WHERE username").WithArgs("admin").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(1), "Administrator", "", "admin", "x", "admin", "all", (*int64)(nil), time.Now()))

	require.NoError(t, svc.EnsureAdmin(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureAdmin_Creates(t *testing.T) {
	svc, mock := newTestService(t)
	mock.ExpectQuery("FROM users WHERE username").WithArgs("admin").
		WillReturnRows(pgxmock.NewRows(userCols))
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("Administrator", "", "admin", svc.cfg.AdminPasswordHash, "admin", "all", (*int64)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	require.NoError(t, svc.EnsureAdmin(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busline.mx/erp/internal/common"
)

var now = time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	svc := NewService(mock, NewRepository(mock), time.UTC)
	svc.now = func() time.Time { return now }
	return svc, mock
}

func itemRow(qty int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "category", "quantity"}).
		AddRow(int64(3), "Floor cleaner", "supplies", qty)
}

func TestWithdraw(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM inventory_items WHERE id").WithArgs(int64(3)).WillReturnRows(itemRow(10))
	mock.ExpectExec("UPDATE inventory_items").WithArgs(int64(3), 4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("INSERT INTO inventory_withdrawals").WithArgs(int64(3), 4, "Garage crew", now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	w, left, err := svc.Withdraw(context.Background(), WithdrawRequest{ItemID: 3, Quantity: 4, RequestedBy: "Garage crew"})
	require.NoError(t, err)
	assert.Equal(t, 6, left)
	assert.Equal(t, "Floor cleaner", w.ItemName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdraw_NotEnoughStock(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM inventory_items WHERE id").WithArgs(int64(3)).WillReturnRows(itemRow(2))
	mock.ExpectRollback()

	_, _, err := svc.Withdraw(context.Background(), WithdrawRequest{ItemID: 3, Quantity: 4, RequestedBy: "x"})
	assert.ErrorIs(t, err, common.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithdraw_UnknownItem(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM inventory_items WHERE id").WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "category", "quantity"}))
	mock.ExpectRollback()

	_, _, err := svc.Withdraw(context.Background(), WithdrawRequest{ItemID: 9, Quantity: 1, RequestedBy: "x"})
	assert.ErrorIs(t, err, common.ErrItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package finance

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busline.mx/erp/internal/common"
)

func TestRecordTransaction_Expense(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewService(mock, repo)

	mock.ExpectBegin()
	expectAppend(mock, 10000000000, Entry{Concept: "Diesel", Debit: 1250000, Balance: 9998750000}, 5)
	mock.ExpectCommit()

	e, err := svc.RecordTransaction(context.Background(), TransactionRequest{
		Kind: KindExpense, Concept: "Diesel", Amount: 1250000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9998750000), e.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransaction_ValidationBeforeDB(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewService(mock, repo)

	_, err := svc.RecordTransaction(context.Background(), TransactionRequest{Kind: "gift", Concept: "x", Amount: 1})
	var verr *common.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.RecordTransaction(context.Background(), TransactionRequest{Kind: KindIncome, Concept: "", Amount: 1})
	assert.ErrorAs(t, err, &verr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAudit(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewService(mock, repo)

	mock.ExpectQuery("FROM ledger_entries").
		WillReturnRows(pgxmock.NewRows(entryCols).
			AddRow(int64(1), at, OpeningConcept, int64(1000), int64(0), int64(1000)).
			AddRow(int64(2), at, "x", int64(0), int64(300), int64(700)))

	n, err := svc.Audit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestIncomeVsExpense_InclusiveRange(t *testing.T) {
	repo, mock := newMockRepo(t)
	svc := NewService(mock, repo)

	from := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SUM\\(credit\\)").
		WithArgs(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(pgxmock.NewRows([]string{"credit", "debit"}).AddRow(int64(900), int64(400)))

	totals, err := svc.IncomeVsExpense(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(500), totals.Net())
	assert.NoError(t, mock.ExpectationsWereMet())
}

package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"busline.mx/erp/internal/features/finance"
	"busline.mx/erp/internal/features/sales"
)

type fakeAuditor struct {
	n   int
	err error
}

func (f fakeAuditor) Audit(context.Context) (int, error) { return f.n, f.err }

type fakeSales struct {
	day time.Time
	sum sales.Summary
	err error
}

func (f *fakeSales) DailySummary(_ context.Context, t time.Time) (sales.Summary, error) {
	f.day = t
	return f.sum, f.err
}

func TestAuditLedger(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	tests := []struct {
		name  string
		err   error
		level log.Level
		msg   string
	}{
		{"consistent", nil, log.InfoLevel, "[CRON] Ledger consistent"},
		{"broken", &finance.ChainError{EntryID: 9, Expected: 100, Actual: 90}, log.ErrorLevel, "[CRON] Ledger running balance is broken"},
		{"db error", errors.New("conn refused"), log.ErrorLevel, "[CRON] Ledger audit failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook.Reset()
			s := NewScheduler(time.UTC, fakeAuditor{n: 12, err: tt.err}, &fakeSales{})
			s.AuditLedger(context.Background())

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, tt.msg, entry.Message)
		})
	}
}

func TestSummarizeSales(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	loc := time.FixedZone("CST", -6*3600)
	fs := &fakeSales{sum: sales.Summary{Tickets: 14, Revenue: 350000}}
	s := NewScheduler(loc, fakeAuditor{}, fs)
	s.now = func() time.Time { return time.Date(2024, 6, 4, 3, 0, 0, 0, time.UTC) }

	s.SummarizeSales(context.Background())

	assert.Equal(t, 3, fs.day.Day())
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "2024-06-03", entry.Data["date"])
	assert.Equal(t, 14, entry.Data["tickets"])
	assert.Equal(t, "$3,500.00", entry.Data["revenue"])
}

func TestStart_BadSpec(t *testing.T) {
	s := NewScheduler(time.UTC, fakeAuditor{}, &fakeSales{})
	err := s.Start(context.Background(), "not a spec", "0 23 * * *")
	assert.Error(t, err)
}

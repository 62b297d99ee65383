package finance

import (
	"fmt"
	"time"

	"busline.mx/erp/internal/common"
)

// NextEntry computes the entry that follows a ledger whose last balance is
// prev. It does not touch storage.
func NextEntry(prev int64, m Movement, at time.Time) (Entry, error) {
	if m.Credit < 0 || m.Debit < 0 {
		return Entry{}, common.ErrInvalidAmount
	}
	if (m.Credit > 0) == (m.Debit > 0) {
		return Entry{}, fmt.Errorf("%w: exactly one of credit and debit must be set", common.ErrInvalidAmount)
	}
	if m.Debit > prev {
		return Entry{}, fmt.Errorf("%w: balance %s, needed %s",
			common.ErrInsufficientFunds, common.FormatAmount(prev), common.FormatAmount(m.Debit))
	}
	return Entry{
		CreatedAt: at,
		Concept:   m.Concept,
		Credit:    m.Credit,
		Debit:     m.Debit,
		Balance:   prev + m.Credit - m.Debit,
	}, nil
}

// ChainError points at the first entry whose balance does not follow from
// the one before it.
type ChainError struct {
	Index    int
	EntryID  int64
	Expected int64
	Actual   int64
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("ledger broken at entry %d: expected balance %s, stored %s",
		e.EntryID, common.FormatAmount(e.Expected), common.FormatAmount(e.Actual))
}

// VerifyChain checks entries ordered by id. The first entry must hold its own
// net amount as balance; every later one the previous balance plus credit
// minus debit.
func VerifyChain(entries []Entry) error {
	var prev int64
	for i, e := range entries {
		expected := prev + e.Credit - e.Debit
		if e.Balance != expected {
			return &ChainError{Index: i, EntryID: e.ID, Expected: expected, Actual: e.Balance}
		}
		prev = e.Balance
	}
	return nil
}

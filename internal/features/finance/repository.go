// Package finance: repository.go reads and appends ledger_entries.
// Rows are only ever inserted; nothing here updates or deletes them.
package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/db/postgres"
)

// ledgerLockKey identifies the transaction-scoped advisory lock that
// serialises appends.
const ledgerLockKey int64 = 0x4c4544474552

// Repository works with the ledger_entries table.
type Repository struct {
	db  postgres.DB
	loc *time.Location
	now func() time.Time
}

// NewRepository creates the ledger repository. Entries are stamped and
// grouped by month in loc.
func NewRepository(db postgres.DB, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc, now: common.Clock(loc)}
}

// Lock takes the ledger append lock for the rest of the transaction q
// belongs to. Must be called inside a transaction.
func (r *Repository) Lock(ctx context.Context, q postgres.Querier) error {
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockKey); err != nil {
		return fmt.Errorf("lock ledger: %w", err)
	}
	return nil
}

// CurrentBalance returns the balance of the newest entry, 0 for an empty ledger.
func (r *Repository) CurrentBalance(ctx context.Context, q postgres.Querier) (int64, error) {
	var balance int64
	err := q.QueryRow(ctx, `SELECT balance FROM ledger_entries ORDER BY id DESC LIMIT 1`).Scan(&balance)
	if postgres.IsNoRows(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return balance, nil
}

// Insert stores e and fills its ID.
func (r *Repository) Insert(ctx context.Context, q postgres.Querier, e *Entry) error {
	err := q.QueryRow(ctx, `
		INSERT INTO ledger_entries (created_at, concept, credit, debit, balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, e.CreatedAt, e.Concept, e.Credit, e.Debit, e.Balance).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// Prepare locks the ledger and computes the entry for m without writing it.
// Callers that must reject before any write (payroll, purchases) use it, do
// their own inserts, then call Insert.
func (r *Repository) Prepare(ctx context.Context, q postgres.Querier, m Movement) (Entry, error) {
	if err := r.Lock(ctx, q); err != nil {
		return Entry{}, err
	}
	prev, err := r.CurrentBalance(ctx, q)
	if err != nil {
		return Entry{}, err
	}
	return NextEntry(prev, m, r.now())
}

// Append adds one entry for m. q must be a transaction; the caller commits.
func (r *Repository) Append(ctx context.Context, q postgres.Querier, m Movement) (Entry, error) {
	e, err := r.Prepare(ctx, q, m)
	if err != nil {
		return Entry{}, err
	}
	if err := r.Insert(ctx, q, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// EnsureOpeningBalance seeds an empty ledger with one credit of amount.
// Returns true if the entry was created.
func (r *Repository) EnsureOpeningBalance(ctx context.Context, amount int64) (bool, error) {
	if amount <= 0 {
		return false, nil
	}
	created := false
	err := postgres.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.Lock(ctx, tx); err != nil {
			return err
		}
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM ledger_entries)`).Scan(&exists); err != nil {
			return fmt.Errorf("check ledger: %w", err)
		}
		if exists {
			return nil
		}
		e := Entry{CreatedAt: r.now(), Concept: OpeningConcept, Credit: amount, Balance: amount}
		if err := r.Insert(ctx, tx, &e); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// Recent returns the newest entries, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	return r.queryEntries(ctx, `
		SELECT id, created_at, concept, credit, debit, balance
		FROM ledger_entries
		ORDER BY id DESC
		LIMIT $1
	`, limit)
}

// All returns the whole ledger ordered by id.
func (r *Repository) All(ctx context.Context) ([]Entry, error) {
	return r.queryEntries(ctx, `
		SELECT id, created_at, concept, credit, debit, balance
		FROM ledger_entries
		ORDER BY id
	`)
}

// Totals sums credits and debits with created_at in [from, to).
func (r *Repository) Totals(ctx context.Context, from, to time.Time) (Totals, error) {
	var t Totals
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(credit), 0), COALESCE(SUM(debit), 0)
		FROM ledger_entries
		WHERE created_at >= $1 AND created_at < $2
	`, from, to).Scan(&t.Income, &t.Expense)
	if err != nil {
		return Totals{}, fmt.Errorf("sum ledger: %w", err)
	}
	return t, nil
}

// MonthlyExpenses sums debits per month, newest month first.
func (r *Repository) MonthlyExpenses(ctx context.Context, months int) ([]MonthlyTotal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(created_at AT TIME ZONE $2, 'YYYY-MM') AS month, SUM(debit)
		FROM ledger_entries
		WHERE debit > 0
		GROUP BY month
		ORDER BY month DESC
		LIMIT $1
	`, months, r.loc.String())
	if err != nil {
		return nil, fmt.Errorf("monthly expenses: %w", err)
	}
	defer rows.Close()

	var out []MonthlyTotal
	for rows.Next() {
		var m MonthlyTotal
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repository) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Concept, &e.Credit, &e.Debit, &e.Balance); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

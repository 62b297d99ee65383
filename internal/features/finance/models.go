// Package finance keeps the company ledger: an append-only sequence of
// entries, each carrying the running balance after it.
// models.go describes entries, movements and aggregates.
package finance

import "time"

// Entry is one ledger row. Money is in cents; exactly one of Credit and
// Debit is positive.
type Entry struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	Concept   string    `db:"concept"`
	Credit    int64     `db:"credit"`
	Debit     int64     `db:"debit"`
	Balance   int64     `db:"balance"`
}

// Movement is a requested change to the balance, before it has a position
// in the chain.
type Movement struct {
	Concept string
	Credit  int64
	Debit   int64
}

// Credit builds an income movement.
func Credit(concept string, amount int64) Movement {
	return Movement{Concept: concept, Credit: amount}
}

// Debit builds an expense movement.
func Debit(concept string, amount int64) Movement {
	return Movement{Concept: concept, Debit: amount}
}

// Transaction kinds accepted by manual bookkeeping.
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// TransactionRequest is a manual income or expense typed by an operator.
type TransactionRequest struct {
	Kind    string `validate:"required,oneof=income expense"`
	Concept string `validate:"required,max=200"`
	Amount  int64  `validate:"gt=0"`
}

// Totals sums both sides of the ledger over a period.
type Totals struct {
	Income  int64
	Expense int64
}

// Net is income minus expense.
func (t Totals) Net() int64 { return t.Income - t.Expense }

// MonthlyTotal is an amount grouped by calendar month ("2024-03").
type MonthlyTotal struct {
	Month string
	Total int64
}

// OpeningConcept is the concept of the first ledger entry.
const OpeningConcept = "Opening balance"

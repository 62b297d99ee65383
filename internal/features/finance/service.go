// Package finance: service.go is the bookkeeping API used by the console
// and the scheduled audit.
package finance

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/db/postgres"
)

// Service exposes the ledger.
type Service struct {
	db   postgres.DB
	repo *Repository
}

// NewService creates the finance service.
func NewService(db postgres.DB, repo *Repository) *Service {
	return &Service{db: db, repo: repo}
}

// Ledger gives other features access to Append/Prepare inside their own
// transactions.
func (s *Service) Ledger() *Repository { return s.repo }

// Balance returns the current company balance.
func (s *Service) Balance(ctx context.Context) (int64, error) {
	return s.repo.CurrentBalance(ctx, s.db)
}

// RecordTransaction books a manual income or expense. Expenses are rejected
// with ErrInsufficientFunds when the balance does not cover them.
func (s *Service) RecordTransaction(ctx context.Context, req TransactionRequest) (Entry, error) {
	if err := common.Validate(req); err != nil {
		return Entry{}, err
	}

	m := Credit(req.Concept, req.Amount)
	if req.Kind == KindExpense {
		m = Debit(req.Concept, req.Amount)
	}

	var entry Entry
	err := postgres.InTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		entry, err = s.repo.Append(ctx, tx, m)
		return err
	})
	if err != nil {
		return Entry{}, err
	}

	log.WithFields(log.Fields{
		"entry_id": entry.ID,
		"kind":     req.Kind,
		"amount":   req.Amount,
		"balance":  entry.Balance,
	}).Info("Manual transaction recorded")
	return entry, nil
}

// History returns the latest entries, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.Recent(ctx, limit)
}

// Audit verifies the running balance over the whole ledger and returns the
// number of entries checked.
func (s *Service) Audit(ctx context.Context) (int, error) {
	entries, err := s.repo.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), VerifyChain(entries)
}

// IncomeVsExpense sums the ledger between two calendar dates, both inclusive.
func (s *Service) IncomeVsExpense(ctx context.Context, from, to time.Time) (Totals, error) {
	return s.repo.Totals(ctx, common.DateOnly(from), common.DateOnly(to).AddDate(0, 0, 1))
}

// MonthlyExpenses returns debit totals for the last n months that had any.
func (s *Service) MonthlyExpenses(ctx context.Context, months int) ([]MonthlyTotal, error) {
	if months <= 0 {
		months = 12
	}
	return s.repo.MonthlyExpenses(ctx, months)
}

// EnsureOpeningBalance seeds the ledger on first start.
func (s *Service) EnsureOpeningBalance(ctx context.Context, amount int64) error {
	created, err := s.repo.EnsureOpeningBalance(ctx, amount)
	if err != nil {
		return err
	}
	if created {
		log.WithField("amount", common.FormatAmount(amount)).Info("Ledger opened")
	}
	return nil
}

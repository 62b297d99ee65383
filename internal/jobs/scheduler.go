// Package jobs runs the background cron tasks.
// scheduler.go sets up the nightly ledger audit and the end-of-day sales
// summary.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/features/finance"
	"busline.mx/erp/internal/features/sales"
)

// LedgerAuditor checks the running balance of the ledger.
type LedgerAuditor interface {
	Audit(ctx context.Context) (int, error)
}

// SalesSummarizer counts a day's ticket sales.
type SalesSummarizer interface {
	DailySummary(ctx context.Context, t time.Time) (sales.Summary, error)
}

// Scheduler runs background tasks.
type Scheduler struct {
	cron    *cron.Cron
	loc     *time.Location
	auditor LedgerAuditor
	sales   SalesSummarizer
	now     func() time.Time
}

// NewScheduler creates a scheduler working in loc.
func NewScheduler(loc *time.Location, auditor LedgerAuditor, summarizer SalesSummarizer) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		loc:     loc,
		auditor: auditor,
		sales:   summarizer,
		now:     time.Now,
	}
}

// Start registers both jobs and starts the cron loop. A bad spec is
// returned before anything runs.
func (s *Scheduler) Start(ctx context.Context, auditSpec, summarySpec string) error {
	if _, err := s.cron.AddFunc(auditSpec, func() { s.AuditLedger(ctx) }); err != nil {
		return fmt.Errorf("ledger audit schedule %q: %w", auditSpec, err)
	}
	if _, err := s.cron.AddFunc(summarySpec, func() { s.SummarizeSales(ctx) }); err != nil {
		return fmt.Errorf("sales summary schedule %q: %w", summarySpec, err)
	}

	s.cron.Start()
	log.WithField("timezone", s.loc.String()).Info("Job scheduler started")
	return nil
}

// AuditLedger walks the whole ledger and logs an error on a broken chain.
func (s *Scheduler) AuditLedger(ctx context.Context) {
	log.Info("[CRON] Ledger audit")
	n, err := s.auditor.Audit(ctx)
	var chainErr *finance.ChainError
	switch {
	case errors.As(err, &chainErr):
		log.WithFields(log.Fields{
			"entry_id": chainErr.EntryID,
			"expected": common.FormatAmount(chainErr.Expected),
			"actual":   common.FormatAmount(chainErr.Actual),
		}).Error("[CRON] Ledger running balance is broken")
	case err != nil:
		log.WithError(err).Error("[CRON] Ledger audit failed")
	default:
		log.WithField("entries", n).Info("[CRON] Ledger consistent")
	}
}

// SummarizeSales logs today's ticket count and revenue.
func (s *Scheduler) SummarizeSales(ctx context.Context) {
	today := s.now().In(s.loc)
	sum, err := s.sales.DailySummary(ctx, today)
	if err != nil {
		log.WithError(err).Error("[CRON] Sales summary failed")
		return
	}
	log.WithFields(log.Fields{
		"date":    today.Format(common.DateLayout),
		"tickets": sum.Tickets,
		"revenue": common.FormatAmount(sum.Revenue),
	}).Info("[CRON] Daily sales")
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Job scheduler stopped")
}

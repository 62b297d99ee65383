// Package finance: handlers.go serves: finance balance, finance history,
// finance income, finance expense, finance audit.
package finance

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/features/auth"
)

// Handler serves finance commands.
type Handler struct {
	service *Service
	out     io.Writer
}

// NewHandler creates the finance command handler.
func NewHandler(service *Service, out io.Writer) *Handler {
	return &Handler{service: service, out: out}
}

// HandleBalance prints the current balance.
//
//	💰 Balance: $100,000,000.00
func (h *Handler) HandleBalance(ctx context.Context, sess *auth.Session, args []string) {
	balance, err := h.service.Balance(ctx)
	if err != nil {
		common.ReplyError(h.out, "Balance", err)
		return
	}
	common.Reply(h.out, "💰 Balance: %s", common.FormatAmount(balance))
}

// HandleHistory prints the last n entries (default 20).
func (h *Handler) HandleHistory(ctx context.Context, sess *auth.Session, args []string) {
	limit := 20
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			common.Reply(h.out, "❌ Usage: finance history [count]")
			return
		}
		limit = n
	}

	entries, err := h.service.History(ctx, limit)
	if err != nil {
		common.ReplyError(h.out, "History", err)
		return
	}
	if len(entries) == 0 {
		common.Reply(h.out, "The ledger is empty")
		return
	}

	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	common.Reply(tw, "ID\tDATE\tCREDIT\tDEBIT\tBALANCE\tCONCEPT\t")
	for _, e := range entries {
		common.Reply(tw, "%d\t%s\t%s\t%s\t%s\t%s\t",
			e.ID, common.FormatDateTime(e.CreatedAt),
			amountOrDash(e.Credit), amountOrDash(e.Debit),
			common.FormatAmount(e.Balance), e.Concept)
	}
	tw.Flush()
}

// HandleIncome: finance income <amount> <concept...>
func (h *Handler) HandleIncome(ctx context.Context, sess *auth.Session, args []string) {
	h.record(ctx, sess, KindIncome, args)
}

// HandleExpense: finance expense <amount> <concept...>
func (h *Handler) HandleExpense(ctx context.Context, sess *auth.Session, args []string) {
	h.record(ctx, sess, KindExpense, args)
}

func (h *Handler) record(ctx context.Context, sess *auth.Session, kind string, args []string) {
	if len(args) < 2 {
		common.Reply(h.out, "❌ Usage: finance %s <amount> <concept>", kind)
		return
	}
	amount, err := common.ParseAmount(args[0])
	if err != nil {
		common.ReplyError(h.out, "Amount", err)
		return
	}

	entry, err := h.service.RecordTransaction(ctx, TransactionRequest{
		Kind:    kind,
		Concept: strings.Join(args[1:], " "),
		Amount:  amount,
	})
	if err != nil {
		common.ReplyError(h.out, "Record "+kind, err)
		return
	}
	common.Reply(h.out, "✅ Entry #%d recorded. Balance: %s", entry.ID, common.FormatAmount(entry.Balance))
}

// HandleAudit verifies the running balance of the whole ledger.
func (h *Handler) HandleAudit(ctx context.Context, sess *auth.Session, args []string) {
	n, err := h.service.Audit(ctx)
	if err != nil {
		var chainErr *ChainError
		if errors.As(err, &chainErr) {
			common.Reply(h.out, "❌ %v", chainErr)
			return
		}
		common.ReplyError(h.out, "Audit", err)
		return
	}
	common.Reply(h.out, "✅ Ledger consistent (%s checked)", common.Pluralize(n, "entry", "entries"))
}

func amountOrDash(cents int64) string {
	if cents == 0 {
		return "-"
	}
	return common.FormatAmount(cents)
}

package inventory

import (
	"context"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/features/auth"
)

// Handler serves: inventory stock, inventory withdraw, inventory withdrawals.
type Handler struct {
	service *Service
	out     io.Writer
}

func NewHandler(service *Service, out io.Writer) *Handler {
	return &Handler{service: service, out: out}
}

func (h *Handler) HandleStock(ctx context.Context, sess *auth.Session, args []string) {
	items, err := h.service.Items(ctx)
	if err != nil {
		common.ReplyError(h.out, "Stock", err)
		return
	}
	if len(items) == 0 {
		common.Reply(h.out, "Warehouse is empty")
		return
	}
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	common.Reply(tw, "ID\tITEM\tCATEGORY\tQTY")
	for _, it := range items {
		common.Reply(tw, "%d\t%s\t%s\t%d", it.ID, it.Name, it.Category, it.Quantity)
	}
	tw.Flush()
}

// HandleWithdraw: inventory withdraw <item_id> <qty> [requested by...]
// The requester defaults to the logged-in operator.
func (h *Handler) HandleWithdraw(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 2 {
		common.Reply(h.out, "❌ Usage: inventory withdraw <item_id> <qty> [requested by]")
		return
	}
	id, err1 := strconv.ParseInt(args[0], 10, 64)
	qty, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		common.Reply(h.out, "❌ Item id and quantity must be numbers")
		return
	}
	by := sess.FullName
	if len(args) > 2 {
		by = strings.Join(args[2:], " ")
	}

	w, left, err := h.service.Withdraw(ctx, WithdrawRequest{ItemID: id, Quantity: qty, RequestedBy: by})
	if err != nil {
		common.ReplyError(h.out, "Withdraw", err)
		return
	}
	common.Reply(h.out, "✅ %d × %s handed to %s, %d left", w.Quantity, w.ItemName, w.RequestedBy, left)
}

func (h *Handler) HandleWithdrawals(ctx context.Context, sess *auth.Session, args []string) {
	ws, err := h.service.Withdrawals(ctx, 20)
	if err != nil {
		common.ReplyError(h.out, "Withdrawals", err)
		return
	}
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	common.Reply(tw, "ID\tDATE\tITEM\tQTY\tREQUESTED BY")
	for _, w := range ws {
		common.Reply(tw, "%d\t%s\t%s\t%d\t%s", w.ID, common.FormatDateTime(w.CreatedAt), w.ItemName, w.Quantity, w.RequestedBy)
	}
	tw.Flush()
}

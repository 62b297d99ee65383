package procurement

import (
	"context"
	"io"
	"strconv"
	"text/tabwriter"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/features/auth"
)

// Handler serves: purchasing buy, purchasing history.
type Handler struct {
	service *Service
	out     io.Writer
}

func NewHandler(service *Service, out io.Writer) *Handler {
	return &Handler{service: service, out: out}
}

// HandleBuy: purchasing buy <supplier_id> <type> "<description>" <qty> <unit_price>
func (h *Handler) HandleBuy(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 5 {
		common.Reply(h.out, `❌ Usage: purchasing buy <supplier_id> <bus|computer|supplies|other> "<description>" <qty> <unit_price>`)
		return
	}
	supplierID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		common.Reply(h.out, "❌ Supplier id must be a number")
		return
	}
	qty, err := strconv.Atoi(args[3])
	if err != nil {
		common.Reply(h.out, "❌ Quantity must be a number")
		return
	}
	price, err := common.ParseAmount(args[4])
	if err != nil {
		common.ReplyError(h.out, "Unit price", err)
		return
	}

	p, entry, err := h.service.Register(ctx, PurchaseRequest{
		SupplierID:  supplierID,
		ProductType: args[1],
		Description: args[2],
		Quantity:    qty,
		UnitPrice:   price,
	})
	if err != nil {
		common.ReplyError(h.out, "Purchase", err)
		return
	}
	common.Reply(h.out, "✅ Purchase #%d from %s: %d × %s = %s. Balance: %s",
		p.ID, p.SupplierName, p.Quantity, p.Description,
		common.FormatAmount(p.Total), common.FormatAmount(entry.Balance))
}

// HandleHistory: purchasing history [count]
func (h *Handler) HandleHistory(ctx context.Context, sess *auth.Session, args []string) {
	limit := 20
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			limit = n
		}
	}
	list, err := h.service.History(ctx, limit)
	if err != nil {
		common.ReplyError(h.out, "Purchases", err)
		return
	}
	if len(list) == 0 {
		common.Reply(h.out, "No purchases yet")
		return
	}
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	common.Reply(tw, "ID\tDATE\tSUPPLIER\tTYPE\tDESCRIPTION\tQTY\tTOTAL")
	for _, p := range list {
		common.Reply(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%s", p.ID, common.FormatDateTime(p.PurchasedAt),
			p.SupplierName, p.ProductType, p.Description, p.Quantity, common.FormatAmount(p.Total))
	}
	tw.Flush()
}

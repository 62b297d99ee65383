package suppliers

import (
	"context"
	"io"
	"strconv"
	"text/tabwriter"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/features/auth"
)

// Handler serves: suppliers list, suppliers show, suppliers add.
type Handler struct {
	service *Service
	out     io.Writer
}

func NewHandler(service *Service, out io.Writer) *Handler {
	return &Handler{service: service, out: out}
}

func (h *Handler) HandleList(ctx context.Context, sess *auth.Session, args []string) {
	list, err := h.service.List(ctx)
	if err != nil {
		common.ReplyError(h.out, "Suppliers", err)
		return
	}
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	common.Reply(tw, "ID\tNAME\tKIND\tCONTACT\tPHONE\tEMAIL")
	for _, s := range list {
		common.Reply(tw, "%d\t%s\t%s\t%s\t%s\t%s", s.ID, s.Name, s.Kind, s.Contact, s.Phone, s.Email)
	}
	tw.Flush()
}

func (h *Handler) HandleShow(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 1 {
		common.Reply(h.out, "❌ Usage: suppliers show <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		common.Reply(h.out, "❌ Supplier id must be a number")
		return
	}
	s, err := h.service.Get(ctx, id)
	if err != nil {
		common.ReplyError(h.out, "Supplier", err)
		return
	}
	common.Reply(h.out, "🏭 #%d %s (%s)", s.ID, s.Name, s.Kind)
	common.Reply(h.out, "   %s, %s, %s", s.Contact, s.Phone, s.Email)
}

// HandleAdd: suppliers add "<name>" <kind> ["contact"] [phone] [email]
func (h *Handler) HandleAdd(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 2 {
		common.Reply(h.out, `❌ Usage: suppliers add "<name>" <kind> ["contact"] [phone] [email]`)
		return
	}
	req := SupplierRequest{Name: args[0], Kind: args[1]}
	opt := []*string{&req.Contact, &req.Phone, &req.Email}
	for i, a := range args[2:] {
		if i < len(opt) {
			*opt[i] = a
		}
	}
	s, err := h.service.Add(ctx, req)
	if err != nil {
		common.ReplyError(h.out, "Add supplier", err)
		return
	}
	common.Reply(h.out, "✅ Supplier #%d %s added", s.ID, s.Name)
}

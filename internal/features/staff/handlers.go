// Package staff: handlers.go serves the HR commands:
// hr list, hr show, hr hire, hr fire, hr pay, hr payments, hr positions.
package staff

import (
	"context"
	"io"
	"strconv"
	"text/tabwriter"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/features/auth"
)

// Handler serves HR commands.
type Handler struct {
	service *Service
	out     io.Writer
}

// NewHandler creates the HR command handler.
func NewHandler(service *Service, out io.Writer) *Handler {
	return &Handler{service: service, out: out}
}

// HandleList: hr list [active|terminated|all]
func (h *Handler) HandleList(ctx context.Context, sess *auth.Session, args []string) {
	filter := FilterActive
	if len(args) > 0 {
		filter = Filter(args[0])
	}
	emps, err := h.service.List(ctx, filter)
	if err != nil {
		common.ReplyError(h.out, "List employees", err)
		return
	}
	if len(emps) == 0 {
		common.Reply(h.out, "No employees")
		return
	}
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	common.Reply(tw, "ID\tNAME\tAGE\tPOSITION\tDEPARTMENT\tSALARY\tSTATUS")
	for _, e := range emps {
		common.Reply(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s", e.ID, common.FullName(e.FirstName, e.LastName),
			e.Age, Positions[e.Position].Title, e.Department, common.FormatAmount(e.Salary), status(e))
	}
	tw.Flush()
}

// HandleShow: hr show <id>
func (h *Handler) HandleShow(ctx context.Context, sess *auth.Session, args []string) {
	id, ok := h.parseID(args, "hr show <employee_id>")
	if !ok {
		return
	}
	e, err := h.service.Get(ctx, id)
	if err != nil {
		common.ReplyError(h.out, "Employee", err)
		return
	}
	common.Reply(h.out, "👤 #%d %s, %d years", e.ID, common.FullName(e.FirstName, e.LastName), e.Age)
	common.Reply(h.out, "   %s (%s), salary %s", Positions[e.Position].Title, e.Department, common.FormatAmount(e.Salary))
	common.Reply(h.out, "   hired %s, %s", e.HiredAt.Format(common.DateLayout), status(e))
}

// HandleHire: hr hire "<first>" "<last>" <age> <position> <salary>
func (h *Handler) HandleHire(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 5 {
		common.Reply(h.out, `❌ Usage: hr hire "<first>" "<last>" <age> <position> <salary>`)
		return
	}
	age, err := strconv.Atoi(args[2])
	if err != nil {
		common.Reply(h.out, "❌ Age must be a number")
		return
	}
	salary, err := common.ParseAmount(args[4])
	if err != nil {
		common.ReplyError(h.out, "Salary", err)
		return
	}

	hire, err := h.service.Hire(ctx, HireRequest{
		FirstName: args[0],
		LastName:  args[1],
		Age:       age,
		Position:  args[3],
		Salary:    salary,
	})
	if err != nil {
		common.ReplyError(h.out, "Hire", err)
		return
	}
	e := hire.Employee
	common.Reply(h.out, "✅ Hired #%d %s as %s", e.ID, common.FullName(e.FirstName, e.LastName), Positions[e.Position].Title)
	if hire.Credentials != nil {
		common.Reply(h.out, "🔑 Username: %s  Password: %s", hire.Credentials.Username, hire.Credentials.Password)
		common.Reply(h.out, "   Shown only once, hand it over now.")
	}
}

// HandleFire: hr fire <id>
func (h *Handler) HandleFire(ctx context.Context, sess *auth.Session, args []string) {
	id, ok := h.parseID(args, "hr fire <employee_id>")
	if !ok {
		return
	}
	e, err := h.service.Terminate(ctx, id)
	if err != nil {
		common.ReplyError(h.out, "Terminate", err)
		return
	}
	common.Reply(h.out, "✅ %s terminated", common.FullName(e.FirstName, e.LastName))
}

// HandlePay: hr pay <id>
func (h *Handler) HandlePay(ctx context.Context, sess *auth.Session, args []string) {
	id, ok := h.parseID(args, "hr pay <employee_id>")
	if !ok {
		return
	}
	p, entry, err := h.service.PaySalary(ctx, id)
	if err != nil {
		common.ReplyError(h.out, "Salary payment", err)
		return
	}
	common.Reply(h.out, "✅ Paid %s to %s. Balance: %s",
		common.FormatAmount(p.Amount), p.Name, common.FormatAmount(entry.Balance))
}

// HandlePayments: hr payments [count]
func (h *Handler) HandlePayments(ctx context.Context, sess *auth.Session, args []string) {
	limit := 20
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			limit = n
		}
	}
	payments, err := h.service.RecentPayments(ctx, limit)
	if err != nil {
		common.ReplyError(h.out, "Payments", err)
		return
	}
	if len(payments) == 0 {
		common.Reply(h.out, "No salary payments yet")
		return
	}
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	common.Reply(tw, "ID\tDATE\tEMPLOYEE\tAMOUNT")
	for _, p := range payments {
		common.Reply(tw, "%d\t%s\t%s\t%s", p.ID, common.FormatDateTime(p.PaidAt), p.Name, common.FormatAmount(p.Amount))
	}
	tw.Flush()
}

// HandlePositions lists the position codes accepted by hr hire.
func (h *Handler) HandlePositions(ctx context.Context, sess *auth.Session, args []string) {
	for _, code := range PositionCodes() {
		p := Positions[code]
		common.Reply(h.out, "%-12s %-18s %s", p.Code, p.Title, p.Department)
	}
}

func (h *Handler) parseID(args []string, usage string) (int64, bool) {
	if len(args) < 1 {
		common.Reply(h.out, "❌ Usage: %s", usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		common.Reply(h.out, "❌ Employee id must be a positive number")
		return 0, false
	}
	return id, true
}

func status(e *Employee) string {
	if e.Active {
		return "active"
	}
	if e.TerminatedAt != nil {
		return "terminated " + e.TerminatedAt.Format(common.DateLayout)
	}
	return "terminated"
}

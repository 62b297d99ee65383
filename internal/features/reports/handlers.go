// Package reports: handlers.go serves the reports command group:
// summary, staff, fleet, sales, expenses, income, routes, categories.
package reports

import (
	"context"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/features/auth"
)

type Handler struct {
	service *Service
	out     io.Writer
	loc     *time.Location
	now     func() time.Time
}

func NewHandler(service *Service, out io.Writer, loc *time.Location) *Handler {
	return &Handler{service: service, out: out, loc: loc, now: time.Now}
}

func (h *Handler) table() *tabwriter.Writer {
	return tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
}

// parseRange reads "<from> <to>" dates, defaulting to the current month.
func (h *Handler) parseRange(args []string) (from, to time.Time, ok bool) {
	now := h.now().In(h.loc)
	from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc)
	to = common.DateOnly(now)
	if len(args) == 0 {
		return from, to, true
	}
	if len(args) < 2 {
		common.Reply(h.out, "❌ Give both dates: <from> <to> (%s)", common.DateLayout)
		return from, to, false
	}
	var err error
	if from, err = common.ParseDate(args[0], h.loc); err != nil {
		common.Reply(h.out, "❌ %v", err)
		return from, to, false
	}
	if to, err = common.ParseDate(args[1], h.loc); err != nil {
		common.Reply(h.out, "❌ %v", err)
		return from, to, false
	}
	if to.Before(from) {
		common.Reply(h.out, "❌ The end date is before the start date")
		return from, to, false
	}
	return from, to, true
}

func monthsArg(args []string) int {
	if len(args) == 0 {
		return 12
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 12
	}
	return n
}

// HandleSummary: reports summary
func (h *Handler) HandleSummary(ctx context.Context, sess *auth.Session, args []string) {
	o, err := h.service.Overview(ctx, h.now().In(h.loc))
	if err != nil {
		common.ReplyError(h.out, "Summary", err)
		return
	}
	employees := 0
	var payroll int64
	for _, d := range o.Headcount {
		employees += d.Employees
		payroll += d.Payroll
	}
	buses := 0
	for _, b := range o.Fleet {
		buses += b.Buses
	}
	common.Reply(h.out, "📊 Balance: %s", common.FormatAmount(o.Balance))
	common.Reply(h.out, "Staff: %s, monthly payroll %s", common.Pluralize(employees, "active employee", "active employees"), common.FormatAmount(payroll))
	common.Reply(h.out, "Fleet: %s", common.Pluralize(buses, "bus", "buses"))
	common.Reply(h.out, "This month: income %s, expenses %s, net %s",
		common.FormatAmount(o.Totals.Income), common.FormatAmount(o.Totals.Expense), common.FormatAmount(o.Totals.Net()))
}

// HandleStaff: reports staff
func (h *Handler) HandleStaff(ctx context.Context, sess *auth.Session, args []string) {
	rows, err := h.service.EmployeesByDepartment(ctx)
	if err != nil {
		common.ReplyError(h.out, "Staff report", err)
		return
	}
	if len(rows) == 0 {
		common.Reply(h.out, "No active employees")
		return
	}
	tw := h.table()
	common.Reply(tw, "DEPARTMENT\tEMPLOYEES\tPAYROLL")
	for _, d := range rows {
		common.Reply(tw, "%s\t%d\t%s", d.Department, d.Employees, common.FormatAmount(d.Payroll))
	}
	tw.Flush()
}

// HandleFleet: reports fleet
func (h *Handler) HandleFleet(ctx context.Context, sess *auth.Session, args []string) {
	rows, err := h.service.BusesByState(ctx)
	if err != nil {
		common.ReplyError(h.out, "Fleet report", err)
		return
	}
	if len(rows) == 0 {
		common.Reply(h.out, "No buses registered")
		return
	}
	tw := h.table()
	common.Reply(tw, "STATE\tBUSES")
	for _, b := range rows {
		common.Reply(tw, "%s\t%d", b.State, b.Buses)
	}
	tw.Flush()
}

// HandleSales: reports sales [months]
func (h *Handler) HandleSales(ctx context.Context, sess *auth.Session, args []string) {
	rows, err := h.service.MonthlySales(ctx, monthsArg(args))
	if err != nil {
		common.ReplyError(h.out, "Sales report", err)
		return
	}
	if len(rows) == 0 {
		common.Reply(h.out, "No tickets sold yet")
		return
	}
	tw := h.table()
	common.Reply(tw, "MONTH\tTICKETS\tREVENUE")
	for _, m := range rows {
		common.Reply(tw, "%s\t%d\t%s", m.Month, m.Tickets, common.FormatAmount(m.Revenue))
	}
	tw.Flush()
}

// HandleExpenses: reports expenses [months]
func (h *Handler) HandleExpenses(ctx context.Context, sess *auth.Session, args []string) {
	rows, err := h.service.MonthlyExpenses(ctx, monthsArg(args))
	if err != nil {
		common.ReplyError(h.out, "Expenses report", err)
		return
	}
	if len(rows) == 0 {
		common.Reply(h.out, "No expenses recorded")
		return
	}
	tw := h.table()
	common.Reply(tw, "MONTH\tEXPENSES")
	for _, m := range rows {
		common.Reply(tw, "%s\t%s", m.Month, common.FormatAmount(m.Total))
	}
	tw.Flush()
}

// HandleIncome: reports income [from to]
func (h *Handler) HandleIncome(ctx context.Context, sess *auth.Session, args []string) {
	from, to, ok := h.parseRange(args)
	if !ok {
		return
	}
	t, err := h.service.IncomeVsExpense(ctx, from, to)
	if err != nil {
		common.ReplyError(h.out, "Income report", err)
		return
	}
	common.Reply(h.out, "📊 %s to %s", from.Format(common.DateLayout), to.Format(common.DateLayout))
	common.Reply(h.out, "Income:   %s", common.FormatAmount(t.Income))
	common.Reply(h.out, "Expenses: %s", common.FormatAmount(t.Expense))
	common.Reply(h.out, "Net:      %s", common.FormatAmount(t.Net()))
}

// HandleRoutes: reports routes [from to]
func (h *Handler) HandleRoutes(ctx context.Context, sess *auth.Session, args []string) {
	from, to, ok := h.parseRange(args)
	if !ok {
		return
	}
	rows, err := h.service.SalesByRoute(ctx, from, to)
	if err != nil {
		common.ReplyError(h.out, "Route report", err)
		return
	}
	if len(rows) == 0 {
		common.Reply(h.out, "No tickets sold between %s and %s", from.Format(common.DateLayout), to.Format(common.DateLayout))
		return
	}
	tw := h.table()
	common.Reply(tw, "ROUTE\tFROM\tTO\tTICKETS\tREVENUE")
	for _, r := range rows {
		common.Reply(tw, "%d\t%s\t%s\t%d\t%s", r.RouteID, r.Origin, r.Destination, r.Tickets, common.FormatAmount(r.Revenue))
	}
	tw.Flush()
}

// HandleCategories: reports categories [from to]
func (h *Handler) HandleCategories(ctx context.Context, sess *auth.Session, args []string) {
	from, to, ok := h.parseRange(args)
	if !ok {
		return
	}
	rows, err := h.service.ExpensesByCategory(ctx, from, to)
	if err != nil {
		common.ReplyError(h.out, "Category report", err)
		return
	}
	if len(rows) == 0 {
		common.Reply(h.out, "No purchases between %s and %s", from.Format(common.DateLayout), to.Format(common.DateLayout))
		return
	}
	tw := h.table()
	common.Reply(tw, "CATEGORY\tTOTAL")
	for _, c := range rows {
		common.Reply(tw, "%s\t%s", c.Category, common.FormatAmount(c.Total))
	}
	tw.Flush()
}

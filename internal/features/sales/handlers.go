// Package sales: handlers.go serves: sales seats, sales sell,
// sales customers, sales tickets.
package sales

import (
	"context"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/features/auth"
)

// Handler serves sales commands.
type Handler struct {
	service *Service
	out     io.Writer
	loc     *time.Location
}

// NewHandler creates the sales command handler. Travel dates are read in loc.
func NewHandler(service *Service, out io.Writer, loc *time.Location) *Handler {
	return &Handler{service: service, out: out, loc: loc}
}

// HandleSeats: sales seats <schedule_id> <date>
//
//	🚌 Schedule 3 on 2024-05-10: 21 of 24 seats free
//	Free: 1 2 3 ...
func (h *Handler) HandleSeats(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 2 {
		common.Reply(h.out, "❌ Usage: sales seats <schedule_id> <YYYY-MM-DD>")
		return
	}
	scheduleID, date, ok := h.parseDeparture(args[0], args[1])
	if !ok {
		return
	}

	a, err := h.service.Availability(ctx, scheduleID, date)
	if err != nil {
		common.ReplyError(h.out, "Seats", err)
		return
	}
	common.Reply(h.out, "🚌 Schedule %d on %s: %d of %d seats free",
		a.ScheduleID, a.TravelDate.Format(common.DateLayout), len(a.Free), a.Capacity)
	common.Reply(h.out, "Free: %s", joinInts(a.Free))
	if len(a.Occupied) > 0 {
		common.Reply(h.out, "Taken: %s", joinInts(a.Occupied))
	}
}

// HandleSell: sales sell <schedule_id> <date> <first> <last> <seats...>
// Seats may be separated by spaces or commas.
func (h *Handler) HandleSell(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 5 {
		common.Reply(h.out, `❌ Usage: sales sell <schedule_id> <YYYY-MM-DD> "<first>" "<last>" <seat> [seat...]`)
		return
	}
	scheduleID, date, ok := h.parseDeparture(args[0], args[1])
	if !ok {
		return
	}
	seats, err := parseSeats(args[4:])
	if err != nil {
		common.Reply(h.out, "❌ Seats must be numbers: %v", err)
		return
	}

	receipt, err := h.service.Sell(ctx, BookingRequest{
		FirstName:  args[2],
		LastName:   args[3],
		ScheduleID: scheduleID,
		TravelDate: date,
		Seats:      seats,
	})
	if err != nil {
		common.ReplyError(h.out, "Sale", err)
		return
	}

	common.Reply(h.out, "✅ Sold %s at %s each. Total: %s",
		common.Pluralize(len(receipt.Tickets), "ticket", "tickets"),
		common.FormatAmount(receipt.UnitPrice), common.FormatAmount(receipt.Total))
	for _, t := range receipt.Tickets {
		common.Reply(h.out, "   🎫 #%d seat %d", t.ID, t.SeatNumber)
	}
	common.Reply(h.out, "💰 Balance: %s", common.FormatAmount(receipt.Entry.Balance))
}

// HandleCustomers: sales customers [search]
func (h *Handler) HandleCustomers(ctx context.Context, sess *auth.Session, args []string) {
	customers, err := h.service.Customers(ctx, strings.Join(args, " "))
	if err != nil {
		common.ReplyError(h.out, "Customers", err)
		return
	}
	if len(customers) == 0 {
		common.Reply(h.out, "No customers found")
		return
	}
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	common.Reply(tw, "NAME\tTICKETS\tLAST PURCHASE\tTOTAL SPENT")
	for _, c := range customers {
		common.Reply(tw, "%s\t%d\t%s\t%s", common.FullName(c.FirstName, c.LastName),
			c.Tickets, common.FormatDateTime(c.LastPurchase), common.FormatAmount(c.TotalSpent))
	}
	tw.Flush()
}

// HandleTickets: sales tickets <first> <last>
func (h *Handler) HandleTickets(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 2 {
		common.Reply(h.out, `❌ Usage: sales tickets "<first>" "<last>"`)
		return
	}
	tickets, err := h.service.CustomerTickets(ctx, args[0], args[1])
	if err != nil {
		common.ReplyError(h.out, "Tickets", err)
		return
	}
	if len(tickets) == 0 {
		common.Reply(h.out, "No tickets for %s", common.FullName(args[0], args[1]))
		return
	}
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	common.Reply(tw, "TICKET\tSCHEDULE\tDATE\tSEAT\tPRICE")
	for _, t := range tickets {
		common.Reply(tw, "%d\t%d\t%s\t%d\t%s", t.ID, t.ScheduleID,
			t.TravelDate.Format(common.DateLayout), t.SeatNumber, common.FormatAmount(t.Price))
	}
	tw.Flush()
}

func (h *Handler) parseDeparture(idArg, dateArg string) (int64, time.Time, bool) {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil || id <= 0 {
		common.Reply(h.out, "❌ Schedule id must be a positive number")
		return 0, time.Time{}, false
	}
	date, err := common.ParseDate(dateArg, h.loc)
	if err != nil {
		common.Reply(h.out, "❌ %v", err)
		return 0, time.Time{}, false
	}
	return id, date, true
}

func parseSeats(args []string) ([]int, error) {
	var seats []int
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, err
			}
			seats = append(seats, n)
		}
	}
	return seats, nil
}

func joinInts(ns []int) string {
	if len(ns) == 0 {
		return "-"
	}
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

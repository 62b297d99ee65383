// Package fleet: handlers.go serves the inventory commands for assets:
// inventory buses, inventory add-bus, inventory computers, inventory add-computer.
package fleet

import (
	"context"
	"io"
	"strconv"
	"text/tabwriter"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/features/auth"
)

// Handler serves asset commands.
type Handler struct {
	service *Service
	out     io.Writer
}

// NewHandler creates the asset command handler.
func NewHandler(service *Service, out io.Writer) *Handler {
	return &Handler{service: service, out: out}
}

// HandleBuses lists the fleet.
func (h *Handler) HandleBuses(ctx context.Context, sess *auth.Session, args []string) {
	buses, err := h.service.Buses(ctx)
	if err != nil {
		common.ReplyError(h.out, "Buses", err)
		return
	}
	if len(buses) == 0 {
		common.Reply(h.out, "No buses registered")
		return
	}
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	common.Reply(tw, "ID\tBRAND\tMODEL\tYEAR\tSEATS\tSTATE")
	for _, b := range buses {
		common.Reply(tw, "%d\t%s\t%s\t%d\t%d\t%s", b.ID, b.Brand, b.Model, b.Year, b.Capacity, b.State)
	}
	tw.Flush()
}

// HandleAddBus: inventory add-bus <brand> <model> <year> [capacity] [state]
func (h *Handler) HandleAddBus(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 3 {
		common.Reply(h.out, "❌ Usage: inventory add-bus <brand> <model> <year> [capacity] [state]")
		return
	}
	year, err := strconv.Atoi(args[2])
	if err != nil {
		common.Reply(h.out, "❌ Year must be a number")
		return
	}
	req := BusRequest{Brand: args[0], Model: args[1], Year: year, State: StateNew}
	if len(args) > 3 {
		if req.Capacity, err = strconv.Atoi(args[3]); err != nil {
			common.Reply(h.out, "❌ Capacity must be a number")
			return
		}
	}
	if len(args) > 4 {
		req.State = args[4]
	}

	bus, entry, err := h.service.AddBus(ctx, req)
	if err != nil {
		common.ReplyError(h.out, "Add bus", err)
		return
	}
	common.Reply(h.out, "✅ Bus #%d %s %s (%d seats) registered for %s. Balance: %s",
		bus.ID, bus.Brand, bus.Model, bus.Capacity, common.FormatAmount(entry.Debit), common.FormatAmount(entry.Balance))
}

// HandleComputers lists office computers.
func (h *Handler) HandleComputers(ctx context.Context, sess *auth.Session, args []string) {
	computers, err := h.service.Computers(ctx)
	if err != nil {
		common.ReplyError(h.out, "Computers", err)
		return
	}
	if len(computers) == 0 {
		common.Reply(h.out, "No computers registered")
		return
	}
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	common.Reply(tw, "ID\tBRAND\tMODEL\tASSIGNED TO\tDEPARTMENT\tSTATE")
	for _, c := range computers {
		common.Reply(tw, "%d\t%s\t%s\t%s\t%s\t%s", c.ID, c.Brand, c.Model, orDash(c.AssignedTo), orDash(c.Department), c.State)
	}
	tw.Flush()
}

// HandleAddComputer: inventory add-computer <brand> <model> [assigned_to] [department] [state]
func (h *Handler) HandleAddComputer(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 2 {
		common.Reply(h.out, `❌ Usage: inventory add-computer <brand> <model> ["assigned to"] [department] [state]`)
		return
	}
	req := ComputerRequest{Brand: args[0], Model: args[1], State: StateNew}
	if len(args) > 2 {
		req.AssignedTo = args[2]
	}
	if len(args) > 3 {
		req.Department = args[3]
	}
	if len(args) > 4 {
		req.State = args[4]
	}
	c, err := h.service.AddComputer(ctx, req)
	if err != nil {
		common.ReplyError(h.out, "Add computer", err)
		return
	}
	common.Reply(h.out, "✅ Computer #%d %s %s registered", c.ID, c.Brand, c.Model)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

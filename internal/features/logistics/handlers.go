// Package logistics: handlers.go serves the logistics commands:
// routes, add-route, edit-route, del-route, schedules, add-schedule, del-schedule.
package logistics

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

type Handler struct {
	service *Service
	out     io.Writer
}

func NewHandler(service *Service, out io.Writer) *Handler {
	return &Handler{service: service, out: out}
}

func (h *Handler) HandleRoutes(ctx context.Context, sess *auth.Session, args []string) {
	routes, err := h.service.Routes(ctx)
	if err != nil {
		common.ReplyError(h.out, "Routes", err)
		return
	}
	if len(routes) == 0 {
		common.Reply(h.out, "No routes registered")
		return
	}
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	common.Reply(tw, "ID\tORIGIN\tDESTINATION\tKM\tDURATION\tFARE")
	for _, r := range routes {
		common.Reply(tw, "%d\t%s\t%s\t%.1f\t%s\t%s", r.ID, r.Origin, r.Destination, r.DistanceKm, r.Duration, common.FormatAmount(r.Price))
	}
	tw.Flush()
}

// parseRoute reads <origin> <destination> <km> <duration> <fare>.
func parseRoute(args []string) (RouteRequest, string) {
	km, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return RouteRequest{}, "Distance must be a number"
	}
	price, err := common.ParseAmount(args[4])
	if err != nil {
		return RouteRequest{}, "Fare must be a positive amount"
	}
	return RouteRequest{Origin: args[0], Destination: args[1], DistanceKm: km, Duration: args[3], Price: price}, ""
}

// HandleAddRoute: logistics add-route <origin> <destination> <km> <duration> <fare>
func (h *Handler) HandleAddRoute(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 5 {
		common.Reply(h.out, `❌ Usage: logistics add-route <origin> <destination> <km> "<duration>" <fare>`)
		return
	}
	req, problem := parseRoute(args)
	if problem != "" {
		common.Reply(h.out, "❌ %s", problem)
		return
	}
	rt, err := h.service.AddRoute(ctx, req)
	if err != nil {
		common.ReplyError(h.out, "Add route", err)
		return
	}
	common.Reply(h.out, "✅ Route #%d %s → %s added, fare %s", rt.ID, rt.Origin, rt.Destination, common.FormatAmount(rt.Price))
}

// HandleEditRoute: logistics edit-route <id> <origin> <destination> <km> <duration> <fare>
func (h *Handler) HandleEditRoute(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 6 {
		common.Reply(h.out, `❌ Usage: logistics edit-route <id> <origin> <destination> <km> "<duration>" <fare>`)
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		common.Reply(h.out, "❌ Route id must be a number")
		return
	}
	req, problem := parseRoute(args[1:])
	if problem != "" {
		common.Reply(h.out, "❌ %s", problem)
		return
	}
	if _, err := h.service.UpdateRoute(ctx, id, req); err != nil {
		common.ReplyError(h.out, "Edit route", err)
		return
	}
	common.Reply(h.out, "✅ Route #%d updated", id)
}

// HandleDeleteRoute: logistics del-route <id>
func (h *Handler) HandleDeleteRoute(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 1 {
		common.Reply(h.out, "❌ Usage: logistics del-route <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		common.Reply(h.out, "❌ Route id must be a number")
		return
	}
	if err := h.service.DeleteRoute(ctx, id); err != nil {
		common.ReplyError(h.out, "Delete route", err)
		return
	}
	common.Reply(h.out, "✅ Route #%d deleted", id)
}

// HandleSchedules: logistics schedules [route_id]
func (h *Handler) HandleSchedules(ctx context.Context, sess *auth.Session, args []string) {
	var routeID int64
	if len(args) > 0 {
		var err error
		if routeID, err = strconv.ParseInt(args[0], 10, 64); err != nil {
			common.Reply(h.out, "❌ Route id must be a number")
			return
		}
	}
	schedules, err := h.service.Schedules(ctx, routeID)
	if err != nil {
		common.ReplyError(h.out, "Schedules", err)
		return
	}
	if len(schedules) == 0 {
		common.Reply(h.out, "No schedules registered")
		return
	}
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	common.Reply(tw, "ID\tROUTE\tBUS\tDEPARTS\tARRIVES\tDAYS")
	for _, s := range schedules {
		common.Reply(tw, "%d\t%s → %s\t#%d %s\t%s\t%s\t%s", s.ID, s.Origin, s.Destination, s.BusID, s.Bus, s.Departure, s.Arrival, s.Days)
	}
	tw.Flush()
}

// HandleAddSchedule: logistics add-schedule <route_id> <bus_id> <HH:MM> <HH:MM> <days>
func (h *Handler) HandleAddSchedule(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 5 {
		common.Reply(h.out, `❌ Usage: logistics add-schedule <route_id> <bus_id> <departs HH:MM> <arrives HH:MM> "<days>"`)
		return
	}
	routeID, err1 := strconv.ParseInt(args[0], 10, 64)
	busID, err2 := strconv.ParseInt(args[1], 10, 64)
	if err1 != nil || err2 != nil {
		common.Reply(h.out, "❌ Route and bus ids must be numbers")
		return
	}
	req := ScheduleRequest{
		RouteID:   routeID,
		BusID:     busID,
		Departure: args[2],
		Arrival:   args[3],
		Days:      strings.Join(args[4:], " "),
	}
	sch, err := h.service.AddSchedule(ctx, req)
	if err != nil {
		common.ReplyError(h.out, "Add schedule", err)
		return
	}
	common.Reply(h.out, "✅ Schedule #%d added: route #%d, bus #%d, %s-%s (%s)",
		sch.ID, sch.RouteID, sch.BusID, sch.Departure, sch.Arrival, sch.Days)
}

// HandleDeleteSchedule: logistics del-schedule <id> [--force]
func (h *Handler) HandleDeleteSchedule(ctx context.Context, sess *auth.Session, args []string) {
	if len(args) < 1 {
		common.Reply(h.out, "❌ Usage: logistics del-schedule <id> [--force]")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		common.Reply(h.out, "❌ Schedule id must be a number")
		return
	}
	force := len(args) > 1 && args[1] == "--force"

	removed, err := h.service.DeleteSchedule(ctx, id, force)
	if err != nil {
		common.ReplyError(h.out, "Delete schedule", err)
		if errors.Is(err, common.ErrScheduleHasTickets) {
			common.Reply(h.out, "Repeat with --force to delete the schedule and its tickets")
		}
		return
	}
	if removed > 0 {
		common.Reply(h.out, "✅ Schedule #%d deleted with %s", id, common.Pluralize(removed, "ticket", "tickets"))
		return
	}
	common.Reply(h.out, "✅ Schedule #%d deleted", id)
}

// Package logistics: service.go validates routes and schedules and guards
// deletions that would orphan schedules or sold tickets.
package logistics

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/db/postgres"
)

// Service manages routes and schedules.
type Service struct {
	db   postgres.DB
	repo *Repository
}

func NewService(db postgres.DB, repo *Repository) *Service {
	return &Service{db: db, repo: repo}
}

func routeFrom(req RouteRequest) *Route {
	return &Route{
		Origin:      strings.TrimSpace(req.Origin),
		Destination: strings.TrimSpace(req.Destination),
		DistanceKm:  req.DistanceKm,
		Duration:    strings.TrimSpace(req.Duration),
		Price:       req.Price,
	}
}

// AddRoute creates a route. Distance and fare must be positive.
func (s *Service) AddRoute(ctx context.Context, req RouteRequest) (*Route, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	rt := routeFrom(req)
	if err := s.repo.InsertRoute(ctx, rt); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"route_id": rt.ID, "origin": rt.Origin, "destination": rt.Destination}).Info("Route added")
	return rt, nil
}

// UpdateRoute replaces every field of route id.
func (s *Service) UpdateRoute(ctx context.Context, id int64, req RouteRequest) (*Route, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	rt := routeFrom(req)
	rt.ID = id
	if err := s.repo.UpdateRoute(ctx, rt); err != nil {
		return nil, err
	}
	log.WithField("route_id", id).Info("Route updated")
	return rt, nil
}

// DeleteRoute removes a route that has no schedules.
func (s *Service) DeleteRoute(ctx context.Context, id int64) error {
	err := postgres.InTx(ctx, s.db, func(tx pgx.Tx) error {
		n, err := s.repo.schedulesOfRoute(ctx, tx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: %s", common.ErrRouteHasSchedules, common.Pluralize(n, "schedule", "schedules"))
		}
		deleted, err := s.repo.deleteRoute(ctx, tx, id)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return common.ErrRouteNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.WithField("route_id", id).Info("Route deleted")
	return nil
}

func (s *Service) Routes(ctx context.Context) ([]*Route, error) {
	return s.repo.ListRoutes(ctx)
}

// AddSchedule puts a bus on a route at fixed times.
func (s *Service) AddSchedule(ctx context.Context, req ScheduleRequest) (*Schedule, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	sch := &Schedule{
		RouteID:   req.RouteID,
		BusID:     req.BusID,
		Departure: req.Departure,
		Arrival:   req.Arrival,
		Days:      strings.TrimSpace(req.Days),
	}
	err := postgres.InTx(ctx, s.db, func(tx pgx.Tx) error {
		ok, err := s.repo.routeExists(ctx, tx, req.RouteID)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrRouteNotFound
		}
		if ok, err = s.repo.busExists(ctx, tx, req.BusID); err != nil {
			return err
		}
		if !ok {
			return common.ErrBusNotFound
		}
		return s.repo.insertSchedule(ctx, tx, sch)
	})
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"schedule_id": sch.ID, "route_id": sch.RouteID, "bus_id": sch.BusID}).Info("Schedule added")
	return sch, nil
}

// DeleteSchedule removes a schedule. If tickets were sold for it the call
// fails with ErrScheduleHasTickets unless force is set, in which case the
// tickets go too. Returns the number of tickets removed.
func (s *Service) DeleteSchedule(ctx context.Context, id int64, force bool) (int, error) {
	var tickets int
	err := postgres.InTx(ctx, s.db, func(tx pgx.Tx) error {
		ok, err := s.repo.scheduleExists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrScheduleNotFound
		}
		if tickets, err = s.repo.ticketsOfSchedule(ctx, tx, id); err != nil {
			return err
		}
		if tickets > 0 {
			if !force {
				return fmt.Errorf("%w: %s", common.ErrScheduleHasTickets, common.Pluralize(tickets, "ticket", "tickets"))
			}
			if err := s.repo.deleteTickets(ctx, tx, id); err != nil {
				return err
			}
		}
		return s.repo.deleteSchedule(ctx, tx, id)
	})
	if err != nil {
		return 0, err
	}
	log.WithFields(log.Fields{"schedule_id": id, "tickets_removed": tickets}).Info("Schedule deleted")
	return tickets, nil
}

// Schedules lists schedules, optionally of one route.
func (s *Service) Schedules(ctx context.Context, routeID int64) ([]*Schedule, error) {
	return s.repo.ListSchedules(ctx, routeID)
}

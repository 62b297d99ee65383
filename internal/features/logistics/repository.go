// Package logistics: repository.go works with the routes and schedules
// tables.
package logistics

import (
	"context"
	"fmt"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) InsertRoute(ctx context.Context, rt *Route) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO routes (origin, destination, distance_km, duration, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, rt.Origin, rt.Destination, rt.DistanceKm, rt.Duration, rt.Price).Scan(&rt.ID)
	if err != nil {
		return fmt.Errorf("insert route: %w", err)
	}
	return nil
}

func (r *Repository) UpdateRoute(ctx context.Context, rt *Route) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE routes
		SET origin = $2, destination = $3, distance_km = $4, duration = $5, price = $6
		WHERE id = $1
	`, rt.ID, rt.Origin, rt.Destination, rt.DistanceKm, rt.Duration, rt.Price)
	if err != nil {
		return fmt.Errorf("update route %d: %w", rt.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrRouteNotFound
	}
	return nil
}

func (r *Repository) ListRoutes(ctx context.Context) ([]*Route, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, origin, destination, distance_km, duration, price FROM routes ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	var out []*Route
	for rows.Next() {
		var rt Route
		if err := rows.Scan(&rt.ID, &rt.Origin, &rt.Destination, &rt.DistanceKm, &rt.Duration, &rt.Price); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		out = append(out, &rt)
	}
	return out, rows.Err()
}

func (r *Repository) exists(ctx context.Context, q postgres.Querier, query string, id int64) (bool, error) {
	var ok bool
	if err := q.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("check existence: %w", err)
	}
	return ok, nil
}

func (r *Repository) routeExists(ctx context.Context, q postgres.Querier, id int64) (bool, error) {
	return r.exists(ctx, q, `SELECT EXISTS(SELECT 1 FROM routes WHERE id = $1)`, id)
}

func (r *Repository) busExists(ctx context.Context, q postgres.Querier, id int64) (bool, error) {
	return r.exists(ctx, q, `SELECT EXISTS(SELECT 1 FROM buses WHERE id = $1)`, id)
}

func (r *Repository) scheduleExists(ctx context.Context, q postgres.Querier, id int64) (bool, error) {
	return r.exists(ctx, q, `SELECT EXISTS(SELECT 1 FROM schedules WHERE id = $1)`, id)
}

func (r *Repository) count(ctx context.Context, q postgres.Querier, query string, id int64) (int, error) {
	var n int
	if err := q.QueryRow(ctx, query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func (r *Repository) schedulesOfRoute(ctx context.Context, q postgres.Querier, routeID int64) (int, error) {
	return r.count(ctx, q, `SELECT COUNT(*) FROM schedules WHERE route_id = $1`, routeID)
}

func (r *Repository) ticketsOfSchedule(ctx context.Context, q postgres.Querier, scheduleID int64) (int, error) {
	return r.count(ctx, q, `SELECT COUNT(*) FROM tickets WHERE schedule_id = $1`, scheduleID)
}

func (r *Repository) deleteRoute(ctx context.Context, q postgres.Querier, id int64) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete route %d: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) deleteTickets(ctx context.Context, q postgres.Querier, scheduleID int64) error {
	if _, err := q.Exec(ctx, `DELETE FROM tickets WHERE schedule_id = $1`, scheduleID); err != nil {
		return fmt.Errorf("delete tickets of schedule %d: %w", scheduleID, err)
	}
	return nil
}

func (r *Repository) deleteSchedule(ctx context.Context, q postgres.Querier, id int64) error {
	if _, err := q.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete schedule %d: %w", id, err)
	}
	return nil
}

func (r *Repository) insertSchedule(ctx context.Context, q postgres.Querier, s *Schedule) error {
	err := q.QueryRow(ctx, `
		INSERT INTO schedules (route_id, bus_id, departure, arrival, days)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, s.RouteID, s.BusID, s.Departure, s.Arrival, s.Days).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}

// ListSchedules returns schedules with route and bus details. routeID 0
// lists all.
func (r *Repository) ListSchedules(ctx context.Context, routeID int64) ([]*Schedule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.route_id, s.bus_id, s.departure, s.arrival, s.days,
		       r.origin, r.destination, b.brand || ' ' || b.model
		FROM schedules s
		JOIN routes r ON r.id = s.route_id
		JOIN buses b ON b.id = s.bus_id
		WHERE $1 = 0 OR s.route_id = $1
		ORDER BY s.route_id, s.departure
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var out []*Schedule
	for rows.Next() {
		var s Schedule
		if err := rows.Scan(&s.ID, &s.RouteID, &s.BusID, &s.Departure, &s.Arrival, &s.Days,
			&s.Origin, &s.Destination, &s.Bus); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

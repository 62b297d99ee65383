package reports

import (
	"context"
	"fmt"
	"time"

	"busline.mx/erp/internal/db/postgres"
)

type Repository struct {
	db  postgres.Querier
	loc *time.Location
}

// NewRepository creates the report queries; months are calendar months
// in loc.
func NewRepository(db postgres.Querier, loc *time.Location) *Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &Repository{db: db, loc: loc}
}

func (r *Repository) EmployeesByDepartment(ctx context.Context) ([]DepartmentHeadcount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT department, COUNT(*), COALESCE(SUM(salary), 0)
		FROM employees
		WHERE active
		GROUP BY department
		ORDER BY department
	`)
	if err != nil {
		return nil, fmt.Errorf("employees by department: %w", err)
	}
	defer rows.Close()

	var out []DepartmentHeadcount
	for rows.Next() {
		var d DepartmentHeadcount
		if err := rows.Scan(&d.Department, &d.Employees, &d.Payroll); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repository) BusesByState(ctx context.Context) ([]BusesByState, error) {
	rows, err := r.db.Query(ctx, `
		SELECT state, COUNT(*) FROM buses GROUP BY state ORDER BY state
	`)
	if err != nil {
		return nil, fmt.Errorf("buses by state: %w", err)
	}
	defer rows.Close()

	var out []BusesByState
	for rows.Next() {
		var b BusesByState
		if err := rows.Scan(&b.State, &b.Buses); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// MonthlySales groups tickets by the month they were sold, newest first.
func (r *Repository) MonthlySales(ctx context.Context, months int) ([]MonthlySales, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(sold_at AT TIME ZONE $2, 'YYYY-MM') AS month, COUNT(*), COALESCE(SUM(price), 0)
		FROM tickets
		GROUP BY month
		ORDER BY month DESC
		LIMIT $1
	`, months, r.loc.String())
	if err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}
	defer rows.Close()

	var out []MonthlySales
	for rows.Next() {
		var m MonthlySales
		if err := rows.Scan(&m.Month, &m.Tickets, &m.Revenue); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SalesByRoute sums tickets sold in [from, to) per route, best seller first.
func (r *Repository) SalesByRoute(ctx context.Context, from, to time.Time) ([]RouteSales, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.origin, r.destination, COUNT(t.id), COALESCE(SUM(t.price), 0)
		FROM tickets t
		JOIN schedules s ON s.id = t.schedule_id
		JOIN routes r ON r.id = s.route_id
		WHERE t.sold_at >= $1 AND t.sold_at < $2
		GROUP BY r.id, r.origin, r.destination
		ORDER BY COUNT(t.id) DESC, r.id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by route: %w", err)
	}
	defer rows.Close()

	var out []RouteSales
	for rows.Next() {
		var rs RouteSales
		if err := rows.Scan(&rs.RouteID, &rs.Origin, &rs.Destination, &rs.Tickets, &rs.Revenue); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

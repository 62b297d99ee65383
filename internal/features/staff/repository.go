// Package staff: repository.go works with the employees and
// salary_payments tables.
package staff

import (
	"context"
	"fmt"
	"time"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/db/postgres"
	"busline.mx/erp/internal/features/auth"
)

// Repository works with employees and payments.
type Repository struct {
	db postgres.DB
}

// NewRepository creates the staff repository.
func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

const employeeColumns = `id, first_name, last_name, age, position, department, salary, hired_at, active, terminated_at`

func scanEmployee(row interface{ Scan(dest ...any) error }) (*Employee, error) {
	var e Employee
	var dept string
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Age, &e.Position, &dept,
		&e.Salary, &e.HiredAt, &e.Active, &e.TerminatedAt)
	if err != nil {
		return nil, err
	}
	e.Department = auth.Department(dept)
	return &e, nil
}

// Insert stores e and fills its ID.
func (r *Repository) Insert(ctx context.Context, q postgres.Querier, e *Employee) error {
	err := q.QueryRow(ctx, `
		INSERT INTO employees (first_name, last_name, age, position, department, salary, hired_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING id
	`, e.FirstName, e.LastName, e.Age, e.Position, string(e.Department), e.Salary, e.HiredAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// Get returns ErrEmployeeNotFound for an unknown id. forUpdate locks the
// row until the transaction ends.
func (r *Repository) Get(ctx context.Context, q postgres.Querier, id int64, forUpdate bool) (*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if postgres.IsNoRows(err) {
		return nil, fmt.Errorf("%w (id=%d)", common.ErrEmployeeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("read employee %d: %w", id, err)
	}
	return e, nil
}

// Deactivate marks an employee terminated. The row stays.
func (r *Repository) Deactivate(ctx context.Context, q postgres.Querier, id int64, at time.Time) error {
	if _, err := q.Exec(ctx,
		`UPDATE employees SET active = FALSE, terminated_at = $2 WHERE id = $1`, id, at,
	); err != nil {
		return fmt.Errorf("deactivate employee %d: %w", id, err)
	}
	return nil
}

// List returns employees matching filter ordered by id.
func (r *Repository) List(ctx context.Context, filter Filter) ([]*Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	switch filter {
	case FilterActive:
		query += ` WHERE active`
	case FilterTerminated:
		query += ` WHERE NOT active`
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// InsertPayment stores p and fills its ID.
func (r *Repository) InsertPayment(ctx context.Context, q postgres.Querier, p *Payment) error {
	err := q.QueryRow(ctx, `
		INSERT INTO salary_payments (employee_id, amount, paid_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, p.EmployeeID, p.Amount, p.PaidAt).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert salary payment: %w", err)
	}
	return nil
}

// RecentPayments returns the latest payments with the employee name.
func (r *Repository) RecentPayments(ctx context.Context, limit int) ([]Payment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.employee_id, p.amount, p.paid_at, e.first_name || ' ' || e.last_name
		FROM salary_payments p
		JOIN employees e ON e.id = p.employee_id
		ORDER BY p.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.Amount, &p.PaidAt, &p.Name); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

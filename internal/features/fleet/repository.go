// Package fleet: repository.go works with the buses and computers tables.
package fleet

import (
	"context"
	"fmt"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/db/postgres"
)

// Repository works with buses and computers.
type Repository struct {
	db postgres.DB
}

// NewRepository creates the fleet repository.
func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

// InsertBus stores b and fills its ID.
func (r *Repository) InsertBus(ctx context.Context, q postgres.Querier, b *Bus) error {
	err := q.QueryRow(ctx, `
		INSERT INTO buses (brand, model, year, capacity, state, acquired_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, b.Brand, b.Model, b.Year, b.Capacity, b.State, b.AcquiredAt).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert bus: %w", err)
	}
	return nil
}

// GetBus returns ErrBusNotFound for an unknown id.
func (r *Repository) GetBus(ctx context.Context, id int64) (*Bus, error) {
	var b Bus
	err := r.db.QueryRow(ctx, `
		SELECT id, brand, model, year, capacity, state, acquired_at
		FROM buses WHERE id = $1
	`, id).Scan(&b.ID, &b.Brand, &b.Model, &b.Year, &b.Capacity, &b.State, &b.AcquiredAt)
	if postgres.IsNoRows(err) {
		return nil, common.ErrBusNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read bus %d: %w", id, err)
	}
	return &b, nil
}

// ListBuses returns every bus ordered by id.
func (r *Repository) ListBuses(ctx context.Context) ([]*Bus, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, brand, model, year, capacity, state, acquired_at
		FROM buses ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list buses: %w", err)
	}
	defer rows.Close()

	var out []*Bus
	for rows.Next() {
		var b Bus
		if err := rows.Scan(&b.ID, &b.Brand, &b.Model, &b.Year, &b.Capacity, &b.State, &b.AcquiredAt); err != nil {
			return nil, fmt.Errorf("scan bus: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// InsertComputer stores c and fills its ID.
func (r *Repository) InsertComputer(ctx context.Context, q postgres.Querier, c *Computer) error {
	err := q.QueryRow(ctx, `
		INSERT INTO computers (brand, model, assigned_to, department, state)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, c.Brand, c.Model, c.AssignedTo, c.Department, c.State).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert computer: %w", err)
	}
	return nil
}

// ListComputers returns every computer ordered by id.
func (r *Repository) ListComputers(ctx context.Context) ([]*Computer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, brand, model, assigned_to, department, state
		FROM computers ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list computers: %w", err)
	}
	defer rows.Close()

	var out []*Computer
	for rows.Next() {
		var c Computer
		if err := rows.Scan(&c.ID, &c.Brand, &c.Model, &c.AssignedTo, &c.Department, &c.State); err != nil {
			return nil, fmt.Errorf("scan computer: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

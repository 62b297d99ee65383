package suppliers

import (
	"context"
	"fmt"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/db/postgres"
)

// Repository works with the suppliers table.
type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, q postgres.Querier, s *Supplier) error {
	err := q.QueryRow(ctx, `
		INSERT INTO suppliers (name, kind, contact, phone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, s.Name, s.Kind, s.Contact, s.Phone, s.Email).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// Get returns ErrSupplierNotFound for an unknown id.
func (r *Repository) Get(ctx context.Context, q postgres.Querier, id int64) (*Supplier, error) {
	var s Supplier
	err := q.QueryRow(ctx, `
		SELECT id, name, kind, contact, phone, email FROM suppliers WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.Kind, &s.Contact, &s.Phone, &s.Email)
	if postgres.IsNoRows(err) {
		return nil, common.ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read supplier %d: %w", id, err)
	}
	return &s, nil
}

func (r *Repository) List(ctx context.Context) ([]*Supplier, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, kind, contact, phone, email FROM suppliers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var out []*Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Kind, &s.Contact, &s.Phone, &s.Email); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *Repository) Count(ctx context.Context, q postgres.Querier) (int, error) {
	var n int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM suppliers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count suppliers: %w", err)
	}
	return n, nil
}

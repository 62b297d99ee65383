package procurement

import (
	"context"
	"fmt"
	"time"

	"busline.mx/erp/internal/db/postgres"
)

// Repository works with the purchases table.
type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, q postgres.Querier, p *Purchase) error {
	err := q.QueryRow(ctx, `
		INSERT INTO purchases (supplier_id, product_type, description, quantity, unit_price, total, purchased_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.SupplierID, p.ProductType, p.Description, p.Quantity, p.UnitPrice, p.Total, p.PurchasedAt).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// Recent returns the latest purchases with the supplier name.
func (r *Repository) Recent(ctx context.Context, limit int) ([]Purchase, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.supplier_id, s.name, p.product_type, p.description,
		       p.quantity, p.unit_price, p.total, p.purchased_at
		FROM purchases p
		JOIN suppliers s ON s.id = p.supplier_id
		ORDER BY p.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.SupplierID, &p.SupplierName, &p.ProductType, &p.Description,
			&p.Quantity, &p.UnitPrice, &p.Total, &p.PurchasedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ByCategory sums purchase totals per product type in [from, to).
func (r *Repository) ByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_type, SUM(total)
		FROM purchases
		WHERE purchased_at >= $1 AND purchased_at < $2
		GROUP BY product_type
		ORDER BY SUM(total) DESC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("purchases by category: %w", err)
	}
	defer rows.Close()

	var out []CategoryTotal
	for rows.Next() {
		var c CategoryTotal
		if err := rows.Scan(&c.Category, &c.Total); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

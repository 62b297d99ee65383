// Package inventory: repository.go works with inventory_items and
// inventory_withdrawals.
package inventory

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

// AddStock adds qty to the item called name, creating it if needed, and
// returns the item as stored.
func (r *Repository) AddStock(ctx context.Context, q postgres.Querier, name, category string, qty int) (*Item, error) {
	it := Item{Name: name, Category: category}
	err := q.QueryRow(ctx, `
		INSERT INTO inventory_items (name, category, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET quantity = inventory_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity
	`, name, category, qty).Scan(&it.ID, &it.Quantity)
	if err != nil {
		return nil, fmt.Errorf("add stock %q: %w", name, err)
	}
	return &it, nil
}

// lockItem reads an item and locks its row for the transaction.
func (r *Repository) lockItem(ctx context.Context, q postgres.Querier, id int64) (*Item, error) {
	var it Item
	err := q.QueryRow(ctx, `
		SELECT id, name, category, quantity FROM inventory_items WHERE id = $1 FOR UPDATE
	`, id).Scan(&it.ID, &it.Name, &it.Category, &it.Quantity)
	if postgres.IsNoRows(err) {
		return nil, common.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read item %d: %w", id, err)
	}
	return &it, nil
}

func (r *Repository) decrement(ctx context.Context, q postgres.Querier, id int64, qty int) error {
	if _, err := q.Exec(ctx, `UPDATE inventory_items SET quantity = quantity - $2 WHERE id = $1`, id, qty); err != nil {
		return fmt.Errorf("update stock %d: %w", id, err)
	}
	return nil
}

func (r *Repository) insertWithdrawal(ctx context.Context, q postgres.Querier, w *Withdrawal) error {
	err := q.QueryRow(ctx, `
		INSERT INTO inventory_withdrawals (item_id, quantity, requested_by, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, w.ItemID, w.Quantity, w.RequestedBy, w.CreatedAt).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]*Item, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, category, quantity FROM inventory_items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// Withdrawals returns the latest withdrawals, newest first.
func (r *Repository) Withdrawals(ctx context.Context, limit int) ([]Withdrawal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT w.id, w.item_id, i.name, w.quantity, w.requested_by, w.created_at
		FROM inventory_withdrawals w
		JOIN inventory_items i ON i.id = w.item_id
		ORDER BY w.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()

	var out []Withdrawal
	for rows.Next() {
		var w Withdrawal
		if err := rows.Scan(&w.ID, &w.ItemID, &w.ItemName, &w.Quantity, &w.RequestedBy, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan withdrawal: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

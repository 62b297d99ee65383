// Package inventory tracks consumable stock (cleaning products, spare parts)
// and who withdrew it.
package inventory

import "time"

// Item is a row of inventory_items. Name is unique.
type Item struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Category string `db:"category"`
	Quantity int    `db:"quantity"`
}

// Withdrawal records stock taken out of the warehouse.
type Withdrawal struct {
	ID          int64     `db:"id"`
	ItemID      int64     `db:"item_id"`
	ItemName    string    `db:"-"`
	Quantity    int       `db:"quantity"`
	RequestedBy string    `db:"requested_by"`
	CreatedAt   time.Time `db:"created_at"`
}

// WithdrawRequest is the withdrawal form.
type WithdrawRequest struct {
	ItemID      int64  `validate:"gt=0"`
	Quantity    int    `validate:"gt=0"`
	RequestedBy string `validate:"required,max=120"`
}

// Package procurement registers purchases from suppliers. Each purchase is
// paid from the ledger and, depending on what was bought, lands in the fleet
// or in the warehouse.
package procurement

import "time"

// Product types a purchase can be filed under.
const (
	TypeBus      = "bus"
	TypeComputer = "computer"
	TypeSupplies = "supplies"
	TypeOther    = "other"
)

// Purchase is a row of the purchases table.
type Purchase struct {
	ID           int64     `db:"id"`
	SupplierID   int64     `db:"supplier_id"`
	SupplierName string    `db:"-"`
	ProductType  string    `db:"product_type"`
	Description  string    `db:"description"`
	Quantity     int       `db:"quantity"`
	UnitPrice    int64     `db:"unit_price"`
	Total        int64     `db:"total"`
	PurchasedAt  time.Time `db:"purchased_at"`
}

// PurchaseRequest is the purchase form.
type PurchaseRequest struct {
	SupplierID  int64  `validate:"gt=0"`
	ProductType string `validate:"required,oneof=bus computer supplies other"`
	Description string `validate:"required,max=200"`
	Quantity    int    `validate:"gt=0,lte=10000"`
	UnitPrice   int64  `validate:"gt=0"`
}

// CategoryTotal sums purchases of one product type.
type CategoryTotal struct {
	Category string
	Total    int64
}

// Package suppliers keeps the companies the business buys from.
package suppliers

// Supplier is a row of the suppliers table.
type Supplier struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Kind    string `db:"kind"`
	Contact string `db:"contact"`
	Phone   string `db:"phone"`
	Email   string `db:"email"`
}

// SupplierRequest is the form for a new supplier.
type SupplierRequest struct {
	Name    string `validate:"required,max=100"`
	Kind    string `validate:"required,max=60"`
	Contact string `validate:"max=100"`
	Phone   string `validate:"max=30"`
	Email   string `validate:"omitempty,email"`
}

// Defaults are inserted into an empty suppliers table.
var Defaults = []SupplierRequest{
	{Name: "Volvo", Kind: "buses", Contact: "Juan Pérez", Phone: "555-1234", Email: "ventas@volvo.com"},
	{Name: "Mercedes Benz", Kind: "buses", Contact: "María López", Phone: "555-5678", Email: "ventas@mercedes.com"},
	{Name: "HP", Kind: "computers", Contact: "Carlos Rodríguez", Phone: "555-9876", Email: "ventas@hp.com"},
	{Name: "Dell", Kind: "computers", Contact: "Ana García", Phone: "555-5432", Email: "ventas@dell.com"},
}

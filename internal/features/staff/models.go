// Package staff manages employees: hiring with account creation,
// soft termination, and salary payments charged to the ledger.
package staff

import (
	"sort"
	"time"

	"busline.mx/erp/internal/features/auth"
)

// Position is a job title. Department is explicit; it is never guessed
// from the title.
type Position struct {
	Code       string
	Title      string
	Department auth.Department
	// Driver positions get no user account.
	Driver bool
}

// Positions offered by the company, keyed by code.
var Positions = map[string]Position{
	"driver":     {Code: "driver", Title: "Driver", Department: auth.DeptLogistics, Driver: true},
	"hr":         {Code: "hr", Title: "HR Agent", Department: auth.DeptHR},
	"finance":    {Code: "finance", Title: "Finance Agent", Department: auth.DeptFinance},
	"inventory":  {Code: "inventory", Title: "Inventory Agent", Department: auth.DeptInventory},
	"purchasing": {Code: "purchasing", Title: "Purchasing Agent", Department: auth.DeptPurchasing},
	"suppliers":  {Code: "suppliers", Title: "Suppliers Agent", Department: auth.DeptSuppliers},
	"sales":      {Code: "sales", Title: "Sales Agent", Department: auth.DeptSales},
	"logistics":  {Code: "logistics", Title: "Logistics Agent", Department: auth.DeptLogistics},
}

// PositionCodes returns the position codes sorted.
func PositionCodes() []string {
	codes := make([]string, 0, len(Positions))
	for c := range Positions {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Employee is a row of the employees table. Terminated employees stay with
// Active=false.
type Employee struct {
	ID           int64           `db:"id"`
	FirstName    string          `db:"first_name"`
	LastName     string          `db:"last_name"`
	Age          int             `db:"age"`
	Position     string          `db:"position"`
	Department   auth.Department `db:"department"`
	Salary       int64           `db:"salary"`
	HiredAt      time.Time       `db:"hired_at"`
	Active       bool            `db:"active"`
	TerminatedAt *time.Time      `db:"terminated_at"`
}

// HireRequest holds the hiring form.
type HireRequest struct {
	FirstName string `validate:"required,max=60"`
	LastName  string `validate:"required,max=60"`
	Age       int    `validate:"gte=18,lte=70"`
	Position  string `validate:"required"`
	Salary    int64  `validate:"gt=0"`
}

// Hire is the result of hiring. Credentials is nil for drivers.
type Hire struct {
	Employee    *Employee
	Credentials *auth.Credentials
}

// Payment is one salary disbursement.
type Payment struct {
	ID         int64     `db:"id"`
	EmployeeID int64     `db:"employee_id"`
	Amount     int64     `db:"amount"`
	PaidAt     time.Time `db:"paid_at"`
	// Name is filled by listings.
	Name string `db:"-"`
}

// Filter selects employees by status.
type Filter string

const (
	FilterActive     Filter = "active"
	FilterTerminated Filter = "terminated"
	FilterAll        Filter = "all"
)

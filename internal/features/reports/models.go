// Package reports holds the read-only aggregations shown in the reports area.
// Nothing here writes.
package reports

import "busline.mx/erp/internal/features/finance"

// DepartmentHeadcount is active staff and payroll of one department.
type DepartmentHeadcount struct {
	Department string
	Employees  int
	Payroll    int64
}

// BusesByState counts the fleet per state.
type BusesByState struct {
	State string
	Buses int
}

// MonthlySales is tickets sold in one calendar month.
type MonthlySales struct {
	Month   string
	Tickets int
	Revenue int64
}

// RouteSales is tickets sold on one route.
type RouteSales struct {
	RouteID     int64
	Origin      string
	Destination string
	Tickets     int
	Revenue     int64
}

// Overview bundles the figures printed by "reports summary".
type Overview struct {
	Headcount []DepartmentHeadcount
	Fleet     []BusesByState
	Balance   int64
	Totals    finance.Totals
}

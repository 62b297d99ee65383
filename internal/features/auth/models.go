// Package auth authenticates operators and decides which department
// modules a session may open.
// models.go describes users, roles, departments and sessions.
package auth

import (
	"fmt"
	"time"

	"busline.mx/erp/internal/common"
)

// Role of a user account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHead     Role = "head"
	RoleEmployee Role = "employee"
)

// Department is a business area of the company. Every console module
// belongs to exactly one.
type Department string

const (
	DeptHR         Department = "hr"
	DeptFinance    Department = "finance"
	DeptInventory  Department = "inventory"
	DeptPurchasing Department = "purchasing"
	DeptSuppliers  Department = "suppliers"
	DeptSales      Department = "sales"
	DeptLogistics  Department = "logistics"
	// DeptReports is only open to administrators.
	DeptReports Department = "reports"
	// DeptAll is the department of administrators.
	DeptAll Department = "all"
)

// Departments lists the operational departments in menu order.
var Departments = []Department{
	DeptHR, DeptFinance, DeptInventory, DeptPurchasing, DeptSuppliers, DeptSales, DeptLogistics,
}

// ParseDepartment accepts one of the operational department names.
func ParseDepartment(s string) (Department, bool) {
	for _, d := range Departments {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// User is a row of the users table.
type User struct {
	ID           int64      `db:"id"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Username     string     `db:"username"`
	PasswordHash string     `db:"password_hash"`
	Role         Role       `db:"role"`
	Department   Department `db:"department"`
	EmployeeID   *int64     `db:"employee_id"`
	CreatedAt    time.Time  `db:"created_at"`
}

// Session is the logged-in operator. The console holds it and passes it to
// every handler.
type Session struct {
	ID         string
	UserID     int64
	Username   string
	FullName   string
	Role       Role
	Department Department
	ExpiresAt  time.Time
}

// Valid reports whether the session has not expired.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && now.Before(s.ExpiresAt)
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// CanAccess reports whether the session may open a module of dept.
// Administrators open everything; others only their own department.
func (s *Session) CanAccess(dept Department) bool {
	if s == nil {
		return false
	}
	if s.Role == RoleAdmin {
		return true
	}
	return dept != DeptReports && s.Department == dept
}

// HeadRequest creates a department head account.
type HeadRequest struct {
	FirstName  string     `validate:"required,max=50"`
	LastName   string     `validate:"required,max=50"`
	Username   string     `validate:"required,alphanum,min=3,max=30"`
	Password   string     `validate:"required"`
	Department Department `validate:"required"`
}

// Credentials are generated for a new employee account and shown once.
type Credentials struct {
	Username string
	Password string
}

// Describe is a one-line summary of a session for whoami.
func (s *Session) Describe() string {
	return fmt.Sprintf("%s (%s) role=%s department=%s, session until %s",
		s.FullName, s.Username, s.Role, s.Department, common.FormatDateTime(s.ExpiresAt))
}

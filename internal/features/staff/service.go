// Package staff: service.go holds hiring, termination and the payroll
// disburser. Each is one transaction.
package staff

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/db/postgres"
	"busline.mx/erp/internal/features/auth"
	"busline.mx/erp/internal/features/finance"
)

// Service manages employees.
type Service struct {
	db     postgres.DB
	repo   *Repository
	ledger *finance.Repository
	auth   *auth.Service
	now    func() time.Time
}

// NewService creates the staff service.
func NewService(db postgres.DB, repo *Repository, ledger *finance.Repository, authService *auth.Service, loc *time.Location) *Service {
	return &Service{db: db, repo: repo, ledger: ledger, auth: authService, now: common.Clock(loc)}
}

// Hire stores a new employee. Non-driver positions also get a user account
// in the position's department; its generated credentials are returned once.
func (s *Service) Hire(ctx context.Context, req HireRequest) (Hire, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := common.Validate(req); err != nil {
		return Hire{}, err
	}
	pos, ok := Positions[req.Position]
	if !ok {
		return Hire{}, fmt.Errorf("%w: %q", common.ErrUnknownPosition, req.Position)
	}

	emp := &Employee{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Age:        req.Age,
		Position:   pos.Code,
		Department: pos.Department,
		Salary:     req.Salary,
		HiredAt:    s.now(),
		Active:     true,
	}
	var creds *auth.Credentials
	err := postgres.InTx(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.repo.Insert(ctx, tx, emp); err != nil {
			return err
		}
		if pos.Driver {
			return nil
		}
		c, err := s.auth.CreateEmployeeAccount(ctx, tx, emp.ID, emp.FirstName, emp.LastName, pos.Department)
		if err != nil {
			return err
		}
		creds = &c
		return nil
	})
	if err != nil {
		return Hire{}, err
	}

	fields := log.Fields{"employee_id": emp.ID, "position": emp.Position}
	if creds != nil {
		fields["username"] = creds.Username
	}
	log.WithFields(fields).Info("Employee hired")
	return Hire{Employee: emp, Credentials: creds}, nil
}

// Terminate marks the employee inactive and removes their user account.
// The employee row and payment history stay.
func (s *Service) Terminate(ctx context.Context, id int64) (*Employee, error) {
	var emp *Employee
	err := postgres.InTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		emp, err = s.repo.Get(ctx, tx, id, true)
		if err != nil {
			return err
		}
		if !emp.Active {
			return common.ErrEmployeeInactive
		}
		now := s.now()
		if err := s.repo.Deactivate(ctx, tx, id, now); err != nil {
			return err
		}
		emp.Active = false
		emp.TerminatedAt = &now
		if Positions[emp.Position].Driver {
			return nil
		}
		return s.auth.DeleteEmployeeAccount(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}

	log.WithField("employee_id", id).Info("Employee terminated")
	return emp, nil
}

// PaySalary pays one salary: checks the employee and the balance before any
// write, then stores the payment and the ledger debit together.
func (s *Service) PaySalary(ctx context.Context, employeeID int64) (Payment, finance.Entry, error) {
	var payment Payment
	var entry finance.Entry
	err := postgres.InTx(ctx, s.db, func(tx pgx.Tx) error {
		emp, err := s.repo.Get(ctx, tx, employeeID, false)
		if err != nil {
			return err
		}
		if !emp.Active {
			return common.ErrEmployeeInactive
		}

		entry, err = s.ledger.Prepare(ctx, tx, finance.Debit(SalaryConcept(emp), emp.Salary))
		if err != nil {
			return err
		}

		payment = Payment{EmployeeID: emp.ID, Amount: emp.Salary, PaidAt: entry.CreatedAt,
			Name: common.FullName(emp.FirstName, emp.LastName)}
		if err := s.repo.InsertPayment(ctx, tx, &payment); err != nil {
			return err
		}
		return s.ledger.Insert(ctx, tx, &entry)
	})
	if err != nil {
		return Payment{}, finance.Entry{}, err
	}

	log.WithFields(log.Fields{
		"employee_id": employeeID,
		"payment_id":  payment.ID,
		"entry_id":    entry.ID,
		"amount":      payment.Amount,
	}).Info("Salary paid")
	return payment, entry, nil
}

// SalaryConcept is the ledger concept of a salary payment.
func SalaryConcept(e *Employee) string {
	return "Salary payment to " + common.FullName(e.FirstName, e.LastName)
}

// List returns employees by status.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Employee, error) {
	switch filter {
	case FilterActive, FilterTerminated, FilterAll:
	default:
		filter = FilterActive
	}
	return s.repo.List(ctx, filter)
}

// Get returns one employee.
func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	return s.repo.Get(ctx, s.db, id, false)
}

// RecentPayments lists the latest salary payments.
func (s *Service) RecentPayments(ctx context.Context, limit int) ([]Payment, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.RecentPayments(ctx, limit)
}

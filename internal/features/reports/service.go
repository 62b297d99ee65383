package reports

import (
	"context"
	"time"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/features/finance"
	"busline.mx/erp/internal/features/procurement"
)

// Service answers report queries. Date ranges are inclusive calendar days.
type Service struct {
	repo        *Repository
	finance     *finance.Service
	procurement *procurement.Service
}

func NewService(repo *Repository, financeService *finance.Service, procurementService *procurement.Service) *Service {
	return &Service{repo: repo, finance: financeService, procurement: procurementService}
}

func (s *Service) EmployeesByDepartment(ctx context.Context) ([]DepartmentHeadcount, error) {
	return s.repo.EmployeesByDepartment(ctx)
}

func (s *Service) BusesByState(ctx context.Context) ([]BusesByState, error) {
	return s.repo.BusesByState(ctx)
}

func (s *Service) MonthlySales(ctx context.Context, months int) ([]MonthlySales, error) {
	if months <= 0 {
		months = 12
	}
	return s.repo.MonthlySales(ctx, months)
}

func (s *Service) MonthlyExpenses(ctx context.Context, months int) ([]finance.MonthlyTotal, error) {
	if months <= 0 {
		months = 12
	}
	return s.finance.MonthlyExpenses(ctx, months)
}

func (s *Service) IncomeVsExpense(ctx context.Context, from, to time.Time) (finance.Totals, error) {
	return s.finance.IncomeVsExpense(ctx, from, to)
}

func (s *Service) SalesByRoute(ctx context.Context, from, to time.Time) ([]RouteSales, error) {
	return s.repo.SalesByRoute(ctx, common.DateOnly(from), common.DateOnly(to).AddDate(0, 0, 1))
}

func (s *Service) ExpensesByCategory(ctx context.Context, from, to time.Time) ([]procurement.CategoryTotal, error) {
	return s.procurement.ExpensesByCategory(ctx, from, to)
}

// Overview collects headcount, fleet, balance and this month's totals.
func (s *Service) Overview(ctx context.Context, now time.Time) (Overview, error) {
	var (
		o   Overview
		err error
	)
	if o.Headcount, err = s.repo.EmployeesByDepartment(ctx); err != nil {
		return Overview{}, err
	}
	if o.Fleet, err = s.repo.BusesByState(ctx); err != nil {
		return Overview{}, err
	}
	if o.Balance, err = s.finance.Balance(ctx); err != nil {
		return Overview{}, err
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if o.Totals, err = s.finance.IncomeVsExpense(ctx, first, now); err != nil {
		return Overview{}, err
	}
	return o, nil
}

// Package app wires the application together.
// app.go is the assembly point: it opens the pool, applies migrations, builds
// repositories, services and handlers, seeds first-run data and hands the
// result to the console.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/config"
	"busline.mx/erp/internal/console"
	"busline.mx/erp/internal/console/filters"
	"busline.mx/erp/internal/db/postgres"
	"busline.mx/erp/internal/features/auth"
	"busline.mx/erp/internal/features/finance"
	"busline.mx/erp/internal/features/fleet"
	"busline.mx/erp/internal/features/inventory"
	"busline.mx/erp/internal/features/logistics"
	"busline.mx/erp/internal/features/procurement"
	"busline.mx/erp/internal/features/reports"
	"busline.mx/erp/internal/features/sales"
	"busline.mx/erp/internal/features/staff"
	"busline.mx/erp/internal/features/suppliers"
	"busline.mx/erp/internal/jobs"
)

// App holds the running components.
type App struct {
	Console   *console.Console
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
}

// New builds the application. The order matters: later components depend on
// earlier ones.
func New(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	// === 1. Database ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}
	if err := postgres.RunMigrations(ctx, pool, migrations); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	loc := cfg.Location()

	// === 2. Repositories ===
	ledgerRepo := finance.NewRepository(pool, loc)
	authRepo := auth.NewRepository(pool)
	staffRepo := staff.NewRepository(pool)
	fleetRepo := fleet.NewRepository(pool)
	supplierRepo := suppliers.NewRepository(pool)
	inventoryRepo := inventory.NewRepository(pool)
	procurementRepo := procurement.NewRepository(pool)
	salesRepo := sales.NewRepository(pool, ledgerRepo)
	logisticsRepo := logistics.NewRepository(pool)
	reportsRepo := reports.NewRepository(pool, loc)

	// === 3. Services ===
	financeService := finance.NewService(pool, ledgerRepo)
	authService := auth.NewService(authRepo, cfg)
	staffService := staff.NewService(pool, staffRepo, ledgerRepo, authService, loc)
	fleetService := fleet.NewService(pool, fleetRepo, ledgerRepo, cfg)
	supplierService := suppliers.NewService(pool, supplierRepo)
	inventoryService := inventory.NewService(pool, inventoryRepo, loc)
	procurementService := procurement.NewService(pool, procurementRepo, ledgerRepo, supplierRepo, fleetService, inventoryService, loc)
	salesService := sales.NewService(salesRepo, loc)
	logisticsService := logistics.NewService(pool, logisticsRepo)
	reportsService := reports.NewService(reportsRepo, financeService, procurementService)

	// === 4. First-run data ===
	if err := authService.EnsureAdmin(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("seed administrator: %w", err)
	}
	if err := financeService.EnsureOpeningBalance(ctx, common.MustCents(cfg.LedgerOpeningBalance)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("seed opening balance: %w", err)
	}
	if err := supplierService.EnsureDefaults(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("seed suppliers: %w", err)
	}

	// === 5. Handlers ===
	handlers := console.Handlers{
		Auth:        auth.NewHandler(authService, out),
		Staff:       staff.NewHandler(staffService, out),
		Finance:     finance.NewHandler(financeService, out),
		Fleet:       fleet.NewHandler(fleetService, out),
		Inventory:   inventory.NewHandler(inventoryService, out),
		Procurement: procurement.NewHandler(procurementService, out),
		Suppliers:   suppliers.NewHandler(supplierService, out),
		Sales:       sales.NewHandler(salesService, out, loc),
		Logistics:   logistics.NewHandler(logisticsService, out),
		Reports:     reports.NewHandler(reportsService, out, loc),
	}

	// === 6. Console ===
	c := console.New(in, out, authService, filters.NewAccessFilter(nil), handlers)

	// === 7. Jobs ===
	scheduler := jobs.NewScheduler(loc, financeService, salesService)

	log.WithField("env", cfg.AppEnv).Info("Application assembled")
	return &App{Console: c, Scheduler: scheduler, DB: pool}, nil
}

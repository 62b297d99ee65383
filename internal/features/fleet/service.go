// Package fleet: service.go registers assets. A directly acquired bus is
// paid from the ledger in the same transaction.
package fleet

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/config"
	"busline.mx/erp/internal/db/postgres"
	"busline.mx/erp/internal/features/finance"
)

// Service manages buses and computers.
type Service struct {
	db     postgres.DB
	repo   *Repository
	ledger *finance.Repository

	defaultCapacity int
	priceVolvo      int64
	priceDefault    int64
	now             func() time.Time
}

// NewService creates the fleet service with prices and default capacity
// from cfg.
func NewService(db postgres.DB, repo *Repository, ledger *finance.Repository, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		repo:            repo,
		ledger:          ledger,
		defaultCapacity: cfg.BusDefaultCapacity,
		priceVolvo:      common.MustCents(cfg.BusPriceVolvo),
		priceDefault:    common.MustCents(cfg.BusPriceDefault),
		now:             common.Clock(cfg.Location()),
	}
}

// DefaultCapacity is the seat count of buses registered without one.
func (s *Service) DefaultCapacity() int { return s.defaultCapacity }

// BusPrice is the acquisition price charged for a bus of brand.
func (s *Service) BusPrice(brand string) int64 {
	if strings.EqualFold(strings.TrimSpace(brand), "volvo") {
		return s.priceVolvo
	}
	return s.priceDefault
}

// AddBus registers a bus and debits its price. Insufficient funds rejects
// the whole operation.
func (s *Service) AddBus(ctx context.Context, req BusRequest) (*Bus, finance.Entry, error) {
	if err := common.Validate(req); err != nil {
		return nil, finance.Entry{}, err
	}
	if req.Capacity == 0 {
		req.Capacity = s.defaultCapacity
	}

	bus := &Bus{
		Brand:      req.Brand,
		Model:      req.Model,
		Year:       req.Year,
		Capacity:   req.Capacity,
		State:      req.State,
		AcquiredAt: s.now(),
	}
	var entry finance.Entry
	err := postgres.InTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		entry, err = s.ledger.Prepare(ctx, tx, finance.Debit("Purchase of bus "+bus.Brand+" "+bus.Model, s.BusPrice(bus.Brand)))
		if err != nil {
			return err
		}
		if err := s.repo.InsertBus(ctx, tx, bus); err != nil {
			return err
		}
		return s.ledger.Insert(ctx, tx, &entry)
	})
	if err != nil {
		return nil, finance.Entry{}, err
	}

	log.WithFields(log.Fields{
		"bus_id":   bus.ID,
		"brand":    bus.Brand,
		"entry_id": entry.ID,
	}).Info("Bus acquired")
	return bus, entry, nil
}

// RegisterPurchasedBus stores a bus already paid by a purchase, inside the
// purchase transaction q.
func (s *Service) RegisterPurchasedBus(ctx context.Context, q postgres.Querier, brand, model string) (*Bus, error) {
	now := s.now()
	bus := &Bus{
		Brand:      brand,
		Model:      model,
		Year:       now.Year(),
		Capacity:   s.defaultCapacity,
		State:      StateNew,
		AcquiredAt: now,
	}
	if err := s.repo.InsertBus(ctx, q, bus); err != nil {
		return nil, err
	}
	return bus, nil
}

// AddComputer registers an office computer.
func (s *Service) AddComputer(ctx context.Context, req ComputerRequest) (*Computer, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	c := &Computer{
		Brand:      req.Brand,
		Model:      req.Model,
		AssignedTo: req.AssignedTo,
		Department: req.Department,
		State:      req.State,
	}
	if err := s.repo.InsertComputer(ctx, s.db, c); err != nil {
		return nil, err
	}
	log.WithField("computer_id", c.ID).Info("Computer registered")
	return c, nil
}

// RegisterPurchasedComputer stores a computer bought through a purchase.
func (s *Service) RegisterPurchasedComputer(ctx context.Context, q postgres.Querier, brand, model string) (*Computer, error) {
	c := &Computer{Brand: brand, Model: model, State: StateNew}
	if err := s.repo.InsertComputer(ctx, q, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Buses lists the fleet.
func (s *Service) Buses(ctx context.Context) ([]*Bus, error) {
	return s.repo.ListBuses(ctx)
}

// Bus returns one bus.
func (s *Service) Bus(ctx context.Context, id int64) (*Bus, error) {
	return s.repo.GetBus(ctx, id)
}

// Computers lists office computers.
func (s *Service) Computers(ctx context.Context) ([]*Computer, error) {
	return s.repo.ListComputers(ctx)
}

// Package procurement: service.go runs a purchase as one transaction:
// supplier check, balance check, purchase row, delivered goods, ledger debit.
package procurement

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/db/postgres"
	"busline.mx/erp/internal/features/finance"
	"busline.mx/erp/internal/features/fleet"
	"busline.mx/erp/internal/features/inventory"
	"busline.mx/erp/internal/features/suppliers"
)

// Service registers purchases.
type Service struct {
	db        postgres.DB
	repo      *Repository
	ledger    *finance.Repository
	suppliers *suppliers.Repository
	fleet     *fleet.Service
	inventory *inventory.Service
	now       func() time.Time
}

func NewService(
	db postgres.DB,
	repo *Repository,
	ledger *finance.Repository,
	supplierRepo *suppliers.Repository,
	fleetService *fleet.Service,
	inventoryService *inventory.Service,
	loc *time.Location,
) *Service {
	return &Service{
		db:        db,
		repo:      repo,
		ledger:    ledger,
		suppliers: supplierRepo,
		fleet:     fleetService,
		inventory: inventoryService,
		now:       common.Clock(loc),
	}
}

// Register pays for and files a purchase. Nothing is written if the
// supplier is unknown or the balance does not cover the total.
func (s *Service) Register(ctx context.Context, req PurchaseRequest) (Purchase, finance.Entry, error) {
	req.Description = strings.TrimSpace(req.Description)
	if err := common.Validate(req); err != nil {
		return Purchase{}, finance.Entry{}, err
	}
	total, err := common.MulAmount(req.UnitPrice, req.Quantity)
	if err != nil {
		return Purchase{}, finance.Entry{}, err
	}

	p := Purchase{
		SupplierID:  req.SupplierID,
		ProductType: req.ProductType,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Total:       total,
		PurchasedAt: s.now(),
	}
	var entry finance.Entry
	err = postgres.InTx(ctx, s.db, func(tx pgx.Tx) error {
		sup, err := s.suppliers.Get(ctx, tx, req.SupplierID)
		if err != nil {
			return err
		}
		p.SupplierName = sup.Name

		entry, err = s.ledger.Prepare(ctx, tx, finance.Debit(PurchaseConcept(p.ProductType, p.Description), p.Total))
		if err != nil {
			return err
		}
		if err := s.repo.Insert(ctx, tx, &p); err != nil {
			return err
		}
		if err := s.deliver(ctx, tx, p); err != nil {
			return err
		}
		return s.ledger.Insert(ctx, tx, &entry)
	})
	if err != nil {
		return Purchase{}, finance.Entry{}, err
	}

	log.WithFields(log.Fields{
		"purchase_id": p.ID,
		"supplier_id": p.SupplierID,
		"type":        p.ProductType,
		"total":       p.Total,
		"entry_id":    entry.ID,
	}).Info("Purchase registered")
	return p, entry, nil
}

// deliver files the bought goods: buses and computers into the fleet, one
// per unit; supplies into the warehouse.
func (s *Service) deliver(ctx context.Context, q postgres.Querier, p Purchase) error {
	brand, model := BrandModel(p.Description)
	switch p.ProductType {
	case TypeBus:
		for i := 0; i < p.Quantity; i++ {
			if _, err := s.fleet.RegisterPurchasedBus(ctx, q, brand, model); err != nil {
				return err
			}
		}
	case TypeComputer:
		for i := 0; i < p.Quantity; i++ {
			if _, err := s.fleet.RegisterPurchasedComputer(ctx, q, brand, model); err != nil {
				return err
			}
		}
	case TypeSupplies:
		if _, err := s.inventory.Receive(ctx, q, p.Description, TypeSupplies, p.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// PurchaseConcept is the ledger concept of a purchase.
func PurchaseConcept(productType, description string) string {
	return "Purchase of " + productType + ": " + description
}

// BrandModel takes brand and model from the first two words of a
// description.
func BrandModel(description string) (brand, model string) {
	brand, model = "Unknown", "Unknown"
	fields := strings.Fields(description)
	if len(fields) > 0 {
		brand = fields[0]
	}
	if len(fields) > 1 {
		model = fields[1]
	}
	return brand, model
}

// History lists the latest purchases.
func (s *Service) History(ctx context.Context, limit int) ([]Purchase, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.Recent(ctx, limit)
}

// ExpensesByCategory sums purchases per product type between two calendar
// dates, both inclusive.
func (s *Service) ExpensesByCategory(ctx context.Context, from, to time.Time) ([]CategoryTotal, error) {
	return s.repo.ByCategory(ctx, common.DateOnly(from), common.DateOnly(to).AddDate(0, 0, 1))
}

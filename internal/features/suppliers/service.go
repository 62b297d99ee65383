package suppliers

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/db/postgres"
)

// Service manages suppliers.
type Service struct {
	db   postgres.DB
	repo *Repository
}

func NewService(db postgres.DB, repo *Repository) *Service {
	return &Service{db: db, repo: repo}
}

// Add registers a supplier. Name and kind are required.
func (s *Service) Add(ctx context.Context, req SupplierRequest) (*Supplier, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Kind = strings.TrimSpace(req.Kind)
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	sup := &Supplier{Name: req.Name, Kind: req.Kind, Contact: req.Contact, Phone: req.Phone, Email: req.Email}
	if err := s.repo.Insert(ctx, s.db, sup); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"supplier_id": sup.ID, "name": sup.Name}).Info("Supplier added")
	return sup, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Supplier, error) {
	return s.repo.Get(ctx, s.db, id)
}

func (s *Service) List(ctx context.Context) ([]*Supplier, error) {
	return s.repo.List(ctx)
}

// EnsureDefaults seeds the default suppliers into an empty table.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	return postgres.InTx(ctx, s.db, func(tx pgx.Tx) error {
		n, err := s.repo.Count(ctx, tx)
		if err != nil || n > 0 {
			return err
		}
		for _, d := range Defaults {
			sup := &Supplier{Name: d.Name, Kind: d.Kind, Contact: d.Contact, Phone: d.Phone, Email: d.Email}
			if err := s.repo.Insert(ctx, tx, sup); err != nil {
				return err
			}
		}
		log.WithField("count", len(Defaults)).Info("Default suppliers seeded")
		return nil
	})
}

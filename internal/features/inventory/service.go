package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/db/postgres"
)

// Service manages stock.
type Service struct {
	db   postgres.DB
	repo *Repository
	now  func() time.Time
}

func NewService(db postgres.DB, repo *Repository, loc *time.Location) *Service {
	return &Service{db: db, repo: repo, now: common.Clock(loc)}
}

// Receive adds purchased units inside the purchase transaction q.
func (s *Service) Receive(ctx context.Context, q postgres.Querier, name, category string, qty int) (*Item, error) {
	return s.repo.AddStock(ctx, q, name, category, qty)
}

// Withdraw takes units out of stock. The item row is locked, so two
// withdrawals cannot both pass the stock check.
func (s *Service) Withdraw(ctx context.Context, req WithdrawRequest) (Withdrawal, int, error) {
	if err := common.Validate(req); err != nil {
		return Withdrawal{}, 0, err
	}

	w := Withdrawal{ItemID: req.ItemID, Quantity: req.Quantity, RequestedBy: req.RequestedBy, CreatedAt: s.now()}
	var left int
	err := postgres.InTx(ctx, s.db, func(tx pgx.Tx) error {
		it, err := s.repo.lockItem(ctx, tx, req.ItemID)
		if err != nil {
			return err
		}
		if req.Quantity > it.Quantity {
			return fmt.Errorf("%w: %d %s on hand", common.ErrInsufficientStock, it.Quantity, it.Name)
		}
		if err := s.repo.decrement(ctx, tx, it.ID, req.Quantity); err != nil {
			return err
		}
		w.ItemName = it.Name
		left = it.Quantity - req.Quantity
		return s.repo.insertWithdrawal(ctx, tx, &w)
	})
	if err != nil {
		return Withdrawal{}, 0, err
	}

	log.WithFields(log.Fields{
		"item_id":  w.ItemID,
		"quantity": w.Quantity,
		"left":     left,
	}).Info("Stock withdrawn")
	return w, left, nil
}

func (s *Service) Items(ctx context.Context) ([]*Item, error) {
	return s.repo.List(ctx)
}

func (s *Service) Withdrawals(ctx context.Context, limit int) ([]Withdrawal, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.Withdrawals(ctx, limit)
}

// Package sales: service.go validates bookings before touching storage and
// logs every outcome.
package sales

import (
	"context"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"busline.mx/erp/internal/common"
)

// Service sells tickets.
type Service struct {
	repo *Repository
	now  func() time.Time
}

// NewService creates the sales service.
func NewService(repo *Repository, loc *time.Location) *Service {
	return &Service{repo: repo, now: common.Clock(loc)}
}

// Availability returns free seats of a departure on a travel date.
func (s *Service) Availability(ctx context.Context, scheduleID int64, date time.Time) (Availability, error) {
	if scheduleID <= 0 {
		return Availability{}, common.ErrScheduleNotFound
	}
	return s.repo.AvailableSeats(ctx, scheduleID, common.DateOnly(date))
}

// Sell validates req and commits it. There is no retry: a seat conflict is
// reported to the operator, who picks other seats.
func (s *Service) Sell(ctx context.Context, req BookingRequest) (Receipt, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.TravelDate = common.DateOnly(req.TravelDate)

	logBooking(req, StateFormFilled, nil)
	if err := common.Validate(req); err != nil {
		logBooking(req, StateRejectedInvalid, err)
		return Receipt{}, err
	}
	logBooking(req, StateSeatsValidated, nil)

	receipt, err := s.repo.Commit(ctx, req, s.now())
	if err != nil {
		var state BookingState
		switch {
		case errors.Is(err, common.ErrSeatTaken):
			state = StateRejectedSeat
		case common.IsBusinessError(err):
			state = StateRejectedInvalid
		default:
			state = StateRejectedDB
		}
		logBooking(req, state, err)
		return Receipt{}, err
	}

	logBooking(req, StateCommitted, nil)
	log.WithFields(log.Fields{
		"schedule_id": req.ScheduleID,
		"entry_id":    receipt.Entry.ID,
		"total":       receipt.Total,
	}).Info("Tickets sold")
	return receipt, nil
}

func logBooking(req BookingRequest, state BookingState, err error) {
	entry := log.WithFields(log.Fields{
		"schedule_id": req.ScheduleID,
		"travel_date": req.TravelDate.Format(common.DateLayout),
		"seats":       req.Seats,
		"state":       state,
	})
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Debug("Booking state")
}

// Customers lists passengers matching search.
func (s *Service) Customers(ctx context.Context, search string) ([]Customer, error) {
	return s.repo.Customers(ctx, strings.TrimSpace(search))
}

// CustomerTickets lists the tickets of one passenger.
func (s *Service) CustomerTickets(ctx context.Context, first, last string) ([]Ticket, error) {
	return s.repo.CustomerTickets(ctx, strings.TrimSpace(first), strings.TrimSpace(last))
}

// DailySummary counts tickets sold on the calendar day of t.
func (s *Service) DailySummary(ctx context.Context, t time.Time) (Summary, error) {
	day := common.DateOnly(t)
	return s.repo.Summary(ctx, day, day.AddDate(0, 0, 1))
}

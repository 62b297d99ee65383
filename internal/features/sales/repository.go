// Package sales: repository.go works with the tickets table and the
// schedule → bus/route join that gives capacity and fare.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"busline.mx/erp/internal/common"
	"busline.mx/erp/internal/db/postgres"
	"busline.mx/erp/internal/features/finance"
)

// Repository works with tickets.
type Repository struct {
	db     postgres.DB
	ledger *finance.Repository
}

// NewRepository creates the sales repository.
func NewRepository(db postgres.DB, ledger *finance.Repository) *Repository {
	return &Repository{db: db, ledger: ledger}
}

// departure returns the bus capacity and route fare of a schedule.
func (r *Repository) departure(ctx context.Context, q postgres.Querier, scheduleID int64) (capacity int, price int64, err error) {
	err = q.QueryRow(ctx, `
		SELECT b.capacity, r.price
		FROM schedules s
		JOIN buses b ON b.id = s.bus_id
		JOIN routes r ON r.id = s.route_id
		WHERE s.id = $1
	`, scheduleID).Scan(&capacity, &price)
	if postgres.IsNoRows(err) {
		return 0, 0, common.ErrScheduleNotFound
	}
	if err != nil {
		return 0, 0, fmt.Errorf("read schedule %d: %w", scheduleID, err)
	}
	return capacity, price, nil
}

func (r *Repository) occupiedSeats(ctx context.Context, q postgres.Querier, scheduleID int64, date time.Time) ([]int, error) {
	rows, err := q.Query(ctx, `
		SELECT seat_number FROM tickets
		WHERE schedule_id = $1 AND travel_date = $2
		ORDER BY seat_number
	`, scheduleID, date)
	if err != nil {
		return nil, fmt.Errorf("read occupied seats: %w", err)
	}
	defer rows.Close()

	var seats []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

// AvailableSeats reads the free seats of a departure on date. Read only.
func (r *Repository) AvailableSeats(ctx context.Context, scheduleID int64, date time.Time) (Availability, error) {
	capacity, _, err := r.departure(ctx, r.db, scheduleID)
	if err != nil {
		return Availability{}, err
	}
	occupied, err := r.occupiedSeats(ctx, r.db, scheduleID, date)
	if err != nil {
		return Availability{}, err
	}
	return Availability{
		ScheduleID: scheduleID,
		TravelDate: date,
		Capacity:   capacity,
		Free:       FreeSeats(capacity, occupied),
		Occupied:   occupied,
	}, nil
}

func (r *Repository) seatTaken(ctx context.Context, q postgres.Querier, scheduleID int64, date time.Time, seat int) (bool, error) {
	var taken bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM tickets
			WHERE schedule_id = $1 AND travel_date = $2 AND seat_number = $3
		)
	`, scheduleID, date, seat).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check seat %d: %w", seat, err)
	}
	return taken, nil
}

func (r *Repository) insertTicket(ctx context.Context, q postgres.Querier, t *Ticket) error {
	err := q.QueryRow(ctx, `
		INSERT INTO tickets (schedule_id, travel_date, seat_number, first_name, last_name, price, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, t.ScheduleID, t.TravelDate, t.SeatNumber, t.FirstName, t.LastName, t.Price, t.SoldAt).Scan(&t.ID)
	if postgres.IsUniqueViolation(err) {
		return &common.SeatTakenError{Seat: t.SeatNumber}
	}
	if err != nil {
		return fmt.Errorf("insert ticket seat %d: %w", t.SeatNumber, err)
	}
	return nil
}

// Commit books every seat of req and credits the ledger, all in one
// transaction. The first seat found occupied, in request order, aborts the
// whole booking with *common.SeatTakenError and nothing is written.
func (r *Repository) Commit(ctx context.Context, req BookingRequest, at time.Time) (Receipt, error) {
	var receipt Receipt
	err := postgres.InTx(ctx, r.db, func(tx pgx.Tx) error {
		capacity, price, err := r.departure(ctx, tx, req.ScheduleID)
		if err != nil {
			return err
		}
		if err := CheckRequest(capacity, req.Seats); err != nil {
			return err
		}

		for _, seat := range req.Seats {
			taken, err := r.seatTaken(ctx, tx, req.ScheduleID, req.TravelDate, seat)
			if err != nil {
				return err
			}
			if taken {
				return &common.SeatTakenError{Seat: seat}
			}
		}

		tickets := make([]Ticket, 0, len(req.Seats))
		for _, seat := range req.Seats {
			t := Ticket{
				ScheduleID: req.ScheduleID,
				TravelDate: req.TravelDate,
				SeatNumber: seat,
				FirstName:  req.FirstName,
				LastName:   req.LastName,
				Price:      price,
				SoldAt:     at,
			}
			if err := r.insertTicket(ctx, tx, &t); err != nil {
				return err
			}
			tickets = append(tickets, t)
		}

		total, err := common.MulAmount(price, len(tickets))
		if err != nil {
			return err
		}
		entry, err := r.ledger.Append(ctx, tx, finance.Credit(SaleConcept(len(tickets), req.FirstName, req.LastName), total))
		if err != nil {
			return err
		}

		receipt = Receipt{Tickets: tickets, Entry: entry, UnitPrice: price, Total: total}
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}
	return receipt, nil
}

// SaleConcept is the ledger concept of a booking.
func SaleConcept(n int, first, last string) string {
	return fmt.Sprintf("Sale of %s to %s", common.Pluralize(n, "ticket", "tickets"), common.FullName(first, last))
}

// Customers aggregates tickets by passenger name. search filters by a
// case-insensitive substring of the full name; empty lists everyone.
func (r *Repository) Customers(ctx context.Context, search string) ([]Customer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT first_name, last_name, COUNT(*), MAX(sold_at), SUM(price)
		FROM tickets
		WHERE $1 = '' OR (first_name || ' ' || last_name) ILIKE '%' || $1 || '%'
		GROUP BY first_name, last_name
		ORDER BY MAX(sold_at) DESC
	`, search)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.FirstName, &c.LastName, &c.Tickets, &c.LastPurchase, &c.TotalSpent); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CustomerTickets lists tickets bought under one passenger name, newest first.
func (r *Repository) CustomerTickets(ctx context.Context, first, last string) ([]Ticket, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, schedule_id, travel_date, seat_number, first_name, last_name, price, sold_at
		FROM tickets
		WHERE first_name = $1 AND last_name = $2
		ORDER BY sold_at DESC, id DESC
	`, first, last)
	if err != nil {
		return nil, fmt.Errorf("list customer tickets: %w", err)
	}
	defer rows.Close()

	var out []Ticket
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.ScheduleID, &t.TravelDate, &t.SeatNumber,
			&t.FirstName, &t.LastName, &t.Price, &t.SoldAt); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Summary counts tickets sold with sold_at in [from, to).
func (r *Repository) Summary(ctx context.Context, from, to time.Time) (Summary, error) {
	var s Summary
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(price), 0)
		FROM tickets
		WHERE sold_at >= $1 AND sold_at < $2
	`, from, to).Scan(&s.Tickets, &s.Revenue)
	if err != nil {
		return Summary{}, fmt.Errorf("sales summary: %w", err)
	}
	return s, nil
}

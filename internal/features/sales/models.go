// Package sales sells bus tickets: seat availability for a departure on a
// date, atomic booking of several seats with its ledger credit, and the
// customer view built from ticket history.
package sales

import (
	"time"

	"busline.mx/erp/internal/features/finance"
)

// Ticket is one sold seat on one schedule for one travel date.
type Ticket struct {
	ID         int64     `db:"id"`
	ScheduleID int64     `db:"schedule_id"`
	TravelDate time.Time `db:"travel_date"`
	SeatNumber int       `db:"seat_number"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	Price      int64     `db:"price"`
	SoldAt     time.Time `db:"sold_at"`
}

// BookingRequest is a passenger and the seats wanted on one departure.
type BookingRequest struct {
	FirstName  string    `validate:"required,max=60"`
	LastName   string    `validate:"required,max=60"`
	ScheduleID int64     `validate:"gt=0"`
	TravelDate time.Time `validate:"required"`
	Seats      []int     `validate:"required,min=1"`
}

// Receipt is the outcome of a committed booking.
type Receipt struct {
	Tickets   []Ticket
	Entry     finance.Entry
	UnitPrice int64
	Total     int64
}

// Availability lists free and occupied seats of a departure.
type Availability struct {
	ScheduleID int64
	TravelDate time.Time
	Capacity   int
	Free       []int
	Occupied   []int
}

// Customer aggregates tickets bought under one passenger name.
type Customer struct {
	FirstName    string
	LastName     string
	Tickets      int
	LastPurchase time.Time
	TotalSpent   int64
}

// Summary counts tickets and revenue over a period.
type Summary struct {
	Tickets int
	Revenue int64
}

// BookingState is where a booking attempt ended up.
type BookingState string

const (
	StateFormFilled      BookingState = "form_filled"
	StateSeatsValidated  BookingState = "seats_validated"
	StateCommitted       BookingState = "committed"
	StateRejectedSeat    BookingState = "rejected_seat_conflict"
	StateRejectedInvalid BookingState = "rejected_invalid"
	StateRejectedDB      BookingState = "rejected_db_error"
)

// Package common: errors.go defines the errors shared by every feature.
// Handlers use them to tell business-rule rejections apart from storage
// failures and to show the operator a precise message.
package common

import (
	"errors"
	"fmt"
)

// Finance errors
var (
	// ErrInsufficientFunds means the ledger balance does not cover the debit
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAmount covers a zero, negative or malformed amount
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Sales errors
var (
	ErrSeatTaken        = errors.New("seat already taken")
	ErrSeatOutOfRange   = errors.New("seat number outside bus capacity")
	ErrDuplicateSeat    = errors.New("seat requested twice")
	ErrNoSeats          = errors.New("no seats requested")
	ErrScheduleNotFound = errors.New("schedule not found")
)

// Staff errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrEmployeeInactive means the employee was terminated
	ErrEmployeeInactive = errors.New("employee is no longer active")
	ErrUnknownPosition  = errors.New("unknown position")
)

// Auth errors
var (
	ErrWrongCredentials = errors.New("wrong username or password")
	ErrTooManyAttempts  = errors.New("too many failed attempts, try again later")
	ErrSessionExpired   = errors.New("session expired, log in again")
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrForbidden        = errors.New("your department has no access to this module")
	ErrUserNotFound     = errors.New("user not found")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must have at least 6 characters")
	ErrUsernameTaken    = errors.New("username already taken")
)

// Logistics, fleet and purchasing errors
var (
	ErrRouteNotFound      = errors.New("route not found")
	ErrRouteHasSchedules  = errors.New("route has schedules attached")
	ErrScheduleHasTickets = errors.New("schedule has sold tickets")
	ErrBusNotFound        = errors.New("bus not found")
	ErrSupplierNotFound   = errors.New("supplier not found")
	ErrItemNotFound       = errors.New("inventory item not found")
	ErrInsufficientStock  = errors.New("not enough stock")
)

// SeatTakenError names the seat that collided during a booking.
type SeatTakenError struct {
	Seat int
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat %d already taken", e.Seat)
}

// Is lets errors.Is(err, ErrSeatTaken) match.
func (e *SeatTakenError) Is(target error) bool {
	return target == ErrSeatTaken
}

// ValidationError carries input problems found before any database call.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %v", e.Fields)
}

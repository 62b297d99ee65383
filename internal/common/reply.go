package common

import (
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

var businessErrors = []error{
	ErrInsufficientFunds, ErrInvalidAmount,
	ErrSeatTaken, ErrSeatOutOfRange, ErrDuplicateSeat, ErrNoSeats, ErrScheduleNotFound,
	ErrEmployeeNotFound, ErrEmployeeInactive, ErrUnknownPosition,
	ErrWrongCredentials, ErrTooManyAttempts, ErrSessionExpired, ErrNotLoggedIn, ErrForbidden,
	ErrUserNotFound, ErrPasswordMismatch, ErrPasswordTooShort, ErrUsernameTaken,
	ErrRouteNotFound, ErrRouteHasSchedules, ErrScheduleHasTickets, ErrBusNotFound,
	ErrSupplierNotFound, ErrItemNotFound, ErrInsufficientStock,
}

// IsBusinessError reports whether err is a rule rejection or bad input rather
// than a storage failure.
func IsBusinessError(err error) bool {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return true
	}
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Reply writes one line to the operator.
func Reply(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// ReplyError shows a failed action to the operator. Rule rejections are
// shown as is; storage failures are logged and shown with their cause.
func ReplyError(w io.Writer, action string, err error) {
	if IsBusinessError(err) {
		Reply(w, "❌ %s: %v", action, err)
		return
	}
	log.WithError(err).WithField("action", action).Error("Operation failed")
	Reply(w, "❌ %s: database error, nothing was saved (%v)", action, err)
}

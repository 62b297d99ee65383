// Package fleet keeps the company assets: buses and office computers.
package fleet

import "time"

// Asset states.
const (
	StateNew         = "new"
	StateUsed        = "used"
	StateMaintenance = "maintenance"
	StateInactive    = "inactive"
)

// Bus is a row of the buses table.
type Bus struct {
	ID         int64     `db:"id"`
	Brand      string    `db:"brand"`
	Model      string    `db:"model"`
	Year       int       `db:"year"`
	Capacity   int       `db:"capacity"`
	State      string    `db:"state"`
	AcquiredAt time.Time `db:"acquired_at"`
}

// BusRequest is the form for a directly acquired bus. Capacity 0 means the
// configured default.
type BusRequest struct {
	Brand    string `validate:"required,max=60"`
	Model    string `validate:"required,max=60"`
	Year     int    `validate:"gte=1950,lte=2100"`
	Capacity int    `validate:"gte=0,lte=100"`
	State    string `validate:"required,oneof=new used maintenance inactive"`
}

// Computer is a row of the computers table.
type Computer struct {
	ID         int64  `db:"id"`
	Brand      string `db:"brand"`
	Model      string `db:"model"`
	AssignedTo string `db:"assigned_to"`
	Department string `db:"department"`
	State      string `db:"state"`
}

// ComputerRequest is the form for registering a computer.
type ComputerRequest struct {
	Brand      string `validate:"required,max=60"`
	Model      string `validate:"required,max=60"`
	AssignedTo string `validate:"max=120"`
	Department string `validate:"max=30"`
	State      string `validate:"required,oneof=new used maintenance inactive"`
}

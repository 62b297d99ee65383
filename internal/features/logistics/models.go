// Package logistics keeps routes and the weekly schedules that run buses on
// them. A schedule plus a travel date is what a ticket is sold for.
package logistics

// Route is a row of the routes table. Price is the ticket fare in cents.
type Route struct {
	ID          int64   `db:"id"`
	Origin      string  `db:"origin"`
	Destination string  `db:"destination"`
	DistanceKm  float64 `db:"distance_km"`
	Duration    string  `db:"duration"`
	Price       int64   `db:"price"`
}

// RouteRequest is the route form, used for both create and update.
type RouteRequest struct {
	Origin      string  `validate:"required,max=100"`
	Destination string  `validate:"required,max=100"`
	DistanceKm  float64 `validate:"gt=0"`
	Duration    string  `validate:"required,max=30"`
	Price       int64   `validate:"gt=0"`
}

// Schedule is a row of the schedules table, with route and bus details
// filled by listings.
type Schedule struct {
	ID        int64  `db:"id"`
	RouteID   int64  `db:"route_id"`
	BusID     int64  `db:"bus_id"`
	Departure string `db:"departure"`
	Arrival   string `db:"arrival"`
	Days      string `db:"days"`

	Origin      string `db:"-"`
	Destination string `db:"-"`
	Bus         string `db:"-"`
}

// ScheduleRequest is the schedule form. Times are 24-hour HH:MM.
type ScheduleRequest struct {
	RouteID   int64  `validate:"gt=0"`
	BusID     int64  `validate:"gt=0"`
	Departure string `validate:"required,clock"`
	Arrival   string `validate:"required,clock"`
	Days      string `validate:"required,max=60"`
}

package domain

import (
	"fmt"
	"time"
)

type Flight struct {
	ID            int64
	Code          string
	BoardingRoom  string
	Origin        string
	DepartureTime time.Time
	ArrivalTime   time.Time
	Price         float64
	DestinationID int64
	AirlineID     int64
	Destination   *Destination
	Airline       *Airline
	Passengers    []Passenger
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Duration returns arrival minus departure. It is negative when the
// arrival precedes the departure.
func (f Flight) Duration() time.Duration {
	return f.ArrivalTime.Sub(f.DepartureTime)
}

// FormatDuration renders d as "<h>h <m>m". Both parts are floored and the
// minutes are taken from the remainder, which keeps the sign of d, so -30m
// renders as "-1h -30m".
func FormatDuration(d time.Duration) string {
	rem := d % time.Hour
	return fmt.Sprintf("%dh %dm", floorDiv(d, time.Hour), floorDiv(rem, time.Minute))
}

func floorDiv(d, unit time.Duration) int64 {
	q := int64(d / unit)
	if d < 0 && d%unit != 0 {
		q--
	}
	return q
}

package domain

import "time"

type Passenger struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	// PhotoURL is what clients load; PhotoKey is what the photo store deletes.
	PhotoURL  *string
	PhotoKey  *string
	FlightID  int64
	Flight    *Flight
	CreatedAt time.Time
	UpdatedAt time.Time
}

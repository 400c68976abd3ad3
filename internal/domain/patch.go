package domain

import "time"

// Patch types carry partial updates; nil fields are left untouched.

type AirlinePatch struct {
	Description *string
}

type DestinationPatch struct {
	Description *string
}

type FlightPatch struct {
	Code          *string
	BoardingRoom  *string
	Origin        *string
	DepartureTime *time.Time
	ArrivalTime   *time.Time
	Price         *float64
	DestinationID *int64
	AirlineID     *int64
}

type PassengerPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	PhotoURL  *string
	PhotoKey  *string
	FlightID  *int64
}

type UserPatch struct {
	Email        *string
	PasswordHash *string
}

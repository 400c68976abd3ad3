package domain

import "time"

type Airline struct {
	ID          int64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Destination struct {
	ID          int64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/dorado/internal/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email}
}

type descriptionResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"descripcion"`
}

func toAirlineResponse(a *domain.Airline) *descriptionResponse {
	if a == nil {
		return nil
	}
	return &descriptionResponse{ID: a.ID, Description: a.Description}
}

func toDestinationResponse(d *domain.Destination) *descriptionResponse {
	if d == nil {
		return nil
	}
	return &descriptionResponse{ID: d.ID, Description: d.Description}
}

type flightResponse struct {
	ID            int64                `json:"id"`
	Code          string               `json:"codvuelo"`
	BoardingRoom  string               `json:"salabordaje"`
	Origin        string               `json:"origen"`
	DepartureTime time.Time            `json:"horasalida"`
	ArrivalTime   time.Time            `json:"horallegada"`
	Price         float64              `json:"precio"`
	DestinationID int64                `json:"destinoId"`
	AirlineID     int64                `json:"aerolineaId"`
	Destination   *descriptionResponse `json:"destino,omitempty"`
	Airline       *descriptionResponse `json:"aerolinea,omitempty"`
	Passengers    *[]passengerResponse `json:"pasajeros,omitempty"`
	Duration      string               `json:"duracion"`
}

// toFlightResponse renders pasajeros only when withPassengers is set, so a
// flight nested inside a passenger does not repeat the passenger list.
func toFlightResponse(f *domain.Flight, withPassengers bool) *flightResponse {
	if f == nil {
		return nil
	}
	resp := &flightResponse{
		ID:            f.ID,
		Code:          f.Code,
		BoardingRoom:  f.BoardingRoom,
		Origin:        f.Origin,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Price:         f.Price,
		DestinationID: f.DestinationID,
		AirlineID:     f.AirlineID,
		Destination:   toDestinationResponse(f.Destination),
		Airline:       toAirlineResponse(f.Airline),
		Duration:      domain.FormatDuration(f.Duration()),
	}
	if withPassengers {
		passengers := toPassengerResponses(f.Passengers)
		resp.Passengers = &passengers
	}
	return resp
}

func toFlightResponses(flights []domain.Flight) []*flightResponse {
	out := make([]*flightResponse, 0, len(flights))
	for i := range flights {
		out = append(out, toFlightResponse(&flights[i], true))
	}
	return out
}

type passengerResponse struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"nombre"`
	LastName  string          `json:"apellidos"`
	Email     string          `json:"email"`
	Phone     string          `json:"telefono"`
	PhotoURL  *string         `json:"foto"`
	FlightID  int64           `json:"vueloId"`
	Flight    *flightResponse `json:"vuelo,omitempty"`
}

func toPassengerResponse(p *domain.Passenger) passengerResponse {
	return passengerResponse{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		PhotoURL:  p.PhotoURL,
		FlightID:  p.FlightID,
		Flight:    toFlightResponse(p.Flight, false),
	}
}

func toPassengerResponses(passengers []domain.Passenger) []passengerResponse {
	out := make([]passengerResponse, 0, len(passengers))
	for i := range passengers {
		out = append(out, toPassengerResponse(&passengers[i]))
	}
	return out
}

// timestamp accepts RFC 3339 as well as the zone-less values HTML
// datetime-local inputs submit, which are read as UTC.
type timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", raw)
}

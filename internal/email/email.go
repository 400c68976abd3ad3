package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/dorado/internal/kafka"
	"github.com/Domenick1991/dorado/internal/logging"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Compose builds the notification for a passenger event. ok is false for
// event types that do not notify anyone.
func Compose(event kafka.PassengerEvent) (msg Message, ok bool) {
	name := event.FirstName
	if event.LastName != "" {
		name += " " + event.LastName
	}

	switch event.Type {
	case kafka.EventPassengerCreated:
		return Message{
			To:      event.Email,
			Subject: fmt.Sprintf("Registro confirmado en el vuelo %d", event.FlightID),
			Body:    fmt.Sprintf("Hola %s, has sido registrado en el vuelo %d.", name, event.FlightID),
		}, true
	case kafka.EventPassengerUpdated:
		return Message{
			To:      event.Email,
			Subject: "Datos de pasajero actualizados",
			Body:    fmt.Sprintf("Hola %s, tus datos para el vuelo %d fueron actualizados.", name, event.FlightID),
		}, true
	case kafka.EventPassengerDeleted:
		return Message{
			To:      event.Email,
			Subject: fmt.Sprintf("Registro cancelado en el vuelo %d", event.FlightID),
			Body:    fmt.Sprintf("Hola %s, tu registro en el vuelo %d fue eliminado.", name, event.FlightID),
		}, true
	}
	return Message{}, false
}

type Sender struct {
	log logging.Logger
}

func NewSender(log logging.Logger) *Sender {
	return &Sender{log: log}
}

// Send delivers the notification for event. Delivery is a log line for now.
func (s *Sender) Send(ctx context.Context, event kafka.PassengerEvent) error {
	msg, ok := Compose(event)
	if !ok {
		s.log.Warn(ctx, "no notification for event type", "type", event.Type)
		return nil
	}
	if msg.To == "" {
		return fmt.Errorf("passenger %d has no email", event.PassengerID)
	}

	s.log.Info(ctx, "email sent", "to", msg.To, "subject", msg.Subject, "passenger_id", event.PassengerID)
	return nil
}

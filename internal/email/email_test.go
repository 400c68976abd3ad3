package email

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/Domenick1991/dorado/internal/kafka"
	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	event := kafka.PassengerEvent{PassengerID: 1, FlightID: 12, Email: "ana@example.com", FirstName: "Ana", LastName: "Ruiz"}

	for _, typ := range []string{kafka.EventPassengerCreated, kafka.EventPassengerUpdated, kafka.EventPassengerDeleted} {
		event.Type = typ
		msg, ok := Compose(event)
		assert.True(t, ok, typ)
		assert.Equal(t, "ana@example.com", msg.To)
		assert.Contains(t, msg.Body, "Ana Ruiz")
		assert.Contains(t, msg.Body, "12")
	}

	event.Type = "unknown"
	_, ok := Compose(event)
	assert.False(t, ok)
}

func TestSender_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewSender(logging.NewJSON(&buf, slog.LevelInfo))

	err := s.Send(context.Background(), kafka.PassengerEvent{Type: kafka.EventPassengerCreated, PassengerID: 3, Email: "ana@example.com"})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"to":"ana@example.com"`)

	err = s.Send(context.Background(), kafka.PassengerEvent{Type: kafka.EventPassengerCreated, PassengerID: 4})
	assert.Error(t, err)

	assert.NoError(t, s.Send(context.Background(), kafka.PassengerEvent{Type: "other"}))
}

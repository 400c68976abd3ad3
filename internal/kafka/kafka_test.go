package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type fakeReader struct {
	msgs []kafka.Message
}

func (r *fakeReader) ReadMessage(context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *fakeReader) Close() error { return nil }

func TestProducer_PublishPassenger(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{topic: "passenger_events", writer: w, log: logging.Nop()}
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	event := NewPassengerEvent(EventPassengerCreated, &domain.Passenger{ID: 7, FlightID: 3, Email: "ana@example.com", FirstName: "Ana"}, at)
	require.NoError(t, p.PublishPassenger(context.Background(), event))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "passenger_events", w.msgs[0].Topic)
	assert.Equal(t, "7", string(w.msgs[0].Key))

	var got PassengerEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, event, got)
}

func TestProducer_PublishError(t *testing.T) {
	p := &Producer{topic: "t", writer: &fakeWriter{err: errors.New("broker down")}, log: logging.Nop()}

	err := p.PublishPassenger(context.Background(), PassengerEvent{PassengerID: 1})
	assert.ErrorContains(t, err, "broker down")
}

func TestConsumer_Consume(t *testing.T) {
	value, _ := json.Marshal(PassengerEvent{Type: EventPassengerDeleted, PassengerID: 9})
	c := &Consumer{reader: &fakeReader{msgs: []kafka.Message{{Value: value}}}}

	var seen []PassengerEvent
	err := c.Consume(context.Background(), func(_ context.Context, msg kafka.Message) error {
		event, err := DecodePassengerEvent(msg)
		if err != nil {
			return err
		}
		seen = append(seen, event)
		return nil
	})

	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, seen, 1)
	assert.Equal(t, int64(9), seen[0].PassengerID)
}

func TestDecodePassengerEvent_Invalid(t *testing.T) {
	_, err := DecodePassengerEvent(kafka.Message{Value: []byte("{"), Offset: 42})
	assert.ErrorContains(t, err, "offset 42")
}

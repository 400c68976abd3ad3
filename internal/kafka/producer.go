package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Domenick1991/dorado/internal/domain"
	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/segmentio/kafka-go"
)

const (
	EventPassengerCreated = "passenger_created"
	EventPassengerUpdated = "passenger_updated"
	EventPassengerDeleted = "passenger_deleted"
)

type PassengerEvent struct {
	Type        string    `json:"type"`
	PassengerID int64     `json:"passenger_id"`
	FlightID    int64     `json:"flight_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewPassengerEvent(eventType string, p *domain.Passenger, at time.Time) PassengerEvent {
	return PassengerEvent{
		Type:        eventType,
		PassengerID: p.ID,
		FlightID:    p.FlightID,
		Email:       p.Email,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		OccurredAt:  at.UTC(),
	}
}

// Key partitions events by passenger so one passenger's events stay ordered.
func (e PassengerEvent) Key() string {
	return strconv.FormatInt(e.PassengerID, 10)
}

// PassengerPublisher is what the passenger service depends on.
type PassengerPublisher interface {
	PublishPassenger(ctx context.Context, event PassengerEvent) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	brokers []string
	topic   string
	writer  messageWriter
	log     logging.Logger
}

func NewProducer(brokers []string, topic string, log logging.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		brokers: brokers,
		topic:   topic,
		writer:  writer,
		log:     log,
	}
}

func (p *Producer) PublishPassenger(ctx context.Context, event PassengerEvent) error {
	return p.Publish(ctx, p.topic, event.Key(), event)
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	p.log.Debug(ctx, "published to kafka", "topic", topic, "key", key)
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker and reads its partitions.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ReadPartitions(); err != nil {
		return fmt.Errorf("failed to read partitions: %w", err)
	}
	return nil
}

var _ PassengerPublisher = (*Producer)(nil)

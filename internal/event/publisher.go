// Package event publishes domain events about new bookings so an operator
// can confirm them out of band.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/programari/backend/internal/model"
	"github.com/segmentio/kafka-go"
)

// TypeBookingCreated is the event_type header of booking events.
const TypeBookingCreated = "booking.created"

// Publisher is notified after a booking has been stored.
type Publisher interface {
	PublishBookingCreated(ctx context.Context, b *model.Booking) error
	Close() error
}

// BookingCreated is the payload of a booking.created event.
type BookingCreated struct {
	BookingID     int       `json:"bookingId"`
	ServiceID     int       `json:"serviceId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishBookingCreated(context.Context, *model.Booking) error { return nil }
func (NopPublisher) Close() error                                               { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes booking events to a Kafka topic keyed by booking id.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a KafkaPublisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}}
}

var _ Publisher = (*KafkaPublisher)(nil)

func (p *KafkaPublisher) PublishBookingCreated(ctx context.Context, b *model.Booking) error {
	payload, err := json.Marshal(BookingCreated{
		BookingID:     b.ID,
		ServiceID:     b.ServiceID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Date:          b.Date,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("event: encode booking %d: %w", b.ID, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(b.ID)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(uuid.NewString())},
			{Key: "event_type", Value: []byte(TypeBookingCreated)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("event: publish booking %d: %w", b.ID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

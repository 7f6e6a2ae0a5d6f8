package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultQueue = "leave_events"

type Type string

const (
	LeaveApplied   Type = "leave.applied"
	LeaveApproved  Type = "leave.approved"
	LeaveRejected  Type = "leave.rejected"
	LeaveCancelled Type = "leave.cancelled"
)

// Event is the JSON body published for every leave lifecycle change.
type Event struct {
	ID             string    `json:"id"`
	Type           Type      `json:"type"`
	RequestID      string    `json:"request_id"`
	EmployeeID     string    `json:"employee_id"`
	CompanyID      string    `json:"company_id"`
	Category       string    `json:"category"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	ChargeableDays int       `json:"chargeable_days"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// AMQPPublisher publishes events to a durable queue on the default exchange.
type AMQPPublisher struct {
	ch      *amqp.Channel
	queue   string
	timeout time.Duration
}

// NewAMQPPublisher declares the queue and returns a publisher bound to it.
func NewAMQPPublisher(ch *amqp.Channel, queue string, timeout time.Duration) (*AMQPPublisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	_, err := ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return &AMQPPublisher{ch: ch, queue: queue, timeout: timeout}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		true,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Type:         string(event.Type),
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	return nil
}

// NopPublisher drops events. Used when RabbitMQ is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error {
	slog.DebugContext(ctx, "Event publishing disabled", "type", event.Type, "request_id", event.RequestID)
	return nil
}

// RecordingPublisher keeps published events in memory.
type RecordingPublisher struct {
	Events []Event
	Err    error
}

func (r *RecordingPublisher) Publish(ctx context.Context, event Event) error {
	if r.Err != nil {
		return r.Err
	}
	r.Events = append(r.Events, event)
	return nil
}

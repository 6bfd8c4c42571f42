// Package notification turns admission events into queued messages and delivers them.
// Delivery is at-least-once and never blocks the operation that raised the event.
package notification

import (
	"context"
	"time"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
)

// Message is one queued notification for one recipient.
type Message struct {
	ID        string         `json:"id"`
	Recipient string         `json:"recipient"`
	Email     string         `json:"email"`
	Kind      string         `json:"kind"`
	Subject   string         `json:"subject"`
	Body      string         `json:"body"`
	Payload   map[string]any `json:"payload,omitempty"`
	Attempts  int            `json:"attempts"`
	CreatedAt time.Time      `json:"created_at"`

	// Raw is the encoded form the message was dequeued as. Outbox implementations use it
	// to acknowledge the exact queue entry.
	Raw string `json:"-"`
}

// Outbox is the durable queue between the API process and the delivery worker.
type Outbox interface {
	Enqueue(ctx context.Context, msg *Message) error
	// Dequeue blocks up to timeout and returns (nil, nil) when nothing arrived.
	Dequeue(ctx context.Context, timeout time.Duration) (*Message, error)
	Ack(ctx context.Context, msg *Message) error
	Retry(ctx context.Context, msg *Message) error
}

// Sender delivers a rendered message, e.g. over SMTP.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Notifier is what use cases call directly when they need to notify outside the event flow.
type Notifier interface {
	Notify(ctx context.Context, recipient party.Ref, kind string, payload map[string]any) error
}

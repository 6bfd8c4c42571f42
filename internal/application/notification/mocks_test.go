package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/thriftwise/thriftwise/internal/application/directory"
)

type memoryOutbox struct {
	mu      sync.Mutex
	queue   []*Message
	acked   []*Message
	retried []*Message
}

func (o *memoryOutbox) Enqueue(_ context.Context, msg *Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queue = append(o.queue, msg)
	return nil
}

func (o *memoryOutbox) Dequeue(_ context.Context, _ time.Duration) (*Message, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.queue) == 0 {
		return nil, nil
	}
	msg := o.queue[0]
	o.queue = o.queue[1:]
	return msg, nil
}

func (o *memoryOutbox) Ack(_ context.Context, msg *Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.acked = append(o.acked, msg)
	return nil
}

func (o *memoryOutbox) Retry(_ context.Context, msg *Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.retried = append(o.retried, msg)
	o.queue = append(o.queue, msg)
	return nil
}

type mockSender struct {
	SendFunc func(to, subject, body string) error
	sent     []string
}

func (m *mockSender) Send(_ context.Context, to, subject, body string) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(to, subject, body); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, to)
	return nil
}

var errSMTPDown = errors.New("smtp down")

type mockDirectory struct {
	users     map[uint]*directory.UserInfo
	merchants map[uint]*directory.MerchantInfo
}

func (m *mockDirectory) ResolveUser(_ context.Context, id uint) (*directory.UserInfo, error) {
	return m.users[id], nil
}

func (m *mockDirectory) ResolveMerchant(_ context.Context, id uint) (*directory.MerchantInfo, error) {
	return m.merchants[id], nil
}

func (m *mockDirectory) ResolveContact(_ context.Context, _ uint) (*directory.ContactInfo, error) {
	return nil, nil
}

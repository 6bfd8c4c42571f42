package notification

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

func newTestService(outbox *memoryOutbox) *Service {
	dir := &mockDirectory{
		users: map[uint]*directory.UserInfo{
			7: {ID: 7, Email: "u7@example.com"},
			8: {ID: 8},
		},
		merchants: map[uint]*directory.MerchantInfo{
			1: {ID: 1, Email: "shop@example.com", BusinessName: "Shop"},
		},
	}
	return NewService(outbox, dir, logger.NewLogger())
}

func publicPackage(t *testing.T) *thrift.Package {
	t.Helper()
	pkg, err := thrift.NewPackage(party.Merchant(1), thrift.Details{
		Name:         "Market Ajo",
		TotalAmount:  decimal.NewFromInt(1000),
		DurationDays: 10,
		SlotCount:    4,
		Visibility:   vo.VisibilityPublic,
	}, "")
	require.NoError(t, err)
	pkg.SetID(3)
	return pkg
}

func TestService_HandleApplicationCreated(t *testing.T) {
	outbox := &memoryOutbox{}
	svc := newTestService(outbox)
	pkg := publicPackage(t)
	app, err := thrift.NewApplication(pkg, 7)
	require.NoError(t, err)

	// Admin user 8 has no email and is skipped without failing the others.
	evt := thrift.NewApplicationCreatedEvent(pkg, app, []party.Ref{party.User(8)})
	require.NoError(t, svc.handle(evt))

	require.Len(t, outbox.queue, 1)
	msg := outbox.queue[0]
	assert.Equal(t, "shop@example.com", msg.Email)
	assert.Equal(t, thrift.EventApplicationCreated, msg.Kind)
	assert.Contains(t, msg.Subject, "Market Ajo")
	assert.NotEmpty(t, msg.ID)
}

func TestWorker_DeliversAndAcks(t *testing.T) {
	outbox := &memoryOutbox{}
	require.NoError(t, outbox.Enqueue(context.Background(), &Message{ID: "1", Email: "a@example.com"}))
	sender := &mockSender{}
	w := NewWorker(outbox, sender, time.Millisecond, 3, logger.NewLogger())

	found, err := w.ProcessOne(context.Background())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a@example.com"}, sender.sent)
	assert.Len(t, outbox.acked, 1)

	found, err = w.ProcessOne(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestWorker_RetriesThenDrops(t *testing.T) {
	outbox := &memoryOutbox{}
	require.NoError(t, outbox.Enqueue(context.Background(), &Message{ID: "1", Email: "a@example.com"}))
	sender := &mockSender{SendFunc: func(string, string, string) error { return errSMTPDown }}
	w := NewWorker(outbox, sender, time.Millisecond, 2, logger.NewLogger())

	_, err := w.ProcessOne(context.Background())
	require.NoError(t, err)
	assert.Len(t, outbox.retried, 1)
	assert.Empty(t, outbox.acked)

	_, err = w.ProcessOne(context.Background())
	require.NoError(t, err)
	assert.Len(t, outbox.acked, 1)
	assert.Equal(t, 2, outbox.acked[0].Attempts)
	assert.Empty(t, outbox.queue)
}

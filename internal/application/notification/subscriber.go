package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/domain/shared/events"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/biztime"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

const handleTimeout = 10 * time.Second

// Service resolves recipients and enqueues messages. It implements Notifier and handles
// the admission events published by the thrift use cases.
type Service struct {
	outbox    Outbox
	directory directory.Directory
	logger    logger.Interface
}

func NewService(outbox Outbox, dir directory.Directory, log logger.Interface) *Service {
	return &Service{outbox: outbox, directory: dir, logger: log}
}

// Register subscribes the service to every admission event.
func (s *Service) Register(d events.EventDispatcher) error {
	for _, eventType := range []string{
		thrift.EventInviteCreated,
		thrift.EventInviteResponded,
		thrift.EventApplicationCreated,
		thrift.EventApplicationResolved,
	} {
		if err := d.Subscribe(eventType, events.NewSimpleEventHandler(eventType, s.handle)); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", eventType, err)
		}
	}
	return nil
}

func (s *Service) handle(e events.DomainEvent) error {
	evt, ok := e.(*thrift.AdmissionEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", e)
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	payload := map[string]any{
		"package_id":   evt.PackageID,
		"package_name": evt.PackageName,
		"subject_id":   evt.SubjectID,
		"user_id":      evt.UserID,
		"status":       evt.Status,
	}

	var firstErr error
	for _, recipient := range evt.Recipients {
		if err := s.Notify(ctx, recipient, evt.GetEventType(), payload); err != nil {
			s.logger.Warnw("failed to queue notification",
				"event_type", evt.GetEventType(),
				"recipient", recipient.String(),
				"error", err,
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Notify queues one message. Recipients without a known email are skipped.
func (s *Service) Notify(ctx context.Context, recipient party.Ref, kind string, payload map[string]any) error {
	contact, err := directory.Resolve(ctx, s.directory, recipient)
	if err != nil {
		return fmt.Errorf("failed to resolve recipient: %w", err)
	}
	if contact == nil || contact.Email == "" {
		s.logger.Infow("notification recipient has no email, skipping", "recipient", recipient.String(), "kind", kind)
		return nil
	}

	subject, body := compose(kind, payload)
	msg := &Message{
		ID:        uuid.NewString(),
		Recipient: recipient.String(),
		Email:     contact.Email,
		Kind:      kind,
		Subject:   subject,
		Body:      body,
		Payload:   payload,
		CreatedAt: biztime.NowUTC(),
	}
	if err := s.outbox.Enqueue(ctx, msg); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}

func compose(kind string, payload map[string]any) (subject, body string) {
	name := fmt.Sprint(payload["package_name"])
	status := fmt.Sprint(payload["status"])
	switch kind {
	case thrift.EventInviteCreated:
		return "You have been invited to " + name,
			fmt.Sprintf("You have been invited to join the thrift package %q. Open the app to accept or decline.", name)
	case thrift.EventInviteResponded:
		return "Invite " + status + " for " + name,
			fmt.Sprintf("Your invite to %q was %s.", name, status)
	case thrift.EventApplicationCreated:
		return "New application to " + name,
			fmt.Sprintf("A user has applied to join %q and is waiting for your decision.", name)
	case thrift.EventApplicationResolved:
		return "Your application to " + name + " was " + status,
			fmt.Sprintf("Your application to join %q was %s.", name, status)
	}
	return "Thrift update", fmt.Sprintf("There is an update on %q.", name)
}

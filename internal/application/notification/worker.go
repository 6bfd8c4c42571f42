package notification

import (
	"context"
	"time"

	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

// Worker drains the outbox and hands messages to a Sender.
type Worker struct {
	outbox      Outbox
	sender      Sender
	pollTimeout time.Duration
	maxAttempts int
	logger      logger.Interface
}

func NewWorker(outbox Outbox, sender Sender, pollTimeout time.Duration, maxAttempts int, log logger.Interface) *Worker {
	if pollTimeout <= 0 {
		pollTimeout = 5 * time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &Worker{
		outbox:      outbox,
		sender:      sender,
		pollTimeout: pollTimeout,
		maxAttempts: maxAttempts,
		logger:      log,
	}
}

// Run processes messages until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Infow("notification worker started", "poll_timeout", w.pollTimeout.String(), "max_attempts", w.maxAttempts)
	for {
		select {
		case <-ctx.Done():
			w.logger.Infow("notification worker stopped")
			return nil
		default:
		}

		if _, err := w.ProcessOne(ctx); err != nil && ctx.Err() == nil {
			w.logger.Errorw("notification worker iteration failed", "error", err)
			time.Sleep(time.Second)
		}
	}
}

// ProcessOne delivers at most one message and reports whether one was found.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	msg, err := w.outbox.Dequeue(ctx, w.pollTimeout)
	if err != nil {
		return false, err
	}
	if msg == nil {
		return false, nil
	}

	sendErr := w.sender.Send(ctx, msg.Email, msg.Subject, msg.Body)
	if sendErr == nil {
		w.logger.Infow("notification delivered", "id", msg.ID, "kind", msg.Kind, "recipient", msg.Recipient)
		return true, w.outbox.Ack(ctx, msg)
	}

	msg.Attempts++
	if msg.Attempts >= w.maxAttempts {
		w.logger.Errorw("notification dropped after max attempts",
			"id", msg.ID,
			"kind", msg.Kind,
			"attempts", msg.Attempts,
			"error", sendErr,
		)
		return true, w.outbox.Ack(ctx, msg)
	}

	w.logger.Warnw("notification delivery failed, will retry",
		"id", msg.ID,
		"attempts", msg.Attempts,
		"error", sendErr,
	)
	return true, w.outbox.Retry(ctx, msg)
}

package usecases

import (
	"github.com/thriftwise/thriftwise/internal/domain/shared/events"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

// Admission paths reported to AdmissionMetrics.
const (
	AdmissionPathDirect      = "direct"
	AdmissionPathInvite      = "invite"
	AdmissionPathApplication = "application"
)

// AdmissionMetrics records membership outcomes. Implementations must be safe for
// concurrent use.
type AdmissionMetrics interface {
	RecordAdmission(path, outcome string)
	RecordSlotsGenerated(count int)
}

type noopMetrics struct{}

func (noopMetrics) RecordAdmission(string, string) {}
func (noopMetrics) RecordSlotsGenerated(int)       {}

func metricsOrNoop(m AdmissionMetrics) AdmissionMetrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}

// publish hands an event to the dispatcher after the triggering write has committed.
// Delivery problems are logged and never fail the caller.
func publish(pub events.EventPublisher, log logger.Interface, event events.DomainEvent) {
	if pub == nil {
		return
	}
	if err := pub.Publish(event); err != nil {
		log.Warnw("failed to publish event",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err,
		)
	}
}

// ListResult is a page of items with the total match count.
type ListResult[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}

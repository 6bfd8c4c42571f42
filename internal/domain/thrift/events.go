package thrift

import (
	"strconv"

	"github.com/thriftwise/thriftwise/internal/domain/shared/events"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/shared/biztime"
)

const (
	EventInviteCreated       = "thrift.invite.created"
	EventInviteResponded     = "thrift.invite.responded"
	EventApplicationCreated  = "thrift.application.created"
	EventApplicationResolved = "thrift.application.resolved"
)

// AdmissionEvent announces an invite or application change to the parties who should hear
// about it.
type AdmissionEvent struct {
	events.BaseEvent
	PackageID   uint        `json:"package_id"`
	PackageName string      `json:"package_name"`
	SubjectID   uint        `json:"subject_id"`
	UserID      uint        `json:"user_id"`
	Status      string      `json:"status"`
	Recipients  []party.Ref `json:"-"`
}

func newAdmissionEvent(eventType string, pkg *Package, subjectID, userID uint, status string, recipients []party.Ref) *AdmissionEvent {
	return &AdmissionEvent{
		BaseEvent: events.BaseEvent{
			AggregateID: strconv.FormatUint(uint64(pkg.ID()), 10),
			EventType:   eventType,
			OccurredAt:  biztime.NowUTC(),
			Version:     1,
		},
		PackageID:   pkg.ID(),
		PackageName: pkg.Name(),
		SubjectID:   subjectID,
		UserID:      userID,
		Status:      status,
		Recipients:  recipients,
	}
}

func NewInviteCreatedEvent(pkg *Package, inv *Invite) *AdmissionEvent {
	return newAdmissionEvent(EventInviteCreated, pkg, inv.ID(), inv.InvitedUserID(), inv.Status().String(),
		[]party.Ref{party.User(inv.InvitedUserID())})
}

func NewInviteRespondedEvent(pkg *Package, inv *Invite) *AdmissionEvent {
	return newAdmissionEvent(EventInviteResponded, pkg, inv.ID(), inv.InvitedUserID(), inv.Status().String(),
		[]party.Ref{inv.InvitedBy()})
}

// NewApplicationCreatedEvent notifies the owner and every admin, without duplicates.
func NewApplicationCreatedEvent(pkg *Package, app *Application, admins []party.Ref) *AdmissionEvent {
	recipients := []party.Ref{pkg.Creator()}
	seen := map[party.Ref]bool{pkg.Creator(): true}
	for _, a := range admins {
		if !seen[a] {
			seen[a] = true
			recipients = append(recipients, a)
		}
	}
	return newAdmissionEvent(EventApplicationCreated, pkg, app.ID(), app.UserID(), app.Status().String(), recipients)
}

func NewApplicationResolvedEvent(pkg *Package, app *Application) *AdmissionEvent {
	return newAdmissionEvent(EventApplicationResolved, pkg, app.ID(), app.UserID(), app.Status().String(),
		[]party.Ref{party.User(app.UserID())})
}

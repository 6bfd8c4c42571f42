package thrift

import (
	"time"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/biztime"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

// Invite is an offer to one user to join a package. At most one pending invite exists per
// (package, user); re-inviting replaces it.
type Invite struct {
	id            uint
	packageID     uint
	invitedUserID uint
	invitedBy     party.Ref
	status        vo.ResponseStatus
	respondedAt   *time.Time
	createdAt     time.Time
}

func NewInvite(packageID, invitedUserID uint, invitedBy party.Ref) (*Invite, error) {
	if packageID == 0 || invitedUserID == 0 {
		return nil, errors.NewValidationError("package and invited user are required")
	}
	if !invitedBy.IsPrincipal() {
		return nil, errors.NewValidationError("invite must be sent by a merchant or a user")
	}
	return &Invite{
		packageID:     packageID,
		invitedUserID: invitedUserID,
		invitedBy:     invitedBy,
		status:        vo.ResponseStatusPending,
		createdAt:     biztime.NowUTC(),
	}, nil
}

func ReconstructInvite(id, packageID, invitedUserID uint, invitedBy party.Ref, status vo.ResponseStatus, respondedAt *time.Time, createdAt time.Time) *Invite {
	return &Invite{
		id:            id,
		packageID:     packageID,
		invitedUserID: invitedUserID,
		invitedBy:     invitedBy,
		status:        status,
		respondedAt:   respondedAt,
		createdAt:     createdAt,
	}
}

// Respond records the invited user's answer. Only the invited user may respond, once.
func (i *Invite) Respond(responder party.Ref, accept bool) error {
	if responder != party.User(i.invitedUserID) {
		return errors.NewForbiddenError("only the invited user may respond to this invite")
	}
	if !i.status.IsPending() {
		return errors.NewStateError(errors.ReasonAlreadyResponded, "invite has already been "+i.status.String())
	}
	now := biztime.NowUTC()
	i.status = vo.ResponseFor(accept)
	i.respondedAt = &now
	return nil
}

func (i *Invite) SetID(id uint) { i.id = id }

func (i *Invite) ID() uint                  { return i.id }
func (i *Invite) PackageID() uint           { return i.packageID }
func (i *Invite) InvitedUserID() uint       { return i.invitedUserID }
func (i *Invite) InvitedBy() party.Ref      { return i.invitedBy }
func (i *Invite) Status() vo.ResponseStatus { return i.status }
func (i *Invite) RespondedAt() *time.Time   { return i.respondedAt }
func (i *Invite) CreatedAt() time.Time      { return i.createdAt }

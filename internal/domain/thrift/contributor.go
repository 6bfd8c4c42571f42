package thrift

import (
	"time"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/biztime"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

// Contributor is a participant admitted into one package, backed by a merchant contact or
// a platform user.
type Contributor struct {
	id          uint
	packageID   uint
	participant party.Ref
	status      vo.ContributorStatus
	createdAt   time.Time
	updatedAt   time.Time
}

func NewContributor(packageID uint, participant party.Ref) (*Contributor, error) {
	if packageID == 0 {
		return nil, errors.NewValidationError("package id is required")
	}
	if participant.ID == 0 || !(participant.IsUser() || participant.IsContact()) {
		return nil, errors.NewValidationError("contributor must be a user or a contact")
	}
	now := biztime.NowUTC()
	return &Contributor{
		packageID:   packageID,
		participant: participant,
		status:      vo.ContributorStatusPending,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructContributor(id, packageID uint, participant party.Ref, status vo.ContributorStatus, createdAt, updatedAt time.Time) *Contributor {
	return &Contributor{
		id:          id,
		packageID:   packageID,
		participant: participant,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Confirm moves a pending contributor into the slot pool. Confirmed and rejected are terminal.
func (c *Contributor) Confirm() error {
	return c.resolve(vo.ContributorStatusConfirmed)
}

func (c *Contributor) Reject() error {
	return c.resolve(vo.ContributorStatusRejected)
}

func (c *Contributor) resolve(next vo.ContributorStatus) error {
	if !c.status.IsPending() {
		return errors.NewStateError("contributor_not_pending", "contributor is already "+c.status.String())
	}
	c.status = next
	c.updatedAt = biztime.NowUTC()
	return nil
}

func (c *Contributor) SetID(id uint) { c.id = id }

func (c *Contributor) ID() uint                     { return c.id }
func (c *Contributor) PackageID() uint              { return c.packageID }
func (c *Contributor) Participant() party.Ref       { return c.participant }
func (c *Contributor) Status() vo.ContributorStatus { return c.status }
func (c *Contributor) IsConfirmed() bool            { return c.status.IsConfirmed() }
func (c *Contributor) CreatedAt() time.Time         { return c.createdAt }
func (c *Contributor) UpdatedAt() time.Time         { return c.updatedAt }

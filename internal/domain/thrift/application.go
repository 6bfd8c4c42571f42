package thrift

import (
	"time"

	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/biztime"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

// Application is a user's self-service request to join a public package.
type Application struct {
	id          uint
	packageID   uint
	userID      uint
	status      vo.ResponseStatus
	respondedAt *time.Time
	createdAt   time.Time
}

// NewApplication requires the target package to be public.
func NewApplication(pkg *Package, userID uint) (*Application, error) {
	if userID == 0 {
		return nil, errors.NewValidationError("user id is required")
	}
	if !pkg.IsPublic() {
		return nil, errors.NewStateError(errors.ReasonPackageNotPublic, "only public packages accept applications")
	}
	return &Application{
		packageID: pkg.ID(),
		userID:    userID,
		status:    vo.ResponseStatusPending,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructApplication(id, packageID, userID uint, status vo.ResponseStatus, respondedAt *time.Time, createdAt time.Time) *Application {
	return &Application{
		id:          id,
		packageID:   packageID,
		userID:      userID,
		status:      status,
		respondedAt: respondedAt,
		createdAt:   createdAt,
	}
}

// Respond resolves a pending application. Authority is checked by the caller.
func (a *Application) Respond(accept bool) error {
	if !a.status.IsPending() {
		return errors.NewStateError(errors.ReasonAlreadyResponded, "application has already been "+a.status.String())
	}
	now := biztime.NowUTC()
	a.status = vo.ResponseFor(accept)
	a.respondedAt = &now
	return nil
}

func (a *Application) SetID(id uint) { a.id = id }

func (a *Application) ID() uint                  { return a.id }
func (a *Application) PackageID() uint           { return a.packageID }
func (a *Application) UserID() uint              { return a.userID }
func (a *Application) Status() vo.ResponseStatus { return a.status }
func (a *Application) RespondedAt() *time.Time   { return a.respondedAt }
func (a *Application) CreatedAt() time.Time      { return a.createdAt }

package thrift

import (
	"context"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
)

// Lookups return (nil, nil) when the row does not exist.

type PackageRepository interface {
	// Create fails with a conflict when the creator already has a package with that name.
	Create(ctx context.Context, pkg *Package) error
	Update(ctx context.Context, pkg *Package) error
	GetByID(ctx context.Context, id uint) (*Package, error)
	GetBySID(ctx context.Context, sid string) (*Package, error)
	// LockForUpdate holds a row lock on the package until the enclosing transaction ends.
	LockForUpdate(ctx context.Context, id uint) error
	ExistsByCreatorAndName(ctx context.Context, creator party.Ref, name string, excludeID uint) (bool, error)
	// ListForPrincipal returns packages the principal created or administers.
	ListForPrincipal(ctx context.Context, principal party.Ref, page, pageSize int) ([]*Package, int64, error)
	ListPublic(ctx context.Context, page, pageSize int) ([]*Package, int64, error)
	// ListRejectedForUser returns packages where the user's invite or application was rejected.
	ListRejectedForUser(ctx context.Context, userID uint) ([]*Package, error)
}

// AdminRepository tracks user admins and merchant admins as separate associations.
type AdminRepository interface {
	// Add is idempotent.
	Add(ctx context.Context, packageID uint, admin party.Ref) error
	IsAdmin(ctx context.Context, packageID uint, principal party.Ref) (bool, error)
	List(ctx context.Context, packageID uint) ([]party.Ref, error)
}

type ContributorRepository interface {
	// FindOrCreate inserts c unless (package, participant) already exists, and returns the
	// stored row. created reports whether this call inserted it.
	FindOrCreate(ctx context.Context, c *Contributor) (stored *Contributor, created bool, err error)
	GetByParticipant(ctx context.Context, packageID uint, participant party.Ref) (*Contributor, error)
	ListByPackage(ctx context.Context, packageID uint) ([]*Contributor, error)
	// ListConfirmed returns confirmed contributors in admission order.
	ListConfirmed(ctx context.Context, packageID uint) ([]*Contributor, error)
	// TransitionPending moves pending rows to status. A nil ids slice targets every pending row.
	TransitionPending(ctx context.Context, packageID uint, ids []uint, status vo.ContributorStatus) (int64, error)
	// DeleteByParticipant and DeleteExcept also remove the slots allocated to the deleted
	// contributors.
	DeleteByParticipant(ctx context.Context, packageID uint, participant party.Ref) error
	// DeleteExcept removes every contributor of the package whose participant is not in keep.
	DeleteExcept(ctx context.Context, packageID uint, keep []party.Ref) (int64, error)
}

type InviteRepository interface {
	// Replace deletes any invite for the same (package, user) and stores inv.
	Replace(ctx context.Context, inv *Invite) error
	GetByID(ctx context.Context, id uint) (*Invite, error)
	// SaveResponse persists a response only while the stored row is still pending.
	// It reports false when another response won the race.
	SaveResponse(ctx context.Context, inv *Invite) (bool, error)
	HasPending(ctx context.Context, packageID, userID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint) ([]*Invite, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id uint) (*Application, error)
	SaveResponse(ctx context.Context, app *Application) (bool, error)
	HasPending(ctx context.Context, packageID, userID uint) (bool, error)
	ListByPackage(ctx context.Context, packageID uint) ([]*Application, error)
	ListByUser(ctx context.Context, userID uint) ([]*Application, error)
}

type SlotRepository interface {
	// ReplaceAll deletes the package's slots and stores slots in their place.
	ReplaceAll(ctx context.Context, packageID uint, slots []*Slot) error
	ListByPackage(ctx context.Context, packageID uint) ([]*Slot, error)
}

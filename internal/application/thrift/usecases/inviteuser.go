package usecases

import (
	"context"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/events"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/db"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type InviteUserCommand struct {
	Principal party.Ref
	PackageID uint
	UserID    uint
}

type InviteUserUseCase struct {
	invites   thrift.InviteRepository
	directory directory.Directory
	txMgr     db.Transactor
	authority packageAuthority
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewInviteUserUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	invites thrift.InviteRepository,
	dir directory.Directory,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *InviteUserUseCase {
	return &InviteUserUseCase{
		invites:   invites,
		directory: dir,
		txMgr:     txMgr,
		authority: newPackageAuthority(packages, admins),
		publisher: publisher,
		logger:    logger,
	}
}

// Execute replaces any earlier invite for the same user with a fresh pending one.
func (uc *InviteUserUseCase) Execute(ctx context.Context, cmd InviteUserCommand) (*dto.InviteDTO, error) {
	uc.logger.Infow("executing invite user use case", "package_id", cmd.PackageID, "user_id", cmd.UserID)

	pkg, err := uc.authority.load(ctx, cmd.Principal, cmd.PackageID)
	if err != nil {
		return nil, err
	}

	user, err := uc.directory.ResolveUser(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to resolve invited user", "user_id", cmd.UserID, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	inv, err := thrift.NewInvite(pkg.ID(), cmd.UserID, cmd.Principal)
	if err != nil {
		return nil, err
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.invites.Replace(txCtx, inv)
	})
	if err != nil {
		uc.logger.Errorw("failed to store invite", "package_id", pkg.ID(), "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	publish(uc.publisher, uc.logger, thrift.NewInviteCreatedEvent(pkg, inv))

	uc.logger.Infow("user invited", "invite_id", inv.ID(), "package_id", pkg.ID(), "user_id", cmd.UserID)
	return dto.ToInviteDTO(inv), nil
}

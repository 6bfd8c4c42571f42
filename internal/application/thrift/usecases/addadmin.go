package usecases

import (
	"context"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type AddAdminCommand struct {
	Principal party.Ref
	PackageID uint
	Admin     party.Ref
}

type AddAdminUseCase struct {
	admins    thrift.AdminRepository
	directory directory.Directory
	authority packageAuthority
	logger    logger.Interface
}

func NewAddAdminUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	dir directory.Directory,
	logger logger.Interface,
) *AddAdminUseCase {
	return &AddAdminUseCase{
		admins:    admins,
		directory: dir,
		authority: newPackageAuthority(packages, admins),
		logger:    logger,
	}
}

// Execute adds a user or merchant to the package's admin association. Adding an existing
// admin is a no-op.
func (uc *AddAdminUseCase) Execute(ctx context.Context, cmd AddAdminCommand) ([]dto.PartyDTO, error) {
	if !cmd.Admin.IsPrincipal() || cmd.Admin.ID == 0 {
		return nil, errors.NewValidationError("admin must be a user or a merchant")
	}

	pkg, err := uc.authority.load(ctx, cmd.Principal, cmd.PackageID)
	if err != nil {
		return nil, err
	}

	found, err := directory.Resolve(ctx, uc.directory, cmd.Admin)
	if err != nil {
		uc.logger.Errorw("failed to resolve admin", "admin", cmd.Admin.String(), "error", err)
		return nil, err
	}
	if found == nil {
		return nil, errors.NewNotFoundError(cmd.Admin.Kind.String() + " not found")
	}

	if err := uc.admins.Add(ctx, pkg.ID(), cmd.Admin); err != nil {
		uc.logger.Errorw("failed to add package admin", "package_id", pkg.ID(), "error", err)
		return nil, err
	}

	admins, err := uc.admins.List(ctx, pkg.ID())
	if err != nil {
		return nil, err
	}
	uc.logger.Infow("package admin added", "package_id", pkg.ID(), "admin", cmd.Admin.String())
	return dto.ToPartyDTOs(admins), nil
}

package usecases

import (
	"context"

	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type UpdatePackageStatusCommand struct {
	Principal party.Ref
	PackageID uint
	Status    string
}

type UpdatePackageStatusUseCase struct {
	packages  thrift.PackageRepository
	authority packageAuthority
	logger    logger.Interface
}

func NewUpdatePackageStatusUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	logger logger.Interface,
) *UpdatePackageStatusUseCase {
	return &UpdatePackageStatusUseCase{
		packages:  packages,
		authority: newPackageAuthority(packages, admins),
		logger:    logger,
	}
}

func (uc *UpdatePackageStatusUseCase) Execute(ctx context.Context, cmd UpdatePackageStatusCommand) (*dto.PackageDTO, error) {
	pkg, err := uc.authority.load(ctx, cmd.Principal, cmd.PackageID)
	if err != nil {
		return nil, err
	}

	from := pkg.Status()
	if err := pkg.ChangeStatus(vo.PackageStatus(cmd.Status)); err != nil {
		return nil, err
	}
	if err := uc.packages.Update(ctx, pkg); err != nil {
		uc.logger.Errorw("failed to update package status", "package_id", pkg.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("package status changed", "package_id", pkg.ID(), "from", from, "to", pkg.Status())
	return dto.ToPackageDTO(pkg), nil
}

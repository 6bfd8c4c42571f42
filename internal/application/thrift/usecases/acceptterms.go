package usecases

import (
	"context"

	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type AcceptTermsCommand struct {
	Principal party.Ref
	PackageID uint
	Accepted  bool
}

type AcceptTermsUseCase struct {
	packages  thrift.PackageRepository
	authority packageAuthority
	logger    logger.Interface
}

func NewAcceptTermsUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	logger logger.Interface,
) *AcceptTermsUseCase {
	return &AcceptTermsUseCase{
		packages:  packages,
		authority: newPackageAuthority(packages, admins),
		logger:    logger,
	}
}

func (uc *AcceptTermsUseCase) Execute(ctx context.Context, cmd AcceptTermsCommand) (*dto.PackageDTO, error) {
	pkg, err := uc.authority.load(ctx, cmd.Principal, cmd.PackageID)
	if err != nil {
		return nil, err
	}

	pkg.AcceptTerms(cmd.Accepted)
	if err := uc.packages.Update(ctx, pkg); err != nil {
		uc.logger.Errorw("failed to update terms acceptance", "package_id", pkg.ID(), "error", err)
		return nil, err
	}

	uc.logger.Infow("package terms acceptance updated", "package_id", pkg.ID(), "accepted", cmd.Accepted)
	return dto.ToPackageDTO(pkg), nil
}

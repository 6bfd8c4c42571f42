package usecases

import (
	"context"

	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type PackageMembersQuery struct {
	Principal party.Ref
	PackageID uint
}

type ListContributorsUseCase struct {
	contributors thrift.ContributorRepository
	authority    packageAuthority
	logger       logger.Interface
}

func NewListContributorsUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	contributors thrift.ContributorRepository,
	logger logger.Interface,
) *ListContributorsUseCase {
	return &ListContributorsUseCase{
		contributors: contributors,
		authority:    newPackageAuthority(packages, admins),
		logger:       logger,
	}
}

func (uc *ListContributorsUseCase) Execute(ctx context.Context, query PackageMembersQuery) ([]*dto.ContributorDTO, error) {
	pkg, err := uc.authority.load(ctx, query.Principal, query.PackageID)
	if err != nil {
		return nil, err
	}
	contributors, err := uc.contributors.ListByPackage(ctx, pkg.ID())
	if err != nil {
		uc.logger.Errorw("failed to list contributors", "package_id", pkg.ID(), "error", err)
		return nil, err
	}
	return dto.ToContributorDTOs(contributors), nil
}

type ListApplicationsUseCase struct {
	applications thrift.ApplicationRepository
	authority    packageAuthority
	logger       logger.Interface
}

func NewListApplicationsUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	applications thrift.ApplicationRepository,
	logger logger.Interface,
) *ListApplicationsUseCase {
	return &ListApplicationsUseCase{
		applications: applications,
		authority:    newPackageAuthority(packages, admins),
		logger:       logger,
	}
}

func (uc *ListApplicationsUseCase) Execute(ctx context.Context, query PackageMembersQuery) ([]*dto.ApplicationDTO, error) {
	pkg, err := uc.authority.load(ctx, query.Principal, query.PackageID)
	if err != nil {
		return nil, err
	}
	apps, err := uc.applications.ListByPackage(ctx, pkg.ID())
	if err != nil {
		uc.logger.Errorw("failed to list applications", "package_id", pkg.ID(), "error", err)
		return nil, err
	}
	return dto.ToApplicationDTOs(apps), nil
}

type ListUserInvitesUseCase struct {
	invites thrift.InviteRepository
	logger  logger.Interface
}

func NewListUserInvitesUseCase(invites thrift.InviteRepository, logger logger.Interface) *ListUserInvitesUseCase {
	return &ListUserInvitesUseCase{invites: invites, logger: logger}
}

func (uc *ListUserInvitesUseCase) Execute(ctx context.Context, principal party.Ref) ([]*dto.InviteDTO, error) {
	if !principal.IsUser() {
		return nil, errors.NewForbiddenError("only users receive invites")
	}
	invites, err := uc.invites.ListByUser(ctx, principal.ID)
	if err != nil {
		uc.logger.Errorw("failed to list invites", "user_id", principal.ID, "error", err)
		return nil, err
	}
	return dto.ToInviteDTOs(invites), nil
}

type ListUserApplicationsUseCase struct {
	applications thrift.ApplicationRepository
	logger       logger.Interface
}

func NewListUserApplicationsUseCase(applications thrift.ApplicationRepository, logger logger.Interface) *ListUserApplicationsUseCase {
	return &ListUserApplicationsUseCase{applications: applications, logger: logger}
}

func (uc *ListUserApplicationsUseCase) Execute(ctx context.Context, principal party.Ref) ([]*dto.ApplicationDTO, error) {
	if !principal.IsUser() {
		return nil, errors.NewForbiddenError("only users submit applications")
	}
	apps, err := uc.applications.ListByUser(ctx, principal.ID)
	if err != nil {
		uc.logger.Errorw("failed to list applications", "user_id", principal.ID, "error", err)
		return nil, err
	}
	return dto.ToApplicationDTOs(apps), nil
}

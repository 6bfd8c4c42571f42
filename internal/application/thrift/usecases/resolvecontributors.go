package usecases

import (
	"context"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

// ResolveContributorsCommand targets contributor ids of one package. Only pending rows
// move; confirmed and rejected rows are left alone.
type ResolveContributorsCommand struct {
	Principal      party.Ref
	PackageID      uint
	ContributorIDs []uint
}

type resolveContributors struct {
	contributors thrift.ContributorRepository
	authority    packageAuthority
	logger       logger.Interface
}

func (r resolveContributors) run(ctx context.Context, cmd ResolveContributorsCommand, status vo.ContributorStatus) (int64, error) {
	pkg, err := r.authority.load(ctx, cmd.Principal, cmd.PackageID)
	if err != nil {
		return 0, err
	}

	n, err := r.contributors.TransitionPending(ctx, pkg.ID(), cmd.ContributorIDs, status)
	if err != nil {
		r.logger.Errorw("failed to transition contributors", "package_id", pkg.ID(), "status", status, "error", err)
		return 0, err
	}

	r.logger.Infow("contributors transitioned", "package_id", pkg.ID(), "status", status, "count", n)
	return n, nil
}

type ConfirmContributorsUseCase struct {
	resolveContributors
}

func NewConfirmContributorsUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	contributors thrift.ContributorRepository,
	logger logger.Interface,
) *ConfirmContributorsUseCase {
	return &ConfirmContributorsUseCase{resolveContributors{
		contributors: contributors,
		authority:    newPackageAuthority(packages, admins),
		logger:       logger,
	}}
}

// Execute confirms the listed pending contributors, or every pending contributor of the
// package when no ids are given. It returns the number confirmed.
func (uc *ConfirmContributorsUseCase) Execute(ctx context.Context, cmd ResolveContributorsCommand) (int64, error) {
	if cmd.ContributorIDs != nil && len(cmd.ContributorIDs) == 0 {
		cmd.ContributorIDs = nil
	}
	return uc.run(ctx, cmd, vo.ContributorStatusConfirmed)
}

type RejectContributorsUseCase struct {
	resolveContributors
}

func NewRejectContributorsUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	contributors thrift.ContributorRepository,
	logger logger.Interface,
) *RejectContributorsUseCase {
	return &RejectContributorsUseCase{resolveContributors{
		contributors: contributors,
		authority:    newPackageAuthority(packages, admins),
		logger:       logger,
	}}
}

// Execute rejects the listed pending contributors. Ids are required.
func (uc *RejectContributorsUseCase) Execute(ctx context.Context, cmd ResolveContributorsCommand) (int64, error) {
	if len(cmd.ContributorIDs) == 0 {
		return 0, errors.NewValidationError("contributor ids are required")
	}
	return uc.run(ctx, cmd, vo.ContributorStatusRejected)
}

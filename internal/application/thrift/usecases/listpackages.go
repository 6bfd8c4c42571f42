package usecases

import (
	"context"

	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/constants"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type ListPackagesQuery struct {
	Principal party.Ref
	Page      int
	PageSize  int
}

func (q *ListPackagesQuery) normalize() {
	if q.Page < 1 {
		q.Page = constants.DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = constants.DefaultPageSize
	}
	if q.PageSize > constants.MaxPageSize {
		q.PageSize = constants.MaxPageSize
	}
}

type ListPackagesUseCase struct {
	packages thrift.PackageRepository
	logger   logger.Interface
}

func NewListPackagesUseCase(packages thrift.PackageRepository, logger logger.Interface) *ListPackagesUseCase {
	return &ListPackagesUseCase{packages: packages, logger: logger}
}

// Execute lists packages the principal created or administers.
func (uc *ListPackagesUseCase) Execute(ctx context.Context, query ListPackagesQuery) (*ListResult[*dto.PackageDTO], error) {
	if !query.Principal.IsPrincipal() {
		return nil, errors.NewForbiddenError("only users and merchants own packages")
	}
	query.normalize()

	pkgs, total, err := uc.packages.ListForPrincipal(ctx, query.Principal, query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list packages", "principal", query.Principal.String(), "error", err)
		return nil, err
	}
	return &ListResult[*dto.PackageDTO]{
		Items:    dto.ToPackageDTOs(pkgs),
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

type ListPublicPackagesUseCase struct {
	packages thrift.PackageRepository
	logger   logger.Interface
}

func NewListPublicPackagesUseCase(packages thrift.PackageRepository, logger logger.Interface) *ListPublicPackagesUseCase {
	return &ListPublicPackagesUseCase{packages: packages, logger: logger}
}

func (uc *ListPublicPackagesUseCase) Execute(ctx context.Context, query ListPackagesQuery) (*ListResult[*dto.PackageDTO], error) {
	query.normalize()

	pkgs, total, err := uc.packages.ListPublic(ctx, query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list public packages", "error", err)
		return nil, err
	}
	return &ListResult[*dto.PackageDTO]{
		Items:    dto.ToPackageDTOs(pkgs),
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

type ListRejectedPackagesUseCase struct {
	packages thrift.PackageRepository
	logger   logger.Interface
}

func NewListRejectedPackagesUseCase(packages thrift.PackageRepository, logger logger.Interface) *ListRejectedPackagesUseCase {
	return &ListRejectedPackagesUseCase{packages: packages, logger: logger}
}

// Execute lists packages where the user's invite or application was rejected.
func (uc *ListRejectedPackagesUseCase) Execute(ctx context.Context, principal party.Ref) ([]*dto.PackageDTO, error) {
	if !principal.IsUser() {
		return nil, errors.NewForbiddenError("only users have rejected packages")
	}
	pkgs, err := uc.packages.ListRejectedForUser(ctx, principal.ID)
	if err != nil {
		uc.logger.Errorw("failed to list rejected packages", "user_id", principal.ID, "error", err)
		return nil, err
	}
	return dto.ToPackageDTOs(pkgs), nil
}

package usecases

import (
	"context"
	"fmt"

	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
	"github.com/thriftwise/thriftwise/internal/shared/services/markdown"
)

type GetPackageQuery struct {
	Principal party.Ref
	PackageID uint
}

type GetPackageUseCase struct {
	admins       thrift.AdminRepository
	contributors thrift.ContributorRepository
	slots        thrift.SlotRepository
	renderer     markdown.TermsRenderer
	authority    packageAuthority
	logger       logger.Interface
}

func NewGetPackageUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	contributors thrift.ContributorRepository,
	slots thrift.SlotRepository,
	renderer markdown.TermsRenderer,
	logger logger.Interface,
) *GetPackageUseCase {
	return &GetPackageUseCase{
		admins:       admins,
		contributors: contributors,
		slots:        slots,
		renderer:     renderer,
		authority:    newPackageAuthority(packages, admins),
		logger:       logger,
	}
}

func (uc *GetPackageUseCase) Execute(ctx context.Context, query GetPackageQuery) (*dto.PackageDetailDTO, error) {
	pkg, err := uc.authority.load(ctx, query.Principal, query.PackageID)
	if err != nil {
		return nil, err
	}

	contributors, err := uc.contributors.ListByPackage(ctx, pkg.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors: %w", err)
	}
	slots, err := uc.slots.ListByPackage(ctx, pkg.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	admins, err := uc.admins.List(ctx, pkg.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	return &dto.PackageDetailDTO{
		PackageDTO:   *dto.ToPackageDTO(pkg),
		TermsHTML:    renderTerms(uc.renderer, uc.logger, pkg),
		Contributors: dto.ToContributorDTOs(contributors),
		Slots:        dto.ToSlotDTOs(slots),
		Admins:       dto.ToPartyDTOs(admins),
	}, nil
}

type GetPublicPackageUseCase struct {
	packages thrift.PackageRepository
	renderer markdown.TermsRenderer
	logger   logger.Interface
}

func NewGetPublicPackageUseCase(
	packages thrift.PackageRepository,
	renderer markdown.TermsRenderer,
	logger logger.Interface,
) *GetPublicPackageUseCase {
	return &GetPublicPackageUseCase{
		packages: packages,
		renderer: renderer,
		logger:   logger,
	}
}

// Execute looks a public package up by its SID. Private packages read as not found.
func (uc *GetPublicPackageUseCase) Execute(ctx context.Context, sid string) (*dto.PackageDetailDTO, error) {
	pkg, err := uc.packages.GetBySID(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil || !pkg.IsPublic() {
		return nil, errors.NewNotFoundError("thrift package not found")
	}
	return &dto.PackageDetailDTO{
		PackageDTO: *dto.ToPackageDTO(pkg),
		TermsHTML:  renderTerms(uc.renderer, uc.logger, pkg),
	}, nil
}

func renderTerms(renderer markdown.TermsRenderer, log logger.Interface, pkg *thrift.Package) string {
	if renderer == nil || pkg.TermsText() == "" {
		return ""
	}
	html, err := renderer.Render(pkg.TermsText())
	if err != nil {
		log.Warnw("failed to render package terms", "package_id", pkg.ID(), "error", err)
		return ""
	}
	return html
}

package thrift

import (
	"context"

	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/application/thrift/usecases"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
)

type createPackageUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreatePackageCommand) (*dto.PackageDTO, error)
}

type saveProgressUseCase interface {
	Execute(ctx context.Context, cmd usecases.SaveProgressCommand) (*usecases.SaveProgressResult, error)
}

type getPackageUseCase interface {
	Execute(ctx context.Context, query usecases.GetPackageQuery) (*dto.PackageDetailDTO, error)
}

type getPublicPackageUseCase interface {
	Execute(ctx context.Context, sid string) (*dto.PackageDetailDTO, error)
}

type listPackagesUseCase interface {
	Execute(ctx context.Context, query usecases.ListPackagesQuery) (*usecases.ListResult[*dto.PackageDTO], error)
}

type listRejectedPackagesUseCase interface {
	Execute(ctx context.Context, principal party.Ref) ([]*dto.PackageDTO, error)
}

type updatePackageStatusUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdatePackageStatusCommand) (*dto.PackageDTO, error)
}

type acceptTermsUseCase interface {
	Execute(ctx context.Context, cmd usecases.AcceptTermsCommand) (*dto.PackageDTO, error)
}

type addAdminUseCase interface {
	Execute(ctx context.Context, cmd usecases.AddAdminCommand) ([]dto.PartyDTO, error)
}

type generateSlotsUseCase interface {
	Execute(ctx context.Context, cmd usecases.GenerateSlotsCommand) ([]*dto.SlotDTO, error)
}

type addContributorsUseCase interface {
	Execute(ctx context.Context, cmd usecases.AddContributorsCommand) (*usecases.AddContributorsResult, error)
}

type resolveContributorsUseCase interface {
	Execute(ctx context.Context, cmd usecases.ResolveContributorsCommand) (int64, error)
}

type listContributorsUseCase interface {
	Execute(ctx context.Context, query usecases.PackageMembersQuery) ([]*dto.ContributorDTO, error)
}

type listApplicationsUseCase interface {
	Execute(ctx context.Context, query usecases.PackageMembersQuery) ([]*dto.ApplicationDTO, error)
}

type inviteUserUseCase interface {
	Execute(ctx context.Context, cmd usecases.InviteUserCommand) (*dto.InviteDTO, error)
}

type respondToInviteUseCase interface {
	Execute(ctx context.Context, cmd usecases.RespondToInviteCommand) (*dto.InviteDTO, error)
}

type listUserInvitesUseCase interface {
	Execute(ctx context.Context, principal party.Ref) ([]*dto.InviteDTO, error)
}

type applyToPackageUseCase interface {
	Execute(ctx context.Context, cmd usecases.ApplyToPackageCommand) (*dto.ApplicationDTO, error)
}

type respondToApplicationUseCase interface {
	Execute(ctx context.Context, cmd usecases.RespondToApplicationCommand) (*dto.ApplicationDTO, error)
}

type listUserApplicationsUseCase interface {
	Execute(ctx context.Context, principal party.Ref) ([]*dto.ApplicationDTO, error)
}

// PackageUseCases groups the registry operations served by PackageHandler.
type PackageUseCases struct {
	Create        createPackageUseCase
	SaveProgress  saveProgressUseCase
	Get           getPackageUseCase
	GetPublic     getPublicPackageUseCase
	List          listPackagesUseCase
	ListPublic    listPackagesUseCase
	ListRejected  listRejectedPackagesUseCase
	UpdateStatus  updatePackageStatusUseCase
	AcceptTerms   acceptTermsUseCase
	AddAdmin      addAdminUseCase
	GenerateSlots generateSlotsUseCase
}

// MembershipUseCases groups the admission operations served by MembershipHandler.
type MembershipUseCases struct {
	AddContributors      addContributorsUseCase
	ConfirmContributors  resolveContributorsUseCase
	RejectContributors   resolveContributorsUseCase
	ListContributors     listContributorsUseCase
	ListApplications     listApplicationsUseCase
	InviteUser           inviteUserUseCase
	RespondToInvite      respondToInviteUseCase
	ListUserInvites      listUserInvitesUseCase
	Apply                applyToPackageUseCase
	RespondToApplication respondToApplicationUseCase
	ListUserApplications listUserApplicationsUseCase
}

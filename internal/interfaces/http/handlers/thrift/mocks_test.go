package thrift

import (
	"context"

	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/application/thrift/usecases"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
)

type mockCreatePackageUC struct {
	fn func(ctx context.Context, cmd usecases.CreatePackageCommand) (*dto.PackageDTO, error)
}

func (m *mockCreatePackageUC) Execute(ctx context.Context, cmd usecases.CreatePackageCommand) (*dto.PackageDTO, error) {
	return m.fn(ctx, cmd)
}

type mockSaveProgressUC struct {
	fn func(ctx context.Context, cmd usecases.SaveProgressCommand) (*usecases.SaveProgressResult, error)
}

func (m *mockSaveProgressUC) Execute(ctx context.Context, cmd usecases.SaveProgressCommand) (*usecases.SaveProgressResult, error) {
	return m.fn(ctx, cmd)
}

type mockGetPackageUC struct {
	fn func(ctx context.Context, query usecases.GetPackageQuery) (*dto.PackageDetailDTO, error)
}

func (m *mockGetPackageUC) Execute(ctx context.Context, query usecases.GetPackageQuery) (*dto.PackageDetailDTO, error) {
	return m.fn(ctx, query)
}

type mockListPackagesUC struct {
	fn func(ctx context.Context, query usecases.ListPackagesQuery) (*usecases.ListResult[*dto.PackageDTO], error)
}

func (m *mockListPackagesUC) Execute(ctx context.Context, query usecases.ListPackagesQuery) (*usecases.ListResult[*dto.PackageDTO], error) {
	return m.fn(ctx, query)
}

type mockAcceptTermsUC struct {
	fn func(ctx context.Context, cmd usecases.AcceptTermsCommand) (*dto.PackageDTO, error)
}

func (m *mockAcceptTermsUC) Execute(ctx context.Context, cmd usecases.AcceptTermsCommand) (*dto.PackageDTO, error) {
	return m.fn(ctx, cmd)
}

type mockAddAdminUC struct {
	fn func(ctx context.Context, cmd usecases.AddAdminCommand) ([]dto.PartyDTO, error)
}

func (m *mockAddAdminUC) Execute(ctx context.Context, cmd usecases.AddAdminCommand) ([]dto.PartyDTO, error) {
	return m.fn(ctx, cmd)
}

type mockGenerateSlotsUC struct {
	fn func(ctx context.Context, cmd usecases.GenerateSlotsCommand) ([]*dto.SlotDTO, error)
}

func (m *mockGenerateSlotsUC) Execute(ctx context.Context, cmd usecases.GenerateSlotsCommand) ([]*dto.SlotDTO, error) {
	return m.fn(ctx, cmd)
}

type mockAddContributorsUC struct {
	fn func(ctx context.Context, cmd usecases.AddContributorsCommand) (*usecases.AddContributorsResult, error)
}

func (m *mockAddContributorsUC) Execute(ctx context.Context, cmd usecases.AddContributorsCommand) (*usecases.AddContributorsResult, error) {
	return m.fn(ctx, cmd)
}

type mockResolveContributorsUC struct {
	fn func(ctx context.Context, cmd usecases.ResolveContributorsCommand) (int64, error)
}

func (m *mockResolveContributorsUC) Execute(ctx context.Context, cmd usecases.ResolveContributorsCommand) (int64, error) {
	return m.fn(ctx, cmd)
}

type mockRespondToInviteUC struct {
	fn func(ctx context.Context, cmd usecases.RespondToInviteCommand) (*dto.InviteDTO, error)
}

func (m *mockRespondToInviteUC) Execute(ctx context.Context, cmd usecases.RespondToInviteCommand) (*dto.InviteDTO, error) {
	return m.fn(ctx, cmd)
}

type mockApplyUC struct {
	fn func(ctx context.Context, cmd usecases.ApplyToPackageCommand) (*dto.ApplicationDTO, error)
}

func (m *mockApplyUC) Execute(ctx context.Context, cmd usecases.ApplyToPackageCommand) (*dto.ApplicationDTO, error) {
	return m.fn(ctx, cmd)
}

type mockListUserInvitesUC struct {
	fn func(ctx context.Context, principal party.Ref) ([]*dto.InviteDTO, error)
}

func (m *mockListUserInvitesUC) Execute(ctx context.Context, principal party.Ref) ([]*dto.InviteDTO, error) {
	return m.fn(ctx, principal)
}

package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/shared/services/markdown"
)

var (
	merchantM = party.Merchant(1)
	merchantX = party.Merchant(2)
	userU     = party.User(7)
	userV     = party.User(8)
	userW     = party.User(9)
)

type thriftFixture struct {
	packages     *memPackageRepository
	admins       *memAdminRepository
	contributors *memContributorRepository
	invites      *memInviteRepository
	applications *memApplicationRepository
	slots        *memSlotRepository
	dir          *mockDirectory
	tx           *mockTransactor
	publisher    *recordingPublisher
	metrics      *recordingMetrics
	log          *mockLogger
}

func newThriftFixture() *thriftFixture {
	slots := newMemSlotRepository()
	contributors := newMemContributorRepository()
	contributors.slots = slots
	return &thriftFixture{
		packages:     newMemPackageRepository(),
		admins:       newMemAdminRepository(),
		contributors: contributors,
		invites:      newMemInviteRepository(),
		applications: newMemApplicationRepository(),
		slots:        slots,
		dir: &mockDirectory{
			users: map[uint]*directory.UserInfo{
				7: {ID: 7, Email: "u@example.com", Name: "Ada"},
				8: {ID: 8, Email: "v@example.com", Name: "Bola"},
				9: {ID: 9, Email: "w@example.com", Name: "Chi"},
			},
			merchants: map[uint]*directory.MerchantInfo{
				1: {ID: 1, Email: "m@example.com", BusinessName: "Mama Put"},
				2: {ID: 2, Email: "x@example.com", BusinessName: "Xpress"},
			},
			contacts: map[uint]*directory.ContactInfo{
				11: {ID: 11, MerchantID: 1, Email: "c1@example.com"},
				12: {ID: 12, MerchantID: 1, Email: "c2@example.com"},
				13: {ID: 13, MerchantID: 1, Email: "c3@example.com"},
				21: {ID: 21, MerchantID: 2, Email: "foreign@example.com"},
			},
		},
		tx:        &mockTransactor{},
		publisher: &recordingPublisher{},
		metrics:   &recordingMetrics{},
		log:       &mockLogger{},
	}
}

func (f *thriftFixture) createPackage(t *testing.T, creator party.Ref, name string, slots int, visibility string) *dto.PackageDTO {
	t.Helper()
	uc := NewCreatePackageUseCase(f.packages, f.admins, f.tx, f.log)
	pkg, err := uc.Execute(context.Background(), CreatePackageCommand{
		Principal:    creator,
		Name:         name,
		TotalAmount:  decimal.NewFromInt(120000),
		DurationDays: 30,
		SlotCount:    slots,
		Visibility:   visibility,
	})
	require.NoError(t, err)
	return pkg
}

func (f *thriftFixture) acceptTerms(t *testing.T, principal party.Ref, packageID uint) {
	t.Helper()
	_, err := NewAcceptTermsUseCase(f.packages, f.admins, f.log).Execute(context.Background(), AcceptTermsCommand{
		Principal: principal,
		PackageID: packageID,
		Accepted:  true,
	})
	require.NoError(t, err)
}

func (f *thriftFixture) addContributors() *AddContributorsUseCase {
	return NewAddContributorsUseCase(f.packages, f.admins, f.contributors, f.dir, f.tx, f.metrics, f.log)
}

func (f *thriftFixture) confirm() *ConfirmContributorsUseCase {
	return NewConfirmContributorsUseCase(f.packages, f.admins, f.contributors, f.log)
}

func (f *thriftFixture) generateSlots() *GenerateSlotsUseCase {
	return NewGenerateSlotsUseCase(f.packages, f.admins, f.contributors, f.slots, f.tx, f.metrics, f.log)
}

func (f *thriftFixture) inviteUser() *InviteUserUseCase {
	return NewInviteUserUseCase(f.packages, f.admins, f.invites, f.dir, f.tx, f.publisher, f.log)
}

func (f *thriftFixture) respondToInvite() *RespondToInviteUseCase {
	return NewRespondToInviteUseCase(f.packages, f.invites, f.contributors, f.tx, f.publisher, f.metrics, f.log)
}

func (f *thriftFixture) apply() *ApplyToPackageUseCase {
	return NewApplyToPackageUseCase(f.packages, f.admins, f.contributors, f.invites, f.applications, f.tx, f.publisher, f.metrics, f.log)
}

func (f *thriftFixture) respondToApplication() *RespondToApplicationUseCase {
	return NewRespondToApplicationUseCase(f.packages, f.admins, f.applications, f.contributors, f.tx, f.publisher, f.metrics, f.log)
}

func (f *thriftFixture) saveProgress() *SaveProgressUseCase {
	return NewSaveProgressUseCase(f.packages, f.admins, f.contributors, f.dir, f.tx, f.log)
}

func (f *thriftFixture) getPackage() *GetPackageUseCase {
	return NewGetPackageUseCase(f.packages, f.admins, f.contributors, f.slots, markdown.NewTermsRenderer(), f.log)
}

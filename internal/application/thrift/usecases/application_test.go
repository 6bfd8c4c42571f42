package usecases

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thriftwise/thriftwise/internal/domain/shared/events"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

// User U applies to public package P; the merchant rejects; U's contributor row is gone.
func TestApplicationFlow_RejectRevokesContributor(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Open Club", 5, "public")
	f.acceptTerms(t, merchantM, pkg.ID)
	require.NoError(t, f.admins.Add(ctx, pkg.ID, userW))

	app, err := f.apply().Execute(ctx, ApplyToPackageCommand{Principal: userU, PackageID: pkg.ID})
	require.NoError(t, err)
	assert.Equal(t, "pending", app.Status)

	created := f.publisher.ofType(thrift.EventApplicationCreated)
	require.Len(t, created, 1)
	assert.ElementsMatch(t, []party.Ref{merchantM, userW}, created[0].Recipients)

	// A stale contributor row from an earlier path must not survive the rejection.
	_, _, err = f.contributors.FindOrCreate(ctx, mustContributor(t, pkg.ID, userU))
	require.NoError(t, err)

	resolved, err := f.respondToApplication().Execute(ctx, RespondToApplicationCommand{
		Principal:     merchantM,
		ApplicationID: app.ID,
		Accept:        false,
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resolved.Status)

	c, err := f.contributors.GetByParticipant(ctx, pkg.ID, userU)
	require.NoError(t, err)
	assert.Nil(t, c)

	notified := f.publisher.ofType(thrift.EventApplicationResolved)
	require.Len(t, notified, 1)
	assert.Equal(t, []party.Ref{userU}, notified[0].Recipients)
}

func TestApplicationFlow_RejectDropsSlotOfRevokedContributor(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Open Club", 5, "public")
	f.acceptTerms(t, merchantM, pkg.ID)

	app, err := f.apply().Execute(ctx, ApplyToPackageCommand{Principal: userU, PackageID: pkg.ID})
	require.NoError(t, err)

	stale, _, err := f.contributors.FindOrCreate(ctx, mustContributor(t, pkg.ID, userU))
	require.NoError(t, err)
	other, _, err := f.contributors.FindOrCreate(ctx, mustContributor(t, pkg.ID, userW))
	require.NoError(t, err)
	_, err = f.contributors.TransitionPending(ctx, pkg.ID, []uint{stale.ID(), other.ID()}, "confirmed")
	require.NoError(t, err)

	slots, err := f.generateSlots().Execute(ctx, GenerateSlotsCommand{Principal: merchantM, PackageID: pkg.ID})
	require.NoError(t, err)
	require.Len(t, slots, 2)

	_, err = f.respondToApplication().Execute(ctx, RespondToApplicationCommand{
		Principal:     merchantM,
		ApplicationID: app.ID,
		Accept:        false,
	})
	require.NoError(t, err)

	remaining, err := f.slots.ListByPackage(ctx, pkg.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID(), remaining[0].ContributorID())
}

func TestApplicationFlow_AcceptLeavesContributorPending(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Open Club", 5, "public")
	f.acceptTerms(t, merchantM, pkg.ID)

	app, err := f.apply().Execute(ctx, ApplyToPackageCommand{Principal: userU, PackageID: pkg.ID})
	require.NoError(t, err)
	_, err = f.respondToApplication().Execute(ctx, RespondToApplicationCommand{Principal: merchantM, ApplicationID: app.ID, Accept: true})
	require.NoError(t, err)

	c, err := f.contributors.GetByParticipant(ctx, pkg.ID, userU)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, c.Status().IsPending())

	_, err = f.respondToApplication().Execute(ctx, RespondToApplicationCommand{Principal: merchantM, ApplicationID: app.ID, Accept: false})
	require.Error(t, err)
	assert.True(t, errors.HasReason(err, errors.ReasonAlreadyResponded))
	c, _ = f.contributors.GetByParticipant(ctx, pkg.ID, userU)
	assert.NotNil(t, c, "a rejected second response must not revoke")
}

func TestApplyToPackageUseCase_Execute_DuplicateMembership(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, f *thriftFixture, packageID uint)
	}{
		{
			name: "already a contributor",
			setup: func(t *testing.T, f *thriftFixture, packageID uint) {
				_, _, err := f.contributors.FindOrCreate(context.Background(), mustContributor(t, packageID, userU))
				require.NoError(t, err)
			},
		},
		{
			name: "pending invite",
			setup: func(t *testing.T, f *thriftFixture, packageID uint) {
				_, err := f.inviteUser().Execute(context.Background(), InviteUserCommand{Principal: merchantM, PackageID: packageID, UserID: userU.ID})
				require.NoError(t, err)
			},
		},
		{
			name: "pending application",
			setup: func(t *testing.T, f *thriftFixture, packageID uint) {
				_, err := f.apply().Execute(context.Background(), ApplyToPackageCommand{Principal: userU, PackageID: packageID})
				require.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newThriftFixture()
			pkg := f.createPackage(t, merchantM, "Open Club", 5, "public")
			tt.setup(t, f, pkg.ID)

			_, err := f.apply().Execute(context.Background(), ApplyToPackageCommand{Principal: userU, PackageID: pkg.ID})
			require.Error(t, err)
			assert.True(t, errors.IsConflictError(err))
			assert.True(t, errors.HasReason(err, errors.ReasonDuplicateMembership))
		})
	}
}

// serialTransactor runs one transaction at a time, like a row lock held to commit.
type serialTransactor struct {
	mu    sync.Mutex
	calls int
}

func (s *serialTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return fn(ctx)
}

func TestApplyToPackageUseCase_Execute_ConcurrentAppliesAdmitOne(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Open Club", 5, "public")
	f.acceptTerms(t, merchantM, pkg.ID)

	tx := &serialTransactor{}
	uc := NewApplyToPackageUseCase(f.packages, f.admins, f.contributors, f.invites, f.applications, tx, f.publisher, f.metrics, f.log)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(ctx, ApplyToPackageCommand{Principal: userU, PackageID: pkg.ID})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.HasReason(err, errors.ReasonDuplicateMembership):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, attempts, tx.calls)
	assert.Len(t, f.packages.locked, attempts)

	apps, err := f.applications.ListByPackage(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
	assert.Equal(t, attempts-1, f.metrics.admissions[AdmissionPathApplication+":duplicate"])
}

func TestApplyToPackageUseCase_Execute_RejectedContributorMayReapply(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Open Club", 5, "public")
	stored, _, err := f.contributors.FindOrCreate(ctx, mustContributor(t, pkg.ID, userU))
	require.NoError(t, err)
	_, err = f.contributors.TransitionPending(ctx, pkg.ID, []uint{stored.ID()}, "rejected")
	require.NoError(t, err)

	_, err = f.apply().Execute(ctx, ApplyToPackageCommand{Principal: userU, PackageID: pkg.ID})
	assert.NoError(t, err)
}

func TestApplyToPackageUseCase_Execute_Guards(t *testing.T) {
	f := newThriftFixture()
	private := f.createPackage(t, merchantM, "Closed Club", 5, "private")

	_, err := f.apply().Execute(context.Background(), ApplyToPackageCommand{Principal: userU, PackageID: private.ID})
	require.Error(t, err)
	assert.True(t, errors.HasReason(err, errors.ReasonPackageNotPublic))

	_, err = f.apply().Execute(context.Background(), ApplyToPackageCommand{Principal: merchantX, PackageID: private.ID})
	assert.True(t, errors.IsForbiddenError(err))

	_, err = f.apply().Execute(context.Background(), ApplyToPackageCommand{Principal: userU, PackageID: 404})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestApplyToPackageUseCase_Execute_NotificationFailureDoesNotFail(t *testing.T) {
	f := newThriftFixture()
	pkg := f.createPackage(t, merchantM, "Open Club", 5, "public")
	f.admins.ListFunc = func(context.Context, uint) ([]party.Ref, error) {
		return nil, stderrors.New("db gone")
	}
	f.publisher.PublishFunc = func(events.DomainEvent) error {
		return stderrors.New("queue full")
	}

	app, err := f.apply().Execute(context.Background(), ApplyToPackageCommand{Principal: userU, PackageID: pkg.ID})
	require.NoError(t, err)
	assert.NotZero(t, app.ID)
}

func TestRespondToApplicationUseCase_Execute_RequiresAuthority(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Open Club", 5, "public")
	app, err := f.apply().Execute(ctx, ApplyToPackageCommand{Principal: userU, PackageID: pkg.ID})
	require.NoError(t, err)

	_, err = f.respondToApplication().Execute(ctx, RespondToApplicationCommand{Principal: userU, ApplicationID: app.ID, Accept: true})
	assert.True(t, errors.IsForbiddenError(err))
}

func TestAddAdminUseCase_Execute(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Xmas Club", 5, "")
	uc := NewAddAdminUseCase(f.packages, f.admins, f.dir, f.log)

	admins, err := uc.Execute(ctx, AddAdminCommand{Principal: merchantM, PackageID: pkg.ID, Admin: userV})
	require.NoError(t, err)
	require.Len(t, admins, 1)

	admins, err = uc.Execute(ctx, AddAdminCommand{Principal: userV, PackageID: pkg.ID, Admin: userV})
	require.NoError(t, err)
	assert.Len(t, admins, 1, "adding twice is idempotent")

	admins, err = uc.Execute(ctx, AddAdminCommand{Principal: userV, PackageID: pkg.ID, Admin: merchantX})
	require.NoError(t, err)
	assert.Len(t, admins, 2)

	_, err = uc.Execute(ctx, AddAdminCommand{Principal: userW, PackageID: pkg.ID, Admin: userW})
	assert.True(t, errors.IsForbiddenError(err))

	_, err = uc.Execute(ctx, AddAdminCommand{Principal: merchantM, PackageID: pkg.ID, Admin: party.User(404)})
	assert.True(t, errors.IsNotFoundError(err))
}

func mustContributor(t *testing.T, packageID uint, ref party.Ref) *thrift.Contributor {
	t.Helper()
	c, err := thrift.NewContributor(packageID, ref)
	require.NoError(t, err)
	return c
}

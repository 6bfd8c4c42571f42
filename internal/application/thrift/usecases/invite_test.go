package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

func TestInviteUserUseCase_Execute_ReinviteReplacesPendingInvite(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Xmas Club", 5, "")
	cmd := InviteUserCommand{Principal: merchantM, PackageID: pkg.ID, UserID: userU.ID}

	first, err := f.inviteUser().Execute(ctx, cmd)
	require.NoError(t, err)
	second, err := f.inviteUser().Execute(ctx, cmd)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "pending", second.Status)

	old, err := f.invites.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, old)

	invites, err := f.invites.ListByUser(ctx, userU.ID)
	require.NoError(t, err)
	assert.Len(t, invites, 1)
	assert.Len(t, f.publisher.ofType(thrift.EventInviteCreated), 2)
}

func TestInviteUserUseCase_Execute_ReinviteResetsResolvedInvite(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Xmas Club", 5, "")
	inv, err := f.inviteUser().Execute(ctx, InviteUserCommand{Principal: merchantM, PackageID: pkg.ID, UserID: userU.ID})
	require.NoError(t, err)
	_, err = f.respondToInvite().Execute(ctx, RespondToInviteCommand{Principal: userU, InviteID: inv.ID, Accept: false})
	require.NoError(t, err)

	again, err := f.inviteUser().Execute(ctx, InviteUserCommand{Principal: merchantM, PackageID: pkg.ID, UserID: userU.ID})
	require.NoError(t, err)
	assert.Equal(t, "pending", again.Status)
}

func TestInviteUserUseCase_Execute_Errors(t *testing.T) {
	f := newThriftFixture()
	pkg := f.createPackage(t, merchantM, "Xmas Club", 5, "")

	_, err := f.inviteUser().Execute(context.Background(), InviteUserCommand{Principal: userV, PackageID: pkg.ID, UserID: userU.ID})
	assert.True(t, errors.IsForbiddenError(err))

	_, err = f.inviteUser().Execute(context.Background(), InviteUserCommand{Principal: merchantM, PackageID: pkg.ID, UserID: 404})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestRespondToInviteUseCase_Execute_AcceptAdmitsUser(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Xmas Club", 5, "")
	f.acceptTerms(t, merchantM, pkg.ID)
	inv, err := f.inviteUser().Execute(ctx, InviteUserCommand{Principal: merchantM, PackageID: pkg.ID, UserID: userU.ID})
	require.NoError(t, err)

	got, err := f.respondToInvite().Execute(ctx, RespondToInviteCommand{Principal: userU, InviteID: inv.ID, Accept: true})
	require.NoError(t, err)
	assert.Equal(t, "accepted", got.Status)
	assert.NotNil(t, got.RespondedAt)

	c, err := f.contributors.GetByParticipant(ctx, pkg.ID, userU)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "pending", c.Status().String())

	responded := f.publisher.ofType(thrift.EventInviteResponded)
	require.Len(t, responded, 1)
	assert.Equal(t, []party.Ref{merchantM}, responded[0].Recipients)
	assert.Equal(t, 1, f.metrics.admissions["invite:accepted"])
}

func TestRespondToInviteUseCase_Execute_IsFinal(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Xmas Club", 5, "")
	f.acceptTerms(t, merchantM, pkg.ID)
	inv, err := f.inviteUser().Execute(ctx, InviteUserCommand{Principal: merchantM, PackageID: pkg.ID, UserID: userU.ID})
	require.NoError(t, err)

	_, err = f.respondToInvite().Execute(ctx, RespondToInviteCommand{Principal: userU, InviteID: inv.ID, Accept: false})
	require.NoError(t, err)

	_, err = f.respondToInvite().Execute(ctx, RespondToInviteCommand{Principal: userU, InviteID: inv.ID, Accept: true})
	require.Error(t, err)
	assert.True(t, errors.IsStateError(err))
	assert.True(t, errors.HasReason(err, errors.ReasonAlreadyResponded))

	stored, _ := f.invites.GetByID(ctx, inv.ID)
	assert.Equal(t, "rejected", stored.Status().String())
	c, _ := f.contributors.GetByParticipant(ctx, pkg.ID, userU)
	assert.Nil(t, c)
}

func TestRespondToInviteUseCase_Execute_LostRaceIsAlreadyResponded(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Xmas Club", 5, "")
	f.acceptTerms(t, merchantM, pkg.ID)
	inv, err := f.inviteUser().Execute(ctx, InviteUserCommand{Principal: merchantM, PackageID: pkg.ID, UserID: userU.ID})
	require.NoError(t, err)

	// Another request resolves the stored row after this one has loaded it.
	loaded, _ := f.invites.GetByID(ctx, inv.ID)
	require.NoError(t, loaded.Respond(userU, false))
	saved, err := f.invites.SaveResponse(ctx, loaded)
	require.NoError(t, err)
	require.True(t, saved)

	saved, err = f.invites.SaveResponse(ctx, loaded)
	require.NoError(t, err)
	assert.False(t, saved)
}

func TestRespondToInviteUseCase_Execute_OnlyInvitedUser(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Xmas Club", 5, "")
	inv, err := f.inviteUser().Execute(ctx, InviteUserCommand{Principal: merchantM, PackageID: pkg.ID, UserID: userU.ID})
	require.NoError(t, err)

	_, err = f.respondToInvite().Execute(ctx, RespondToInviteCommand{Principal: userV, InviteID: inv.ID, Accept: true})
	assert.True(t, errors.IsForbiddenError(err))

	_, err = f.respondToInvite().Execute(ctx, RespondToInviteCommand{Principal: merchantM, InviteID: inv.ID, Accept: true})
	assert.True(t, errors.IsForbiddenError(err))
}

func TestRespondToInviteUseCase_Execute_AcceptNeedsTerms(t *testing.T) {
	f := newThriftFixture()
	ctx := context.Background()
	pkg := f.createPackage(t, merchantM, "Xmas Club", 5, "")
	inv, err := f.inviteUser().Execute(ctx, InviteUserCommand{Principal: merchantM, PackageID: pkg.ID, UserID: userU.ID})
	require.NoError(t, err)

	_, err = f.respondToInvite().Execute(ctx, RespondToInviteCommand{Principal: userU, InviteID: inv.ID, Accept: true})
	require.Error(t, err)
	assert.True(t, errors.HasReason(err, errors.ReasonTermsNotAccepted))

	stored, _ := f.invites.GetByID(ctx, inv.ID)
	assert.True(t, stored.Status().IsPending())
}

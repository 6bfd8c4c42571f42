package http

import (
	thriftHandlers "github.com/thriftwise/thriftwise/internal/interfaces/http/handlers/thrift"
	walletHandlers "github.com/thriftwise/thriftwise/internal/interfaces/http/handlers/wallet"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	packageHandler    *thriftHandlers.PackageHandler
	membershipHandler *thriftHandlers.MembershipHandler
	walletHandler     *walletHandlers.Handler
}

func (c *Container) newHandlers() *allHandlers {
	ucs := c.ucs
	log := c.log

	return &allHandlers{
		packageHandler: thriftHandlers.NewPackageHandler(thriftHandlers.PackageUseCases{
			Create:        ucs.createPackage,
			SaveProgress:  ucs.saveProgress,
			Get:           ucs.getPackage,
			GetPublic:     ucs.getPublicPackage,
			List:          ucs.listPackages,
			ListPublic:    ucs.listPublicPackages,
			ListRejected:  ucs.listRejectedPackages,
			UpdateStatus:  ucs.updateStatus,
			AcceptTerms:   ucs.acceptTerms,
			AddAdmin:      ucs.addAdmin,
			GenerateSlots: ucs.generateSlots,
		}, log),
		membershipHandler: thriftHandlers.NewMembershipHandler(thriftHandlers.MembershipUseCases{
			AddContributors:      ucs.addContributors,
			ConfirmContributors:  ucs.confirmContributors,
			RejectContributors:   ucs.rejectContributors,
			ListContributors:     ucs.listContributors,
			ListApplications:     ucs.listApplications,
			InviteUser:           ucs.inviteUser,
			RespondToInvite:      ucs.respondToInvite,
			ListUserInvites:      ucs.listUserInvites,
			Apply:                ucs.applyToPackage,
			RespondToApplication: ucs.respondToApplication,
			ListUserApplications: ucs.listUserApplications,
		}, log),
		walletHandler: walletHandlers.NewHandler(
			ucs.initializeContribution,
			ucs.verifyContribution,
			ucs.payout,
			ucs.listWalletTransactions,
			ucs.listPackageTransactions,
			ucs.showWalletTransaction,
			log,
		),
	}
}

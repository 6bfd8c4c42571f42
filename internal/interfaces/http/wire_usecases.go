package http

import (
	thriftUsecases "github.com/thriftwise/thriftwise/internal/application/thrift/usecases"
	walletUsecases "github.com/thriftwise/thriftwise/internal/application/wallet/usecases"
	"github.com/thriftwise/thriftwise/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Package registry
	createPackage        *thriftUsecases.CreatePackageUseCase
	saveProgress         *thriftUsecases.SaveProgressUseCase
	getPackage           *thriftUsecases.GetPackageUseCase
	getPublicPackage     *thriftUsecases.GetPublicPackageUseCase
	listPackages         *thriftUsecases.ListPackagesUseCase
	listPublicPackages   *thriftUsecases.ListPublicPackagesUseCase
	listRejectedPackages *thriftUsecases.ListRejectedPackagesUseCase
	updateStatus         *thriftUsecases.UpdatePackageStatusUseCase
	acceptTerms          *thriftUsecases.AcceptTermsUseCase
	addAdmin             *thriftUsecases.AddAdminUseCase

	// Membership & admission
	addContributors      *thriftUsecases.AddContributorsUseCase
	confirmContributors  *thriftUsecases.ConfirmContributorsUseCase
	rejectContributors   *thriftUsecases.RejectContributorsUseCase
	listContributors     *thriftUsecases.ListContributorsUseCase
	listApplications     *thriftUsecases.ListApplicationsUseCase
	inviteUser           *thriftUsecases.InviteUserUseCase
	respondToInvite      *thriftUsecases.RespondToInviteUseCase
	listUserInvites      *thriftUsecases.ListUserInvitesUseCase
	applyToPackage       *thriftUsecases.ApplyToPackageUseCase
	respondToApplication *thriftUsecases.RespondToApplicationUseCase
	listUserApplications *thriftUsecases.ListUserApplicationsUseCase

	// Slots
	generateSlots *thriftUsecases.GenerateSlotsUseCase

	// Wallet & settlement
	initializeContribution  *walletUsecases.InitializeContributionUseCase
	verifyContribution      *walletUsecases.VerifyContributionUseCase
	payout                  *walletUsecases.PayoutUseCase
	listWalletTransactions  *walletUsecases.ListWalletTransactionsUseCase
	listPackageTransactions *walletUsecases.ListPackageTransactionsUseCase
	showWalletTransaction   *walletUsecases.ShowWalletTransactionUseCase
}

func (c *Container) newUseCases() *allUseCases {
	r := c.repos
	log := c.log
	renderer := markdown.NewTermsRenderer()

	return &allUseCases{
		createPackage:        thriftUsecases.NewCreatePackageUseCase(r.packages, r.admins, c.txMgr, log),
		saveProgress:         thriftUsecases.NewSaveProgressUseCase(r.packages, r.admins, r.contributors, r.directory, c.txMgr, log),
		getPackage:           thriftUsecases.NewGetPackageUseCase(r.packages, r.admins, r.contributors, r.slots, renderer, log),
		getPublicPackage:     thriftUsecases.NewGetPublicPackageUseCase(r.packages, renderer, log),
		listPackages:         thriftUsecases.NewListPackagesUseCase(r.packages, log),
		listPublicPackages:   thriftUsecases.NewListPublicPackagesUseCase(r.packages, log),
		listRejectedPackages: thriftUsecases.NewListRejectedPackagesUseCase(r.packages, log),
		updateStatus:         thriftUsecases.NewUpdatePackageStatusUseCase(r.packages, r.admins, log),
		acceptTerms:          thriftUsecases.NewAcceptTermsUseCase(r.packages, r.admins, log),
		addAdmin:             thriftUsecases.NewAddAdminUseCase(r.packages, r.admins, r.directory, log),

		addContributors: thriftUsecases.NewAddContributorsUseCase(
			r.packages, r.admins, r.contributors, r.directory, c.txMgr, c.metrics, log,
		),
		confirmContributors: thriftUsecases.NewConfirmContributorsUseCase(r.packages, r.admins, r.contributors, log),
		rejectContributors:  thriftUsecases.NewRejectContributorsUseCase(r.packages, r.admins, r.contributors, log),
		listContributors:    thriftUsecases.NewListContributorsUseCase(r.packages, r.admins, r.contributors, log),
		listApplications:    thriftUsecases.NewListApplicationsUseCase(r.packages, r.admins, r.applications, log),
		inviteUser: thriftUsecases.NewInviteUserUseCase(
			r.packages, r.admins, r.invites, r.directory, c.txMgr, c.dispatcher, log,
		),
		respondToInvite: thriftUsecases.NewRespondToInviteUseCase(
			r.packages, r.invites, r.contributors, c.txMgr, c.dispatcher, c.metrics, log,
		),
		listUserInvites: thriftUsecases.NewListUserInvitesUseCase(r.invites, log),
		applyToPackage: thriftUsecases.NewApplyToPackageUseCase(
			r.packages, r.admins, r.contributors, r.invites, r.applications, c.txMgr, c.dispatcher, c.metrics, log,
		),
		respondToApplication: thriftUsecases.NewRespondToApplicationUseCase(
			r.packages, r.admins, r.applications, r.contributors, c.txMgr, c.dispatcher, c.metrics, log,
		),
		listUserApplications: thriftUsecases.NewListUserApplicationsUseCase(r.applications, log),

		generateSlots: thriftUsecases.NewGenerateSlotsUseCase(
			r.packages, r.admins, r.contributors, r.slots, c.txMgr, c.metrics, log,
		),

		initializeContribution: walletUsecases.NewInitializeContributionUseCase(
			r.packages, r.admins, r.contributors, r.directory, c.gateway,
			c.cfg.Gateway.Currency, c.cfg.Gateway.CallbackURL, log,
		),
		verifyContribution: walletUsecases.NewVerifyContributionUseCase(
			r.wallets, r.transactions, r.directory, c.gateway, c.txMgr, c.metrics, log,
		),
		payout: walletUsecases.NewPayoutUseCase(
			r.packages, r.wallets, r.transactions, c.gateway, c.txMgr, c.cfg.Gateway.Currency, c.metrics, log,
		),
		listWalletTransactions:  walletUsecases.NewListWalletTransactionsUseCase(r.wallets, r.transactions, log),
		listPackageTransactions: walletUsecases.NewListPackageTransactionsUseCase(r.packages, r.admins, r.transactions, log),
		showWalletTransaction:   walletUsecases.NewShowWalletTransactionUseCase(r.wallets, r.transactions, r.directory, log),
	}
}

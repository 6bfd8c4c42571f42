package http

import (
	"gorm.io/gorm"

	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/domain/wallet"
	"github.com/thriftwise/thriftwise/internal/infrastructure/repository"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	packages     thrift.PackageRepository
	admins       thrift.AdminRepository
	contributors thrift.ContributorRepository
	invites      thrift.InviteRepository
	applications thrift.ApplicationRepository
	slots        thrift.SlotRepository
	wallets      wallet.Repository
	transactions wallet.TransactionRepository
	directory    *repository.DirectoryRepository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		packages:     repository.NewThriftPackageRepository(db, log),
		admins:       repository.NewThriftAdminRepository(db),
		contributors: repository.NewThriftContributorRepository(db),
		invites:      repository.NewThriftInviteRepository(db),
		applications: repository.NewThriftApplicationRepository(db),
		slots:        repository.NewThriftSlotRepository(db),
		wallets:      repository.NewWalletRepository(db),
		transactions: repository.NewWalletTransactionRepository(db),
		directory:    repository.NewDirectoryRepository(db),
	}
}

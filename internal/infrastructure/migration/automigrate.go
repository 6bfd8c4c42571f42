package migration

import (
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists every table the service owns, followed by the directory tables
// it only reads.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ThriftPackageModel{},
		&models.ThriftAdminModel{},
		&models.ThriftMerchantAdminModel{},
		&models.ThriftContributorModel{},
		&models.ThriftInviteModel{},
		&models.ThriftApplicationModel{},
		&models.ThriftSlotModel{},
		&models.WalletModel{},
		&models.WalletTransactionModel{},
		&models.UserModel{},
		&models.MerchantModel{},
		&models.ContactModel{},
	}
}

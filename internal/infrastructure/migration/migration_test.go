package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thriftwise/thriftwise/internal/shared/constants"
)

func TestNewManager_PicksStrategy(t *testing.T) {
	tests := []struct {
		env, driver string
		want        string
	}{
		{constants.EnvDevelopment, "mysql", "gorm_auto_migrate"},
		{constants.EnvProduction, "mysql", "goose"},
		{constants.EnvProduction, "", "goose"},
		{constants.EnvProduction, "postgres", "gorm_auto_migrate"},
		{constants.EnvTest, "sqlite", "gorm_auto_migrate"},
	}
	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.driver, func(t *testing.T) {
			assert.Equal(t, tt.want, NewManager(tt.env, tt.driver).GetStrategy().GetName())
		})
	}
}

func TestAutoMigrate_CreatesSchema(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, NewManagerWithStrategy(NewGormAutoMigrateStrategy()).Migrate(db))

	for _, table := range []string{
		constants.TableThriftPackages,
		constants.TableThriftContributors,
		constants.TableThriftSlots,
		constants.TableWallets,
		constants.TableWalletTransactions,
		constants.TableThriftMerchantAdmins,
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestEmbeddedScripts(t *testing.T) {
	entries, err := scripts.ReadDir(scriptsDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}

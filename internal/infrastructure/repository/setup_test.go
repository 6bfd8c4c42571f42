package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/infrastructure/migration"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/models"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)            {}
func (nopLogger) Info(string, ...any)             {}
func (nopLogger) Warn(string, ...any)             {}
func (nopLogger) Error(string, ...any)            {}
func (l nopLogger) With(...any) logger.Interface  { return l }
func (l nopLogger) Named(string) logger.Interface { return l }
func (nopLogger) Debugw(string, ...any)           {}
func (nopLogger) Infow(string, ...any)            {}
func (nopLogger) Warnw(string, ...any)            {}
func (nopLogger) Errorw(string, ...any)           {}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(migration.AutoMigrateModels()...))

	require.NoError(t, db.Create([]models.UserModel{
		{ID: 7, Email: "u7@example.com", Name: "Ada"},
		{ID: 8, Email: "u8@example.com", Name: "Bola"},
	}).Error)
	require.NoError(t, db.Create([]models.MerchantModel{
		{ID: 1, Email: "m1@example.com", BusinessName: "Mama Put"},
		{ID: 2, Email: "m2@example.com", BusinessName: "Iya Basira"},
	}).Error)
	require.NoError(t, db.Create([]models.ContactModel{
		{ID: 11, MerchantID: 1, Email: "c11@example.com", Name: "Chidi"},
		{ID: 12, MerchantID: 1, Email: "c12@example.com", Name: "Nneka"},
		{ID: 21, MerchantID: 2, Email: "c21@example.com", Name: "Dayo"},
	}).Error)

	return db
}

func createTestPackage(t *testing.T, repo *ThriftPackageRepository, creator party.Ref, name string, visibility vo.Visibility) *thrift.Package {
	t.Helper()
	pkg, err := thrift.NewPackage(creator, thrift.Details{
		Name:         name,
		TotalAmount:  decimal.NewFromInt(120000),
		DurationDays: 30,
		SlotCount:    3,
		Visibility:   visibility,
	}, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), pkg))
	return pkg
}

func addContributor(t *testing.T, repo *ThriftContributorRepository, packageID uint, ref party.Ref) *thrift.Contributor {
	t.Helper()
	c, err := thrift.NewContributor(packageID, ref)
	require.NoError(t, err)
	stored, _, err := repo.FindOrCreate(context.Background(), c)
	require.NoError(t, err)
	return stored
}

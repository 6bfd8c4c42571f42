package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/thriftwise/thriftwise/internal/shared/constants"
)

// ThriftPackageModel stores the creator twice: as a kind/id pair and in the legacy
// merchant_id / created_by_user_id columns, exactly one of which is set.
type ThriftPackageModel struct {
	ID              uint            `gorm:"primaryKey"`
	SID             string          `gorm:"column:sid;uniqueIndex;size:32;not null"`
	CreatorType     string          `gorm:"size:16;not null;uniqueIndex:uk_thrift_packages_creator_name,priority:1"`
	CreatorID       uint            `gorm:"not null;uniqueIndex:uk_thrift_packages_creator_name,priority:2"`
	MerchantID      *uint           `gorm:"index"`
	CreatedByUserID *uint           `gorm:"index"`
	Name            string          `gorm:"size:255;not null;uniqueIndex:uk_thrift_packages_creator_name,priority:3"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	DurationDays    int             `gorm:"not null"`
	SlotCount       int             `gorm:"not null"`
	TermsText       string          `gorm:"type:text"`
	TermsAccepted   bool            `gorm:"not null;default:false"`
	Visibility      string          `gorm:"size:16;not null;default:private;index"`
	Status          string          `gorm:"size:20;not null;default:draft;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ThriftPackageModel) TableName() string {
	return constants.TableThriftPackages
}

// ThriftAdminModel links a user admin to a package.
type ThriftAdminModel struct {
	ThriftPackageID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID          uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt       time.Time
}

func (ThriftAdminModel) TableName() string {
	return constants.TableThriftAdmins
}

// ThriftMerchantAdminModel links a merchant admin to a package.
type ThriftMerchantAdminModel struct {
	ThriftPackageID uint `gorm:"primaryKey;autoIncrement:false"`
	MerchantID      uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt       time.Time
}

func (ThriftMerchantAdminModel) TableName() string {
	return constants.TableThriftMerchantAdmins
}

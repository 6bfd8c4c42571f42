package models

import (
	"github.com/thriftwise/thriftwise/internal/shared/constants"
)

// The directory tables belong to the identity service. They are read here and only
// created by AutoMigrate in development and tests.

type UserModel struct {
	ID       uint   `gorm:"primarykey"`
	PublicID string `gorm:"size:64;index"`
	Email    string `gorm:"size:255"`
	Name     string `gorm:"size:255"`
}

func (UserModel) TableName() string {
	return constants.TableUsers
}

type MerchantModel struct {
	ID           uint   `gorm:"primarykey"`
	PublicID     string `gorm:"size:64;index"`
	Email        string `gorm:"size:255"`
	BusinessName string `gorm:"size:255"`
}

func (MerchantModel) TableName() string {
	return constants.TableMerchants
}

type ContactModel struct {
	ID         uint   `gorm:"primarykey"`
	MerchantID uint   `gorm:"not null;index"`
	Email      string `gorm:"size:255"`
	Name       string `gorm:"size:255"`
}

func (ContactModel) TableName() string {
	return constants.TableContacts
}

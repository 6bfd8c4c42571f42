package models

import (
	"time"

	"github.com/thriftwise/thriftwise/internal/shared/constants"
)

type ThriftContributorModel struct {
	ID              uint   `gorm:"primaryKey"`
	ThriftPackageID uint   `gorm:"not null;uniqueIndex:uk_thrift_contributors_participant,priority:1"`
	ParticipantType string `gorm:"size:16;not null;uniqueIndex:uk_thrift_contributors_participant,priority:2"`
	ParticipantID   uint   `gorm:"not null;uniqueIndex:uk_thrift_contributors_participant,priority:3"`
	Status          string `gorm:"size:20;not null;default:pending;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (ThriftContributorModel) TableName() string {
	return constants.TableThriftContributors
}

type ThriftInviteModel struct {
	ID              uint   `gorm:"primaryKey"`
	ThriftPackageID uint   `gorm:"not null;index:idx_thrift_invites_package_user,priority:1"`
	InvitedUserID   uint   `gorm:"not null;index:idx_thrift_invites_package_user,priority:2;index"`
	InvitedByType   string `gorm:"size:16;not null"`
	InvitedByID     uint   `gorm:"not null"`
	Status          string `gorm:"size:20;not null;default:pending;index"`
	RespondedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ThriftInviteModel) TableName() string {
	return constants.TableThriftInvites
}

type ThriftApplicationModel struct {
	ID              uint   `gorm:"primaryKey"`
	ThriftPackageID uint   `gorm:"not null;index:idx_thrift_applications_package_user,priority:1"`
	UserID          uint   `gorm:"not null;index:idx_thrift_applications_package_user,priority:2;index"`
	Status          string `gorm:"size:20;not null;default:pending;index"`
	RespondedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ThriftApplicationModel) TableName() string {
	return constants.TableThriftApplications
}

type ThriftSlotModel struct {
	ID              uint   `gorm:"primaryKey"`
	ThriftPackageID uint   `gorm:"not null;uniqueIndex:uk_thrift_slots_package_slot,priority:1"`
	ContributorID   uint   `gorm:"not null;index"`
	SlotNo          string `gorm:"size:8;not null;uniqueIndex:uk_thrift_slots_package_slot,priority:2"`
	Status          string `gorm:"size:20;not null;default:pending"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ThriftSlotModel) TableName() string {
	return constants.TableThriftSlots
}

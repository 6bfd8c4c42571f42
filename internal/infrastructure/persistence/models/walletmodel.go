package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/thriftwise/thriftwise/internal/shared/constants"
)

type WalletModel struct {
	ID        uint            `gorm:"primaryKey"`
	OwnerType string          `gorm:"size:16;not null;uniqueIndex:uk_wallets_owner,priority:1"`
	OwnerID   uint            `gorm:"not null;uniqueIndex:uk_wallets_owner,priority:2"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WalletModel) TableName() string {
	return constants.TableWallets
}

// WalletTransactionModel is an append-only ledger row. (type, reference) is unique, which
// makes crediting a gateway reference idempotent at the storage level.
type WalletTransactionModel struct {
	ID              uint            `gorm:"primaryKey"`
	WalletID        uint            `gorm:"not null;index"`
	ThriftPackageID *uint           `gorm:"index"`
	Type            string          `gorm:"size:20;not null;uniqueIndex:uk_wallet_transactions_type_reference,priority:1"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Reference       string          `gorm:"size:128;not null;uniqueIndex:uk_wallet_transactions_type_reference,priority:2"`
	Status          string          `gorm:"size:32;not null;index"`
	Meta            datatypes.JSON
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (WalletTransactionModel) TableName() string {
	return constants.TableWalletTransactions
}

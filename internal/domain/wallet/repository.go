package wallet

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	vo "github.com/thriftwise/thriftwise/internal/domain/wallet/valueobjects"
)

// Lookups return (nil, nil) when the row does not exist.

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Wallet, error)
	GetByOwner(ctx context.Context, owner party.Ref) (*Wallet, error)
	// GetOrCreate returns the owner's wallet, inserting an empty one if absent.
	GetOrCreate(ctx context.Context, owner party.Ref) (*Wallet, error)
	// FirstOwnedByMerchantContacts returns the oldest wallet belonging to one of the
	// merchant's contacts.
	FirstOwnedByMerchantContacts(ctx context.Context, merchantID uint) (*Wallet, error)
	// Credit adds amount to the stored balance.
	Credit(ctx context.Context, walletID uint, amount decimal.Decimal) error
	// Debit subtracts amount only if the stored balance covers it. It reports false otherwise.
	Debit(ctx context.Context, walletID uint, amount decimal.Decimal) (bool, error)
}

type TransactionRepository interface {
	// Create fails with a conflict error when (type, reference) already exists.
	Create(ctx context.Context, tx *Transaction) error
	GetByID(ctx context.Context, id uint) (*Transaction, error)
	GetByReference(ctx context.Context, t vo.TransactionType, reference string) (*Transaction, error)
	// FindByReference looks a reference up across all types.
	FindByReference(ctx context.Context, reference string) (*Transaction, error)
	ListByWallet(ctx context.Context, walletID uint, page, pageSize int) ([]*Transaction, int64, error)
	ListByPackage(ctx context.Context, packageID uint, page, pageSize int) ([]*Transaction, int64, error)
}

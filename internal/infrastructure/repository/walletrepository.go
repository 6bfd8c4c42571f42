package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/wallet"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/mappers"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/models"
	"github.com/thriftwise/thriftwise/internal/shared/biztime"
	"github.com/thriftwise/thriftwise/internal/shared/db"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByID(ctx context.Context, id uint) (*wallet.Wallet, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("id = ?", id))
}

func (r *WalletRepository) GetByOwner(ctx context.Context, owner party.Ref) (*wallet.Wallet, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).
		Where("owner_type = ? AND owner_id = ?", owner.Kind.String(), owner.ID))
}

func (r *WalletRepository) first(query *gorm.DB) (*wallet.Wallet, error) {
	var model models.WalletModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return mappers.WalletToDomain(&model)
}

// GetOrCreate inserts an empty wallet for owner when none exists. Concurrent callers for
// the same owner end up with the same row.
func (r *WalletRepository) GetOrCreate(ctx context.Context, owner party.Ref) (*wallet.Wallet, error) {
	if _, err := wallet.NewWallet(owner); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	model := &models.WalletModel{
		OwnerType: owner.Kind.String(),
		OwnerID:   owner.ID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_type"}, {Name: "owner_id"}},
			DoNothing: true,
		}).
		Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	w, err := r.GetByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("wallet for %s missing after insert", owner)
	}
	return w, nil
}

func (r *WalletRepository) FirstOwnedByMerchantContacts(ctx context.Context, merchantID uint) (*wallet.Wallet, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	contacts := tx.Model(&models.ContactModel{}).Select("id").Where("merchant_id = ?", merchantID)

	return r.first(tx.
		Where("owner_type = ? AND owner_id IN (?)", party.KindContact.String(), contacts).
		Order("created_at ASC").Order("id ASC"))
}

func (r *WalletRepository) Credit(ctx context.Context, walletID uint, amount decimal.Decimal) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.WalletModel{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": biztime.NowUTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to credit wallet: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("wallet %d not found", walletID)
	}
	return nil
}

// Debit only succeeds while the stored balance covers amount, so two concurrent payouts
// can never take the balance below zero.
func (r *WalletRepository) Debit(ctx context.Context, walletID uint, amount decimal.Decimal) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.WalletModel{}).
		Where("id = ? AND balance >= ?", walletID, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": biztime.NowUTC(),
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to debit wallet: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

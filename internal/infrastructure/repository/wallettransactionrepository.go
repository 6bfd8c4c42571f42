package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/thriftwise/thriftwise/internal/domain/wallet"
	vo "github.com/thriftwise/thriftwise/internal/domain/wallet/valueobjects"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/mappers"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/models"
	"github.com/thriftwise/thriftwise/internal/shared/db"
	apperrors "github.com/thriftwise/thriftwise/internal/shared/errors"
)

type WalletTransactionRepository struct {
	db *gorm.DB
}

func NewWalletTransactionRepository(db *gorm.DB) *WalletTransactionRepository {
	return &WalletTransactionRepository{db: db}
}

func (r *WalletTransactionRepository) Create(ctx context.Context, tx *wallet.Transaction) error {
	model, err := mappers.TransactionToModel(tx)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("wallet transaction already recorded", tx.Reference())
		}
		return fmt.Errorf("failed to create wallet transaction: %w", err)
	}
	tx.SetID(model.ID)
	return nil
}

func (r *WalletTransactionRepository) GetByID(ctx context.Context, id uint) (*wallet.Transaction, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("id = ?", id))
}

func (r *WalletTransactionRepository) GetByReference(ctx context.Context, t vo.TransactionType, reference string) (*wallet.Transaction, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("type = ? AND reference = ?", t.String(), reference))
}

func (r *WalletTransactionRepository) FindByReference(ctx context.Context, reference string) (*wallet.Transaction, error) {
	return r.first(db.GetTxFromContext(ctx, r.db).Where("reference = ?", reference).Order("id ASC"))
}

func (r *WalletTransactionRepository) first(query *gorm.DB) (*wallet.Transaction, error) {
	var model models.WalletTransactionModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get wallet transaction: %w", err)
	}
	return mappers.TransactionToDomain(&model)
}

func (r *WalletTransactionRepository) ListByWallet(ctx context.Context, walletID uint, page, pageSize int) ([]*wallet.Transaction, int64, error) {
	return r.list(db.GetTxFromContext(ctx, r.db).
		Model(&models.WalletTransactionModel{}).
		Where("wallet_id = ?", walletID), page, pageSize)
}

func (r *WalletTransactionRepository) ListByPackage(ctx context.Context, packageID uint, page, pageSize int) ([]*wallet.Transaction, int64, error) {
	return r.list(db.GetTxFromContext(ctx, r.db).
		Model(&models.WalletTransactionModel{}).
		Scopes(db.ForPackage(packageID)), page, pageSize)
}

func (r *WalletTransactionRepository) list(query *gorm.DB, page, pageSize int) ([]*wallet.Transaction, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count wallet transactions: %w", err)
	}

	var ms []models.WalletTransactionModel
	if err := query.
		Order("created_at DESC").Order("id DESC").
		Scopes(db.Paginate(page, pageSize)).
		Find(&ms).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list wallet transactions: %w", err)
	}

	txs, err := mappers.TransactionsToDomain(ms)
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/wallet"
	vo "github.com/thriftwise/thriftwise/internal/domain/wallet/valueobjects"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/models"
)

func WalletToDomain(model *models.WalletModel) (*wallet.Wallet, error) {
	owner, err := party.New(model.OwnerType, model.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid wallet owner: %w", err)
	}
	return wallet.ReconstructWallet(model.ID, owner, model.Balance, model.CreatedAt, model.UpdatedAt), nil
}

func TransactionToModel(tx *wallet.Transaction) (*models.WalletTransactionModel, error) {
	model := &models.WalletTransactionModel{
		ID:              tx.ID(),
		WalletID:        tx.WalletID(),
		ThriftPackageID: tx.PackageID(),
		Type:            tx.Type().String(),
		Amount:          tx.Amount(),
		Reference:       tx.Reference(),
		Status:          tx.Status().String(),
		CreatedAt:       tx.CreatedAt(),
	}
	if len(tx.Meta()) > 0 {
		raw, err := json.Marshal(tx.Meta())
		if err != nil {
			return nil, fmt.Errorf("failed to encode transaction meta: %w", err)
		}
		model.Meta = datatypes.JSON(raw)
	}
	return model, nil
}

func TransactionToDomain(model *models.WalletTransactionModel) (*wallet.Transaction, error) {
	t := vo.TransactionType(model.Type)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid transaction type: %s", model.Type)
	}

	var meta map[string]any
	if len(model.Meta) > 0 {
		if err := json.Unmarshal(model.Meta, &meta); err != nil {
			return nil, fmt.Errorf("failed to decode transaction meta: %w", err)
		}
	}

	return wallet.ReconstructTransaction(
		model.ID, model.WalletID, model.ThriftPackageID, t, model.Amount,
		model.Reference, vo.TransactionStatus(model.Status), meta, model.CreatedAt,
	), nil
}

func TransactionsToDomain(ms []models.WalletTransactionModel) ([]*wallet.Transaction, error) {
	out := make([]*wallet.Transaction, 0, len(ms))
	for i := range ms {
		tx, err := TransactionToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, nil
}

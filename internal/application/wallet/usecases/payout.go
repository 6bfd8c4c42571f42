package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/thriftwise/thriftwise/internal/application/payment/paymentgateway"
	"github.com/thriftwise/thriftwise/internal/application/wallet/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/domain/wallet"
	"github.com/thriftwise/thriftwise/internal/shared/db"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
	"github.com/thriftwise/thriftwise/internal/shared/utils"
)

type PayoutCommand struct {
	Principal     party.Ref       `json:"-"`
	PackageID     uint            `json:"-"`
	Amount        decimal.Decimal `json:"amount" validate:"decimal_gt0"`
	BankCode      string          `json:"bank_code" validate:"required,max=16"`
	AccountNumber string          `json:"account_number" validate:"required,numeric,min=6,max=20"`
	AccountName   string          `json:"account_name" validate:"required,max=255"`
}

type PayoutUseCase struct {
	packages     thrift.PackageRepository
	wallets      wallet.Repository
	transactions wallet.TransactionRepository
	gateway      paymentgateway.Gateway
	txMgr        db.Transactor
	currency     string
	metrics      LedgerMetrics
	logger       logger.Interface
}

func NewPayoutUseCase(
	packages thrift.PackageRepository,
	wallets wallet.Repository,
	transactions wallet.TransactionRepository,
	gateway paymentgateway.Gateway,
	txMgr db.Transactor,
	currency string,
	metrics LedgerMetrics,
	logger logger.Interface,
) *PayoutUseCase {
	return &PayoutUseCase{
		packages:     packages,
		wallets:      wallets,
		transactions: transactions,
		gateway:      gateway,
		txMgr:        txMgr,
		currency:     currency,
		metrics:      metricsOrNoop(metrics),
		logger:       logger,
	}
}

// Execute pays amount out of the caller's wallet. The gateway recipient and transfer are
// created first; the wallet is debited only after both succeed.
func (uc *PayoutUseCase) Execute(ctx context.Context, cmd PayoutCommand) (*dto.PayoutDTO, error) {
	uc.logger.Infow("executing payout use case",
		"principal", cmd.Principal.String(),
		"package_id", cmd.PackageID,
		"amount", cmd.Amount.String(),
	)

	if !cmd.Principal.IsPrincipal() {
		return nil, errors.NewForbiddenError("only users and merchants may request a payout")
	}
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	if !paymentgateway.FitsMinorUnits(cmd.Amount) {
		return nil, errors.NewValidationError("amount must have at most 2 decimal places")
	}

	pkg, err := uc.packages.GetByID(ctx, cmd.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, errors.NewNotFoundError("thrift package not found")
	}

	w, err := uc.wallets.GetByOwner(ctx, cmd.Principal)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if w == nil {
		uc.metrics.RecordPayout("insufficient_balance", cmd.Amount)
		return nil, errors.NewStateError(errors.ReasonInsufficientBalance, "no wallet balance to pay out")
	}
	if err := w.CanPayout(cmd.Amount); err != nil {
		uc.metrics.RecordPayout("insufficient_balance", cmd.Amount)
		return nil, err
	}

	recipient, err := uc.gateway.CreateTransferRecipient(ctx, paymentgateway.RecipientRequest{
		Name:          cmd.AccountName,
		AccountNumber: cmd.AccountNumber,
		BankCode:      cmd.BankCode,
		Currency:      uc.currency,
	})
	if err != nil {
		uc.metrics.RecordPayout("bank_verification_failed", cmd.Amount)
		uc.logger.Errorw("transfer recipient creation failed", "wallet_id", w.ID(), "error", err)
		return nil, gatewayError(errors.ReasonBankVerificationFailed, "failed to verify bank account", err)
	}

	reference := uuid.NewString()
	transfer, err := uc.gateway.InitiateTransfer(ctx, paymentgateway.TransferRequest{
		RecipientCode: recipient.Code,
		Amount:        paymentgateway.ToMinorUnits(cmd.Amount),
		Reason:        "Thrift payout: " + pkg.Name(),
		Reference:     reference,
	})
	if err != nil {
		uc.metrics.RecordPayout("transfer_failed", cmd.Amount)
		uc.logger.Errorw("transfer initiation failed", "wallet_id", w.ID(), "reference", reference, "error", err)
		return nil, gatewayError(errors.ReasonTransferFailed, "failed to initiate transfer", err)
	}
	if transfer.Reference != "" {
		reference = transfer.Reference
	}

	packageID := pkg.ID()
	var tx *wallet.Transaction
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		debited, err := uc.wallets.Debit(txCtx, w.ID(), cmd.Amount)
		if err != nil {
			return err
		}
		if !debited {
			return errors.NewStateError(errors.ReasonInsufficientBalance, "insufficient wallet balance")
		}
		if err := w.Debit(cmd.Amount); err != nil {
			return err
		}
		tx, err = wallet.NewWithdrawal(w.ID(), &packageID, cmd.Amount, reference, transfer.Status, map[string]any{
			"recipient_code": recipient.Code,
			"transfer_code":  transfer.TransferCode,
			"bank_code":      cmd.BankCode,
			"account_name":   cmd.AccountName,
			"gateway":        transfer.Raw,
		})
		if err != nil {
			return err
		}
		return uc.transactions.Create(txCtx, tx)
	})
	if err != nil {
		// The transfer is already with the gateway; this needs operator reconciliation.
		uc.metrics.RecordPayout("ledger_error", cmd.Amount)
		uc.logger.Errorw("payout transferred but ledger update failed",
			"wallet_id", w.ID(),
			"reference", reference,
			"transfer_code", transfer.TransferCode,
			"amount", cmd.Amount.String(),
			"error", err,
		)
		return nil, err
	}

	uc.metrics.RecordPayout("initiated", cmd.Amount)
	uc.logger.Infow("payout initiated",
		"wallet_id", w.ID(),
		"reference", reference,
		"status", tx.Status(),
		"balance", w.Balance().String(),
	)
	return &dto.PayoutDTO{
		Transaction:  dto.ToTransactionDTO(tx),
		TransferCode: transfer.TransferCode,
		Balance:      w.Balance(),
	}, nil
}

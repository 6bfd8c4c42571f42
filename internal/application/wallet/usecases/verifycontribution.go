package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/application/payment/paymentgateway"
	"github.com/thriftwise/thriftwise/internal/application/wallet/dto"
	"github.com/thriftwise/thriftwise/internal/domain/wallet"
	vo "github.com/thriftwise/thriftwise/internal/domain/wallet/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/db"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

var errAlreadyProcessed = stderrors.New("contribution already processed")

type VerifyContributionCommand struct {
	Reference string
}

type VerifyContributionUseCase struct {
	wallets      wallet.Repository
	transactions wallet.TransactionRepository
	directory    directory.Directory
	gateway      paymentgateway.Gateway
	txMgr        db.Transactor
	metrics      LedgerMetrics
	logger       logger.Interface
}

func NewVerifyContributionUseCase(
	wallets wallet.Repository,
	transactions wallet.TransactionRepository,
	dir directory.Directory,
	gateway paymentgateway.Gateway,
	txMgr db.Transactor,
	metrics LedgerMetrics,
	logger logger.Interface,
) *VerifyContributionUseCase {
	return &VerifyContributionUseCase{
		wallets:      wallets,
		transactions: transactions,
		directory:    dir,
		gateway:      gateway,
		txMgr:        txMgr,
		metrics:      metricsOrNoop(metrics),
		logger:       logger,
	}
}

// Execute credits the contributor's wallet once per successful gateway reference. Calling
// it again for a processed reference returns the recorded transaction unchanged.
func (uc *VerifyContributionUseCase) Execute(ctx context.Context, cmd VerifyContributionCommand) (*dto.VerificationDTO, error) {
	reference := strings.TrimSpace(cmd.Reference)
	if reference == "" {
		return nil, errors.NewValidationError("reference is required")
	}
	uc.logger.Infow("executing verify contribution use case", "reference", reference)

	ver, err := uc.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		uc.metrics.RecordVerification("gateway_error")
		uc.logger.Errorw("payment gateway verify failed", "reference", reference, "error", err)
		return nil, gatewayError(errors.ReasonGatewayUnavailable, "failed to verify payment", err)
	}
	if !ver.Succeeded() {
		uc.metrics.RecordVerification("not_successful")
		return nil, errors.NewStateError(errors.ReasonPaymentNotSuccessful,
			"payment was not successful", "gateway status "+ver.Status)
	}

	owner, err := ownerFromMetadata(ver.Metadata)
	if err != nil {
		uc.metrics.RecordVerification("bad_metadata")
		return nil, errors.NewValidationError("payment metadata does not name a contributor", err.Error())
	}
	found, err := directory.Resolve(ctx, uc.directory, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contributor: %w", err)
	}
	if found == nil {
		uc.metrics.RecordVerification("unknown_contributor")
		return nil, errors.NewNotFoundError("contributor no longer exists", owner.String()).
			WithReason(errors.ReasonUnknownContributor)
	}

	amount := paymentgateway.FromMinorUnits(ver.Amount)
	packageID := packageFromMetadata(ver.Metadata)
	meta := ver.Raw
	if meta == nil {
		meta = ver.Metadata
	}

	var (
		w  *wallet.Wallet
		tx *wallet.Transaction
	)
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.transactions.GetByReference(txCtx, vo.TransactionTypeContribution, reference)
		if err != nil {
			return err
		}
		if existing != nil {
			tx = existing
			return errAlreadyProcessed
		}

		w, err = uc.wallets.GetOrCreate(txCtx, owner)
		if err != nil {
			return err
		}
		if err := uc.wallets.Credit(txCtx, w.ID(), amount); err != nil {
			return err
		}
		if err := w.Credit(amount); err != nil {
			return err
		}

		tx, err = wallet.NewContribution(w.ID(), packageID, amount, reference, meta)
		if err != nil {
			return err
		}
		if err := uc.transactions.Create(txCtx, tx); err != nil {
			if errors.IsConflictError(err) {
				return errAlreadyProcessed
			}
			return err
		}
		return nil
	})

	if stderrors.Is(err, errAlreadyProcessed) {
		return uc.alreadyProcessed(ctx, reference, tx)
	}
	if err != nil {
		uc.metrics.RecordVerification("error")
		uc.logger.Errorw("failed to record contribution", "reference", reference, "error", err)
		return nil, err
	}

	uc.metrics.RecordVerification("credited")
	uc.metrics.RecordCredit(amount)
	uc.logger.Infow("contribution credited",
		"reference", reference,
		"wallet_id", w.ID(),
		"owner", owner.String(),
		"amount", amount.String(),
	)
	return &dto.VerificationDTO{
		Transaction: dto.ToTransactionDTO(tx),
		Wallet:      dto.ToWalletDTO(w),
	}, nil
}

func (uc *VerifyContributionUseCase) alreadyProcessed(ctx context.Context, reference string, tx *wallet.Transaction) (*dto.VerificationDTO, error) {
	uc.metrics.RecordVerification("duplicate")
	if tx == nil || tx.ID() == 0 {
		stored, err := uc.transactions.GetByReference(ctx, vo.TransactionTypeContribution, reference)
		if err != nil {
			return nil, err
		}
		tx = stored
	}
	if tx == nil {
		return nil, errors.NewConflictError("contribution is being processed", reference)
	}
	w, err := uc.wallets.GetByID(ctx, tx.WalletID())
	if err != nil {
		return nil, err
	}
	uc.logger.Infow("contribution already processed", "reference", reference, "transaction_id", tx.ID())
	return &dto.VerificationDTO{
		Transaction:      dto.ToTransactionDTO(tx),
		Wallet:           dto.ToWalletDTO(w),
		AlreadyProcessed: true,
	}, nil
}

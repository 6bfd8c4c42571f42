package wallet

import (
	"context"

	"github.com/thriftwise/thriftwise/internal/application/wallet/dto"
	"github.com/thriftwise/thriftwise/internal/application/wallet/usecases"
)

type initializeContributionUseCase interface {
	Execute(ctx context.Context, cmd usecases.InitializeContributionCommand) (*dto.PaymentInitDTO, error)
}

type verifyContributionUseCase interface {
	Execute(ctx context.Context, cmd usecases.VerifyContributionCommand) (*dto.VerificationDTO, error)
}

type payoutUseCase interface {
	Execute(ctx context.Context, cmd usecases.PayoutCommand) (*dto.PayoutDTO, error)
}

type listTransactionsUseCase interface {
	Execute(ctx context.Context, query usecases.ListTransactionsQuery) (*usecases.TransactionPage, error)
}

type showTransactionUseCase interface {
	Execute(ctx context.Context, query usecases.ShowWalletTransactionQuery) (*dto.TransactionDTO, error)
}

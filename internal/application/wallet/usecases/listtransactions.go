package usecases

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/application/wallet/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/domain/wallet"
	"github.com/thriftwise/thriftwise/internal/shared/constants"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type ListTransactionsQuery struct {
	Principal party.Ref
	PackageID uint
	Page      int
	PageSize  int
}

func (q *ListTransactionsQuery) normalize() {
	if q.Page < 1 {
		q.Page = constants.DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = constants.DefaultPageSize
	}
	if q.PageSize > constants.MaxPageSize {
		q.PageSize = constants.MaxPageSize
	}
}

type TransactionPage struct {
	Wallet   *dto.WalletDTO
	Items    []*dto.TransactionDTO
	Total    int64
	Page     int
	PageSize int
}

type ListWalletTransactionsUseCase struct {
	wallets      wallet.Repository
	transactions wallet.TransactionRepository
	logger       logger.Interface
}

func NewListWalletTransactionsUseCase(
	wallets wallet.Repository,
	transactions wallet.TransactionRepository,
	logger logger.Interface,
) *ListWalletTransactionsUseCase {
	return &ListWalletTransactionsUseCase{
		wallets:      wallets,
		transactions: transactions,
		logger:       logger,
	}
}

// Execute lists the caller's wallet history. A merchant without its own wallet sees the
// first wallet owned by one of its contacts.
func (uc *ListWalletTransactionsUseCase) Execute(ctx context.Context, query ListTransactionsQuery) (*TransactionPage, error) {
	if !query.Principal.IsPrincipal() {
		return nil, errors.NewForbiddenError("only users and merchants have wallets")
	}
	query.normalize()

	w, err := uc.wallets.GetByOwner(ctx, query.Principal)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if w == nil && query.Principal.IsMerchant() {
		w, err = uc.wallets.FirstOwnedByMerchantContacts(ctx, query.Principal.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get contact wallet: %w", err)
		}
	}

	page := &TransactionPage{Items: []*dto.TransactionDTO{}, Page: query.Page, PageSize: query.PageSize}
	if w == nil {
		return page, nil
	}

	txs, total, err := uc.transactions.ListByWallet(ctx, w.ID(), query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list wallet transactions", "wallet_id", w.ID(), "error", err)
		return nil, err
	}
	page.Wallet = dto.ToWalletDTO(w)
	page.Items = dto.ToTransactionDTOs(txs)
	page.Total = total
	return page, nil
}

type ShowWalletTransactionQuery struct {
	Principal party.Ref
	// IDOrReference is a numeric transaction id or a gateway reference.
	IDOrReference string
}

type ShowWalletTransactionUseCase struct {
	wallets      wallet.Repository
	transactions wallet.TransactionRepository
	directory    directory.Directory
	logger       logger.Interface
}

func NewShowWalletTransactionUseCase(
	wallets wallet.Repository,
	transactions wallet.TransactionRepository,
	dir directory.Directory,
	logger logger.Interface,
) *ShowWalletTransactionUseCase {
	return &ShowWalletTransactionUseCase{
		wallets:      wallets,
		transactions: transactions,
		directory:    dir,
		logger:       logger,
	}
}

func (uc *ShowWalletTransactionUseCase) Execute(ctx context.Context, query ShowWalletTransactionQuery) (*dto.TransactionDTO, error) {
	key := strings.TrimSpace(query.IDOrReference)
	if key == "" {
		return nil, errors.NewValidationError("transaction id or reference is required")
	}

	tx, err := uc.lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, errors.NewNotFoundError("wallet transaction not found")
	}

	w, err := uc.wallets.GetByID(ctx, tx.WalletID())
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if w == nil {
		return nil, errors.NewNotFoundError("wallet transaction not found")
	}

	visible, err := uc.canView(ctx, query.Principal, w)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, errors.NewForbiddenError("not allowed to view this transaction")
	}
	return dto.ToTransactionDTO(tx), nil
}

func (uc *ShowWalletTransactionUseCase) lookup(ctx context.Context, key string) (*wallet.Transaction, error) {
	if id, err := strconv.ParseUint(key, 10, 64); err == nil {
		tx, err := uc.transactions.GetByID(ctx, uint(id))
		if err != nil || tx != nil {
			return tx, err
		}
	}
	return uc.transactions.FindByReference(ctx, key)
}

// canView admits the wallet's own user or merchant, and a merchant who owns the contact
// the wallet belongs to.
func (uc *ShowWalletTransactionUseCase) canView(ctx context.Context, principal party.Ref, w *wallet.Wallet) (bool, error) {
	if !principal.IsPrincipal() {
		return false, nil
	}
	owner := w.Owner()
	if owner == principal {
		return true, nil
	}
	if !owner.IsContact() || !principal.IsMerchant() {
		return false, nil
	}
	contact, err := uc.directory.ResolveContact(ctx, owner.ID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve contact: %w", err)
	}
	return contact != nil && contact.MerchantID == principal.ID, nil
}

type ListPackageTransactionsUseCase struct {
	packages     thrift.PackageRepository
	admins       thrift.AdminRepository
	transactions wallet.TransactionRepository
	logger       logger.Interface
}

func NewListPackageTransactionsUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	transactions wallet.TransactionRepository,
	logger logger.Interface,
) *ListPackageTransactionsUseCase {
	return &ListPackageTransactionsUseCase{
		packages:     packages,
		admins:       admins,
		transactions: transactions,
		logger:       logger,
	}
}

func (uc *ListPackageTransactionsUseCase) Execute(ctx context.Context, query ListTransactionsQuery) (*TransactionPage, error) {
	query.normalize()

	pkg, err := uc.packages.GetByID(ctx, query.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, errors.NewNotFoundError("thrift package not found")
	}
	ok, err := thrift.HasAuthority(ctx, uc.admins, pkg, query.Principal)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewForbiddenError("only the package owner or an admin may view its transactions")
	}

	txs, total, err := uc.transactions.ListByPackage(ctx, pkg.ID(), query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list package transactions", "package_id", pkg.ID(), "error", err)
		return nil, err
	}
	return &TransactionPage{
		Items:    dto.ToTransactionDTOs(txs),
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

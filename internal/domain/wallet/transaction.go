package wallet

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/thriftwise/thriftwise/internal/domain/wallet/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/biztime"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

// Transaction is an immutable ledger entry. Contributions are unique per gateway reference.
type Transaction struct {
	id        uint
	walletID  uint
	packageID *uint
	txType    vo.TransactionType
	amount    decimal.Decimal
	reference string
	status    vo.TransactionStatus
	meta      map[string]any
	createdAt time.Time
}

func newTransaction(walletID uint, packageID *uint, t vo.TransactionType, amount decimal.Decimal, reference string, status vo.TransactionStatus, meta map[string]any) (*Transaction, error) {
	if walletID == 0 {
		return nil, errors.NewValidationError("wallet id is required")
	}
	if !amount.IsPositive() {
		return nil, errors.NewValidationError("transaction amount must be positive")
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return &Transaction{
		walletID:  walletID,
		packageID: packageID,
		txType:    t,
		amount:    amount,
		reference: strings.TrimSpace(reference),
		status:    status,
		meta:      meta,
		createdAt: biztime.NowUTC(),
	}, nil
}

// NewContribution records a verified gateway payment. reference is the idempotency key.
func NewContribution(walletID uint, packageID *uint, amount decimal.Decimal, reference string, meta map[string]any) (*Transaction, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, errors.NewValidationError("contribution reference is required")
	}
	return newTransaction(walletID, packageID, vo.TransactionTypeContribution, amount, reference, vo.TransactionStatusSuccess, meta)
}

// NewWithdrawal records an initiated payout with the transfer status the gateway reported.
func NewWithdrawal(walletID uint, packageID *uint, amount decimal.Decimal, reference, gatewayStatus string, meta map[string]any) (*Transaction, error) {
	return newTransaction(walletID, packageID, vo.TransactionTypeWithdrawal, amount, reference, vo.NormalizeStatus(gatewayStatus), meta)
}

func ReconstructTransaction(id, walletID uint, packageID *uint, t vo.TransactionType, amount decimal.Decimal, reference string, status vo.TransactionStatus, meta map[string]any, createdAt time.Time) *Transaction {
	return &Transaction{
		id:        id,
		walletID:  walletID,
		packageID: packageID,
		txType:    t,
		amount:    amount,
		reference: reference,
		status:    status,
		meta:      meta,
		createdAt: createdAt,
	}
}

func (t *Transaction) SetID(id uint) { t.id = id }

func (t *Transaction) ID() uint                     { return t.id }
func (t *Transaction) WalletID() uint               { return t.walletID }
func (t *Transaction) PackageID() *uint             { return t.packageID }
func (t *Transaction) Type() vo.TransactionType     { return t.txType }
func (t *Transaction) Amount() decimal.Decimal      { return t.amount }
func (t *Transaction) Reference() string            { return t.reference }
func (t *Transaction) Status() vo.TransactionStatus { return t.status }
func (t *Transaction) Meta() map[string]any         { return t.meta }
func (t *Transaction) CreatedAt() time.Time         { return t.createdAt }

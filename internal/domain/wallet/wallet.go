// Package wallet models per-principal balances and their append-only transaction log.
package wallet

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/shared/biztime"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

// MinimumPayoutBalance is the smallest balance that may be paid out at all.
var MinimumPayoutBalance = decimal.NewFromInt(1)

// Wallet holds the balance of exactly one user, merchant or contact. Balance is never
// negative and only changes through Credit and Debit.
type Wallet struct {
	id        uint
	owner     party.Ref
	balance   decimal.Decimal
	createdAt time.Time
	updatedAt time.Time
}

// NewWallet creates an empty wallet for owner.
func NewWallet(owner party.Ref) (*Wallet, error) {
	if !owner.Kind.IsValid() || owner.ID == 0 {
		return nil, errors.NewValidationError("wallet owner must be a user, merchant or contact")
	}
	now := biztime.NowUTC()
	return &Wallet{
		owner:     owner,
		balance:   decimal.Zero,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructWallet(id uint, owner party.Ref, balance decimal.Decimal, createdAt, updatedAt time.Time) *Wallet {
	return &Wallet{
		id:        id,
		owner:     owner,
		balance:   balance,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (w *Wallet) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.NewValidationError("credit amount must be positive")
	}
	w.balance = w.balance.Add(amount)
	w.updatedAt = biztime.NowUTC()
	return nil
}

func (w *Wallet) Debit(amount decimal.Decimal) error {
	if err := w.CanPayout(amount); err != nil {
		return err
	}
	w.balance = w.balance.Sub(amount)
	w.updatedAt = biztime.NowUTC()
	return nil
}

// CanPayout checks the balance covers amount and meets the payout minimum.
func (w *Wallet) CanPayout(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.NewValidationError("payout amount must be positive")
	}
	if w.balance.LessThan(MinimumPayoutBalance) || w.balance.LessThan(amount) {
		return errors.NewStateError(errors.ReasonInsufficientBalance, "insufficient wallet balance")
	}
	return nil
}

func (w *Wallet) SetID(id uint) { w.id = id }

func (w *Wallet) ID() uint                 { return w.id }
func (w *Wallet) Owner() party.Ref         { return w.owner }
func (w *Wallet) Balance() decimal.Decimal { return w.balance }
func (w *Wallet) CreatedAt() time.Time     { return w.createdAt }
func (w *Wallet) UpdatedAt() time.Time     { return w.updatedAt }

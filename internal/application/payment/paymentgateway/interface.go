// Package paymentgateway is the port to the external card/bank payment provider. All
// amounts crossing this boundary are in the currency's minor unit (kobo, cents).
package paymentgateway

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

type Gateway interface {
	InitializeTransaction(ctx context.Context, req InitializeRequest) (*InitializeResponse, error)
	VerifyTransaction(ctx context.Context, reference string) (*Verification, error)
	CreateTransferRecipient(ctx context.Context, req RecipientRequest) (*Recipient, error)
	InitiateTransfer(ctx context.Context, req TransferRequest) (*Transfer, error)
}

type InitializeRequest struct {
	Email       string
	Amount      int64
	Currency    string
	Reference   string
	CallbackURL string
	Metadata    map[string]any
}

// InitializeResponse keeps the provider payload verbatim in Raw; clients continue the
// checkout with it.
type InitializeResponse struct {
	Reference        string
	AuthorizationURL string
	AccessCode       string
	Raw              map[string]any
}

type Verification struct {
	Reference string
	Status    string
	Amount    int64
	Currency  string
	Metadata  map[string]any
	Raw       map[string]any
}

func (v *Verification) Succeeded() bool {
	return v != nil && v.Status == "success"
}

type RecipientRequest struct {
	Name          string
	AccountNumber string
	BankCode      string
	Currency      string
}

type Recipient struct {
	Code string
	Raw  map[string]any
}

type TransferRequest struct {
	RecipientCode string
	Amount        int64
	Reason        string
	Reference     string
}

type Transfer struct {
	Reference    string
	TransferCode string
	Status       string
	Raw          map[string]any
}

// Error is returned by adapters when the provider answered with a failure. StatusCode and
// Body are kept for operator diagnosis.
type Error struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment gateway %s failed (status %d): %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("payment gateway %s failed (status %d): %s", e.Op, e.StatusCode, e.Body)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var minorUnitsPerMajor = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit amount (naira, dollars) to the gateway's minor unit.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(minorUnitsPerMajor).Round(0).IntPart()
}

// FitsMinorUnits reports whether amount converts to minor units without rounding.
func FitsMinorUnits(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(2))
}

// FromMinorUnits converts a gateway amount back to major units.
func FromMinorUnits(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Div(minorUnitsPerMajor)
}

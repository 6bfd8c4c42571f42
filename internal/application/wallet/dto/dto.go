package dto

import (
	"time"

	"github.com/shopspring/decimal"

	thriftdto "github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/wallet"
	"github.com/thriftwise/thriftwise/internal/shared/mapper"
)

type WalletDTO struct {
	ID        uint               `json:"id"`
	Owner     thriftdto.PartyDTO `json:"owner"`
	Balance   decimal.Decimal    `json:"balance"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type TransactionDTO struct {
	ID        uint            `json:"id"`
	WalletID  uint            `json:"wallet_id"`
	PackageID *uint           `json:"package_id,omitempty"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Meta      map[string]any  `json:"meta,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentInitDTO carries the gateway's initialization payload to the client.
type PaymentInitDTO struct {
	Reference        string         `json:"reference"`
	AuthorizationURL string         `json:"authorization_url"`
	AccessCode       string         `json:"access_code"`
	Gateway          map[string]any `json:"gateway"`
}

type VerificationDTO struct {
	Transaction      *TransactionDTO `json:"transaction"`
	Wallet           *WalletDTO      `json:"wallet"`
	AlreadyProcessed bool            `json:"already_processed"`
}

type PayoutDTO struct {
	Transaction  *TransactionDTO `json:"transaction"`
	TransferCode string          `json:"transfer_code"`
	Balance      decimal.Decimal `json:"balance"`
}

func ToWalletDTO(w *wallet.Wallet) *WalletDTO {
	if w == nil {
		return nil
	}
	return &WalletDTO{
		ID:        w.ID(),
		Owner:     thriftdto.ToPartyDTO(w.Owner()),
		Balance:   w.Balance(),
		UpdatedAt: w.UpdatedAt(),
	}
}

func ToTransactionDTO(t *wallet.Transaction) *TransactionDTO {
	if t == nil {
		return nil
	}
	return &TransactionDTO{
		ID:        t.ID(),
		WalletID:  t.WalletID(),
		PackageID: t.PackageID(),
		Type:      t.Type().String(),
		Amount:    t.Amount(),
		Reference: t.Reference(),
		Status:    t.Status().String(),
		Meta:      t.Meta(),
		CreatedAt: t.CreatedAt(),
	}
}

func ToTransactionDTOs(ts []*wallet.Transaction) []*TransactionDTO {
	return mapper.MapSlice(ts, ToTransactionDTO)
}

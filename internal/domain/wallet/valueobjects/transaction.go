package valueobjects

import "strings"

type TransactionType string

const (
	TransactionTypeContribution TransactionType = "contribution"
	TransactionTypeWithdrawal   TransactionType = "withdrawal"
)

func (t TransactionType) IsValid() bool {
	return t == TransactionTypeContribution || t == TransactionTypeWithdrawal
}

func (t TransactionType) String() string {
	return string(t)
}

// TransactionStatus mirrors whatever status the gateway reported, so it is open-ended.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusSuccess  TransactionStatus = "success"
	TransactionStatusFailed   TransactionStatus = "failed"
	TransactionStatusReversed TransactionStatus = "reversed"
)

// NormalizeStatus lowercases a gateway status and defaults an empty one to pending.
func NormalizeStatus(raw string) TransactionStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return TransactionStatusPending
	}
	return TransactionStatus(s)
}

func (s TransactionStatus) IsSuccess() bool {
	return s == TransactionStatusSuccess
}

func (s TransactionStatus) String() string {
	return string(s)
}

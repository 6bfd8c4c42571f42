package usecases

import (
	stderrors "errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/thriftwise/thriftwise/internal/application/payment/paymentgateway"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

// Metadata keys embedded in contribution payments for reconciliation.
const (
	MetaPackageID       = "package_id"
	MetaContributorType = "contributor_type"
	MetaContributorID   = "contributor_id"
	MetaAmount          = "amount"
)

// LedgerMetrics records ledger movements. Implementations must be safe for concurrent use.
type LedgerMetrics interface {
	RecordVerification(outcome string)
	RecordCredit(amount decimal.Decimal)
	RecordPayout(outcome string, amount decimal.Decimal)
}

type noopMetrics struct{}

func (noopMetrics) RecordVerification(string)            {}
func (noopMetrics) RecordCredit(decimal.Decimal)         {}
func (noopMetrics) RecordPayout(string, decimal.Decimal) {}

func metricsOrNoop(m LedgerMetrics) LedgerMetrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}

// gatewayError turns an adapter failure into an external service error that keeps the
// upstream status and body.
func gatewayError(reason, message string, err error) error {
	var gwErr *paymentgateway.Error
	if stderrors.As(err, &gwErr) {
		return errors.NewExternalServiceError(reason, message, gwErr.StatusCode, gwErr.Body)
	}
	return errors.NewExternalServiceError(reason, message, 0, err.Error())
}

// ownerFromMetadata reads the wallet owner embedded by InitializeContribution. JSON
// decoding may hand ids back as numbers or strings.
func ownerFromMetadata(meta map[string]any) (party.Ref, error) {
	kind, _ := meta[MetaContributorType].(string)
	id, err := metaUint(meta[MetaContributorID])
	if err != nil {
		return party.Ref{}, err
	}
	return party.New(kind, id)
}

func packageFromMetadata(meta map[string]any) *uint {
	id, err := metaUint(meta[MetaPackageID])
	if err != nil || id == 0 {
		return nil
	}
	return &id
}

func metaUint(v any) (uint, error) {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0, fmt.Errorf("negative id %v", n)
		}
		return uint(n), nil
	case int:
		return uint(n), nil
	case int64:
		return uint(n), nil
	case uint:
		return n, nil
	case string:
		parsed, err := strconv.ParseUint(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid id %q: %w", n, err)
		}
		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("missing id")
	}
}

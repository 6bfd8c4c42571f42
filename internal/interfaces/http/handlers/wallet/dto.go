package wallet

import (
	"github.com/shopspring/decimal"

	"github.com/thriftwise/thriftwise/internal/application/wallet/usecases"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

type InitializeContributionRequest struct {
	Amount decimal.Decimal `json:"amount"`
	// OnBehalfOf is a "contact:id" reference when a merchant pays for one of its contacts.
	OnBehalfOf string         `json:"on_behalf_of"`
	Metadata   map[string]any `json:"metadata"`
}

func (r *InitializeContributionRequest) ToCommand(principal party.Ref, packageID uint) (usecases.InitializeContributionCommand, error) {
	cmd := usecases.InitializeContributionCommand{
		Principal: principal,
		PackageID: packageID,
		Amount:    r.Amount,
		Metadata:  r.Metadata,
	}
	if r.OnBehalfOf != "" {
		ref, err := party.Parse(r.OnBehalfOf)
		if err != nil {
			return usecases.InitializeContributionCommand{}, errors.NewValidationError("invalid on_behalf_of reference", err.Error())
		}
		cmd.OnBehalfOf = &ref
	}
	return cmd, nil
}

package thrift

import (
	"github.com/shopspring/decimal"

	"github.com/thriftwise/thriftwise/internal/application/thrift/usecases"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/interfaces/http/handlers/common"
)

type CreatePackageRequest struct {
	Name         string          `json:"name" binding:"required,max=255"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	DurationDays int             `json:"duration_days"`
	SlotCount    int             `json:"slot_count"`
	Visibility   string          `json:"visibility" binding:"omitempty,oneof=public private"`
	Status       string          `json:"status" binding:"omitempty,oneof=draft pending"`
}

func (r *CreatePackageRequest) ToCommand(principal party.Ref) usecases.CreatePackageCommand {
	return usecases.CreatePackageCommand{
		Principal:    principal,
		Name:         r.Name,
		TotalAmount:  r.TotalAmount,
		DurationDays: r.DurationDays,
		SlotCount:    r.SlotCount,
		Visibility:   r.Visibility,
		Status:       r.Status,
	}
}

type TermsRequest struct {
	Text     *string `json:"text"`
	Accepted *bool   `json:"accepted"`
}

// SaveProgressRequest carries any subset of the package fragments. Contributors, when
// present, is the complete desired list in "kind:id" form.
type SaveProgressRequest struct {
	PackageID    uint                      `json:"package_id"`
	Details      *usecases.DetailsFragment `json:"details"`
	Terms        *TermsRequest             `json:"terms"`
	Contributors *[]string                 `json:"contributors"`
}

func (r *SaveProgressRequest) ToCommand(principal party.Ref, packageID uint) (usecases.SaveProgressCommand, error) {
	cmd := usecases.SaveProgressCommand{
		Principal: principal,
		PackageID: packageID,
		Details:   r.Details,
	}
	if cmd.PackageID == 0 {
		cmd.PackageID = r.PackageID
	}
	if r.Terms != nil {
		cmd.Terms = &usecases.TermsFragment{Text: r.Terms.Text, Accepted: r.Terms.Accepted}
	}
	if r.Contributors != nil {
		refs, err := common.ParseRefs(*r.Contributors)
		if err != nil {
			return usecases.SaveProgressCommand{}, err
		}
		cmd.Contributors = &refs
	}
	return cmd, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AcceptTermsRequest struct {
	Accepted *bool `json:"accepted" binding:"required"`
}

type AddAdminRequest struct {
	Admin string `json:"admin" binding:"required"`
}

type AddContributorsRequest struct {
	Contributors []string `json:"contributors" binding:"required,min=1"`
}

// ResolveContributorsRequest lists contributor row ids. Confirm treats an empty list as
// every pending contributor of the package.
type ResolveContributorsRequest struct {
	ContributorIDs []uint `json:"contributor_ids"`
}

type InviteUserRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

type RespondRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

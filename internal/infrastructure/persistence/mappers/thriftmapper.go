package mappers

import (
	"fmt"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/infrastructure/persistence/models"
)

func ThriftPackageToModel(p *thrift.Package) *models.ThriftPackageModel {
	return &models.ThriftPackageModel{
		ID:              p.ID(),
		SID:             p.SID(),
		CreatorType:     p.Creator().Kind.String(),
		CreatorID:       p.Creator().ID,
		MerchantID:      p.MerchantID(),
		CreatedByUserID: p.CreatedByUserID(),
		Name:            p.Name(),
		TotalAmount:     p.TotalAmount(),
		DurationDays:    p.DurationDays(),
		SlotCount:       p.SlotCount(),
		TermsText:       p.TermsText(),
		TermsAccepted:   p.TermsAccepted(),
		Visibility:      p.Visibility().String(),
		Status:          p.Status().String(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}

func ThriftPackageToDomain(model *models.ThriftPackageModel) (*thrift.Package, error) {
	creator, err := packageCreator(model)
	if err != nil {
		return nil, err
	}

	visibility := vo.Visibility(model.Visibility)
	if !visibility.IsValid() {
		return nil, fmt.Errorf("invalid package visibility: %s", model.Visibility)
	}
	status := vo.PackageStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid package status: %s", model.Status)
	}

	return thrift.ReconstructPackage(
		model.ID, model.SID, creator, model.Name, model.TotalAmount,
		model.DurationDays, model.SlotCount, model.TermsText, model.TermsAccepted,
		visibility, status, model.CreatedAt, model.UpdatedAt,
	), nil
}

// packageCreator prefers the kind/id pair and falls back to the legacy owner columns.
func packageCreator(model *models.ThriftPackageModel) (party.Ref, error) {
	if model.CreatorType != "" {
		return party.New(model.CreatorType, model.CreatorID)
	}
	switch {
	case model.MerchantID != nil:
		return party.Merchant(*model.MerchantID), nil
	case model.CreatedByUserID != nil:
		return party.User(*model.CreatedByUserID), nil
	}
	return party.Ref{}, fmt.Errorf("package %d has no creator", model.ID)
}

func ThriftPackagesToDomain(ms []models.ThriftPackageModel) ([]*thrift.Package, error) {
	out := make([]*thrift.Package, 0, len(ms))
	for i := range ms {
		p, err := ThriftPackageToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func ContributorToModel(c *thrift.Contributor) *models.ThriftContributorModel {
	return &models.ThriftContributorModel{
		ID:              c.ID(),
		ThriftPackageID: c.PackageID(),
		ParticipantType: c.Participant().Kind.String(),
		ParticipantID:   c.Participant().ID,
		Status:          c.Status().String(),
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
}

func ContributorToDomain(model *models.ThriftContributorModel) (*thrift.Contributor, error) {
	participant, err := party.New(model.ParticipantType, model.ParticipantID)
	if err != nil {
		return nil, fmt.Errorf("invalid contributor participant: %w", err)
	}
	status := vo.ContributorStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid contributor status: %s", model.Status)
	}
	return thrift.ReconstructContributor(model.ID, model.ThriftPackageID, participant, status, model.CreatedAt, model.UpdatedAt), nil
}

func ContributorsToDomain(ms []models.ThriftContributorModel) ([]*thrift.Contributor, error) {
	out := make([]*thrift.Contributor, 0, len(ms))
	for i := range ms {
		c, err := ContributorToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func InviteToModel(inv *thrift.Invite) *models.ThriftInviteModel {
	return &models.ThriftInviteModel{
		ID:              inv.ID(),
		ThriftPackageID: inv.PackageID(),
		InvitedUserID:   inv.InvitedUserID(),
		InvitedByType:   inv.InvitedBy().Kind.String(),
		InvitedByID:     inv.InvitedBy().ID,
		Status:          inv.Status().String(),
		RespondedAt:     inv.RespondedAt(),
		CreatedAt:       inv.CreatedAt(),
	}
}

func InviteToDomain(model *models.ThriftInviteModel) (*thrift.Invite, error) {
	invitedBy, err := party.New(model.InvitedByType, model.InvitedByID)
	if err != nil {
		return nil, fmt.Errorf("invalid inviter: %w", err)
	}
	status := vo.ResponseStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid invite status: %s", model.Status)
	}
	return thrift.ReconstructInvite(model.ID, model.ThriftPackageID, model.InvitedUserID, invitedBy, status, model.RespondedAt, model.CreatedAt), nil
}

func InvitesToDomain(ms []models.ThriftInviteModel) ([]*thrift.Invite, error) {
	out := make([]*thrift.Invite, 0, len(ms))
	for i := range ms {
		inv, err := InviteToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

func ApplicationToModel(app *thrift.Application) *models.ThriftApplicationModel {
	return &models.ThriftApplicationModel{
		ID:              app.ID(),
		ThriftPackageID: app.PackageID(),
		UserID:          app.UserID(),
		Status:          app.Status().String(),
		RespondedAt:     app.RespondedAt(),
		CreatedAt:       app.CreatedAt(),
	}
}

func ApplicationToDomain(model *models.ThriftApplicationModel) (*thrift.Application, error) {
	status := vo.ResponseStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid application status: %s", model.Status)
	}
	return thrift.ReconstructApplication(model.ID, model.ThriftPackageID, model.UserID, status, model.RespondedAt, model.CreatedAt), nil
}

func ApplicationsToDomain(ms []models.ThriftApplicationModel) ([]*thrift.Application, error) {
	out := make([]*thrift.Application, 0, len(ms))
	for i := range ms {
		app, err := ApplicationToDomain(&ms[i])
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, nil
}

func SlotToModel(s *thrift.Slot) *models.ThriftSlotModel {
	return &models.ThriftSlotModel{
		ID:              s.ID(),
		ThriftPackageID: s.PackageID(),
		ContributorID:   s.ContributorID(),
		SlotNo:          s.SlotNo(),
		Status:          s.Status().String(),
		CreatedAt:       s.CreatedAt(),
	}
}

func SlotsToDomain(ms []models.ThriftSlotModel) []*thrift.Slot {
	out := make([]*thrift.Slot, 0, len(ms))
	for _, m := range ms {
		out = append(out, thrift.ReconstructSlot(m.ID, m.ThriftPackageID, m.ContributorID, m.SlotNo, vo.SlotStatus(m.Status), m.CreatedAt))
	}
	return out
}

package dto

import (
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/mapper"
)

func ToPartyDTO(ref party.Ref) PartyDTO {
	return PartyDTO{Type: ref.Kind.String(), ID: ref.ID}
}

func ToPackageDTO(p *thrift.Package) *PackageDTO {
	if p == nil {
		return nil
	}
	return &PackageDTO{
		ID:                  p.ID(),
		SID:                 p.SID(),
		Name:                p.Name(),
		Creator:             ToPartyDTO(p.Creator()),
		TotalAmount:         p.TotalAmount(),
		ContributionPerSlot: p.ContributionPerSlot(),
		DurationDays:        p.DurationDays(),
		SlotCount:           p.SlotCount(),
		TermsText:           p.TermsText(),
		TermsAccepted:       p.TermsAccepted(),
		Visibility:          p.Visibility().String(),
		Status:              p.Status().String(),
		ClosesAt:            p.ClosesAt(),
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
	}
}

func ToPackageDTOs(pkgs []*thrift.Package) []*PackageDTO {
	return mapper.MapSlice(pkgs, ToPackageDTO)
}

func ToContributorDTO(c *thrift.Contributor) *ContributorDTO {
	return &ContributorDTO{
		ID:          c.ID(),
		PackageID:   c.PackageID(),
		Participant: ToPartyDTO(c.Participant()),
		Status:      c.Status().String(),
		CreatedAt:   c.CreatedAt(),
	}
}

func ToContributorDTOs(cs []*thrift.Contributor) []*ContributorDTO {
	return mapper.MapSlice(cs, ToContributorDTO)
}

func ToInviteDTO(i *thrift.Invite) *InviteDTO {
	return &InviteDTO{
		ID:            i.ID(),
		PackageID:     i.PackageID(),
		InvitedUserID: i.InvitedUserID(),
		InvitedBy:     ToPartyDTO(i.InvitedBy()),
		Status:        i.Status().String(),
		RespondedAt:   i.RespondedAt(),
		CreatedAt:     i.CreatedAt(),
	}
}

func ToInviteDTOs(is []*thrift.Invite) []*InviteDTO {
	return mapper.MapSlice(is, ToInviteDTO)
}

func ToApplicationDTO(a *thrift.Application) *ApplicationDTO {
	return &ApplicationDTO{
		ID:          a.ID(),
		PackageID:   a.PackageID(),
		UserID:      a.UserID(),
		Status:      a.Status().String(),
		RespondedAt: a.RespondedAt(),
		CreatedAt:   a.CreatedAt(),
	}
}

func ToApplicationDTOs(as []*thrift.Application) []*ApplicationDTO {
	return mapper.MapSlice(as, ToApplicationDTO)
}

func ToSlotDTO(s *thrift.Slot) *SlotDTO {
	return &SlotDTO{
		ID:            s.ID(),
		SlotNo:        s.SlotNo(),
		ContributorID: s.ContributorID(),
		Status:        s.Status().String(),
	}
}

func ToSlotDTOs(ss []*thrift.Slot) []*SlotDTO {
	return mapper.MapSlice(ss, ToSlotDTO)
}

func ToPartyDTOs(refs []party.Ref) []PartyDTO {
	return mapper.MapSlice(refs, ToPartyDTO)
}

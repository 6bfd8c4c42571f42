package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type PartyDTO struct {
	Type string `json:"type"`
	ID   uint   `json:"id"`
}

type PackageDTO struct {
	ID                  uint            `json:"id"`
	SID                 string          `json:"sid"`
	Name                string          `json:"name"`
	Creator             PartyDTO        `json:"creator"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	ContributionPerSlot decimal.Decimal `json:"contribution_per_slot"`
	DurationDays        int             `json:"duration_days"`
	SlotCount           int             `json:"slot_count"`
	TermsText           string          `json:"terms_text,omitempty"`
	TermsAccepted       bool            `json:"terms_accepted"`
	Visibility          string          `json:"visibility"`
	Status              string          `json:"status"`
	ClosesAt            time.Time       `json:"closes_at"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// PackageDetailDTO is the authority view of a package.
type PackageDetailDTO struct {
	PackageDTO
	TermsHTML    string            `json:"terms_html,omitempty"`
	Contributors []*ContributorDTO `json:"contributors"`
	Slots        []*SlotDTO        `json:"slots"`
	Admins       []PartyDTO        `json:"admins"`
}

type ContributorDTO struct {
	ID          uint      `json:"id"`
	PackageID   uint      `json:"package_id"`
	Participant PartyDTO  `json:"participant"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type InviteDTO struct {
	ID            uint       `json:"id"`
	PackageID     uint       `json:"package_id"`
	InvitedUserID uint       `json:"invited_user_id"`
	InvitedBy     PartyDTO   `json:"invited_by"`
	Status        string     `json:"status"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ApplicationDTO struct {
	ID          uint       `json:"id"`
	PackageID   uint       `json:"package_id"`
	UserID      uint       `json:"user_id"`
	Status      string     `json:"status"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type SlotDTO struct {
	ID            uint   `json:"id"`
	SlotNo        string `json:"slot_no"`
	ContributorID uint   `json:"contributor_id"`
	Status        string `json:"status"`
}

// RejectedRefDTO names a contributor reference that could not be admitted and why.
type RejectedRefDTO struct {
	Reference string `json:"reference"`
	Reason    string `json:"reason"`
}

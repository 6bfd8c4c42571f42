// Package thrift holds the rotating-savings aggregates: packages, their contributors,
// invites, applications and rotation slots.
package thrift

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/biztime"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/id"
)

const maxNameLength = 255

// Package is a rotating-savings program owned by exactly one merchant or user.
type Package struct {
	id            uint
	sid           string
	creator       party.Ref
	name          string
	totalAmount   decimal.Decimal
	durationDays  int
	slotCount     int
	termsText     string
	termsAccepted bool
	visibility    vo.Visibility
	status        vo.PackageStatus
	createdAt     time.Time
	updatedAt     time.Time
}

// Details is the editable shape of a package.
type Details struct {
	Name         string
	TotalAmount  decimal.Decimal
	DurationDays int
	SlotCount    int
	Visibility   vo.Visibility
}

func (d Details) validate() error {
	name := strings.TrimSpace(d.Name)
	switch {
	case name == "":
		return errors.NewValidationError("package name is required")
	case len(name) > maxNameLength:
		return errors.NewValidationError("package name is too long")
	case !d.TotalAmount.IsPositive():
		return errors.NewValidationError("total amount must be positive")
	case d.DurationDays <= 0:
		return errors.NewValidationError("duration days must be positive")
	case d.SlotCount <= 0:
		return errors.NewValidationError("slot count must be positive")
	case d.Visibility != "" && !d.Visibility.IsValid():
		return errors.NewValidationError("visibility must be public or private")
	}
	return nil
}

// NewPackage creates a package in draft (or pending) status with terms not yet accepted.
func NewPackage(creator party.Ref, details Details, status vo.PackageStatus) (*Package, error) {
	if !creator.IsPrincipal() {
		return nil, errors.NewValidationError("package creator must be a merchant or a user")
	}
	if err := details.validate(); err != nil {
		return nil, err
	}
	if status == "" {
		status = vo.PackageStatusDraft
	}
	if !status.IsInitial() {
		return nil, errors.NewValidationError("a new package must be draft or pending")
	}
	visibility := details.Visibility
	if visibility == "" {
		visibility = vo.VisibilityPrivate
	}

	sid, err := id.NewThriftPackageSID()
	if err != nil {
		return nil, errors.NewInternalError("failed to generate package id", err.Error())
	}

	now := biztime.NowUTC()
	return &Package{
		sid:          sid,
		creator:      creator,
		name:         strings.TrimSpace(details.Name),
		totalAmount:  details.TotalAmount,
		durationDays: details.DurationDays,
		slotCount:    details.SlotCount,
		visibility:   visibility,
		status:       status,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructPackage rebuilds a package from persistence without validation.
func ReconstructPackage(
	id uint,
	sid string,
	creator party.Ref,
	name string,
	totalAmount decimal.Decimal,
	durationDays, slotCount int,
	termsText string,
	termsAccepted bool,
	visibility vo.Visibility,
	status vo.PackageStatus,
	createdAt, updatedAt time.Time,
) *Package {
	return &Package{
		id:            id,
		sid:           sid,
		creator:       creator,
		name:          name,
		totalAmount:   totalAmount,
		durationDays:  durationDays,
		slotCount:     slotCount,
		termsText:     termsText,
		termsAccepted: termsAccepted,
		visibility:    visibility,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// UpdateDetails replaces the editable fields. Visibility is kept when left empty.
func (p *Package) UpdateDetails(details Details) error {
	if err := details.validate(); err != nil {
		return err
	}
	p.name = strings.TrimSpace(details.Name)
	p.totalAmount = details.TotalAmount
	p.durationDays = details.DurationDays
	p.slotCount = details.SlotCount
	if details.Visibility != "" {
		p.visibility = details.Visibility
	}
	p.touch()
	return nil
}

// SetTerms stores the terms text. Editing the text does not reset acceptance.
func (p *Package) SetTerms(text string) {
	p.termsText = text
	p.touch()
}

// AcceptTerms sets the acceptance flag. It does not cascade to contributors.
func (p *Package) AcceptTerms(accepted bool) {
	p.termsAccepted = accepted
	p.touch()
}

// RequireTermsAccepted gates every contributor admission.
func (p *Package) RequireTermsAccepted() error {
	if !p.termsAccepted {
		return errors.NewStateError(errors.ReasonTermsNotAccepted, "package terms have not been accepted")
	}
	return nil
}

// ChangeStatus moves the package along its lifecycle.
func (p *Package) ChangeStatus(next vo.PackageStatus) error {
	if !next.IsValid() {
		return errors.NewValidationError("invalid package status")
	}
	if p.status == next {
		return nil
	}
	if !p.status.CanTransitionTo(next) {
		return errors.NewStateError("invalid_status_transition",
			"package cannot move from "+p.status.String()+" to "+next.String())
	}
	p.status = next
	p.touch()
	return nil
}

// IsOwnedBy reports whether principal created the package. For merchants this is the
// owning-merchant relation; admin membership is tracked separately.
func (p *Package) IsOwnedBy(principal party.Ref) bool {
	return principal.IsPrincipal() && p.creator == principal
}

// MerchantID returns the owning merchant, if the creator is a merchant.
func (p *Package) MerchantID() *uint {
	if !p.creator.IsMerchant() {
		return nil
	}
	v := p.creator.ID
	return &v
}

// CreatedByUserID returns the creating user, if the creator is a user.
func (p *Package) CreatedByUserID() *uint {
	if !p.creator.IsUser() {
		return nil
	}
	v := p.creator.ID
	return &v
}

// ContributionPerSlot is the amount each rotation collects.
func (p *Package) ContributionPerSlot() decimal.Decimal {
	return p.totalAmount.Div(decimal.NewFromInt(int64(p.slotCount))).Round(2)
}

// ClosesAt is the end of the business day duration_days after creation.
func (p *Package) ClosesAt() time.Time {
	return biztime.ClosingTimeUTC(p.createdAt, p.durationDays)
}

func (p *Package) touch() {
	p.updatedAt = biztime.NowUTC()
}

func (p *Package) SetID(id uint) { p.id = id }

func (p *Package) ID() uint                     { return p.id }
func (p *Package) SID() string                  { return p.sid }
func (p *Package) Creator() party.Ref           { return p.creator }
func (p *Package) Name() string                 { return p.name }
func (p *Package) TotalAmount() decimal.Decimal { return p.totalAmount }
func (p *Package) DurationDays() int            { return p.durationDays }
func (p *Package) SlotCount() int               { return p.slotCount }
func (p *Package) TermsText() string            { return p.termsText }
func (p *Package) TermsAccepted() bool          { return p.termsAccepted }
func (p *Package) Visibility() vo.Visibility    { return p.visibility }
func (p *Package) IsPublic() bool               { return p.visibility.IsPublic() }
func (p *Package) Status() vo.PackageStatus     { return p.status }
func (p *Package) CreatedAt() time.Time         { return p.createdAt }
func (p *Package) UpdatedAt() time.Time         { return p.updatedAt }

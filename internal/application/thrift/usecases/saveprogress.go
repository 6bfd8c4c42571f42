package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/db"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
	"github.com/thriftwise/thriftwise/internal/shared/utils"
)

// DetailsFragment is the details step of the multi-step package form.
type DetailsFragment struct {
	Name         string          `json:"name" validate:"required,max=255"`
	TotalAmount  decimal.Decimal `json:"total_amount" validate:"decimal_gt0"`
	DurationDays int             `json:"duration_days" validate:"gt=0"`
	SlotCount    int             `json:"slot_count" validate:"gt=0"`
	Visibility   string          `json:"visibility" validate:"omitempty,oneof=public private"`
	Status       string          `json:"status" validate:"omitempty,oneof=draft pending"`
}

// TermsFragment is the terms step. Nil fields are left untouched.
type TermsFragment struct {
	Text     *string
	Accepted *bool
}

// SaveProgressCommand upserts a package from whichever fragments are present. A zero
// PackageID creates the package, which then requires Details.
type SaveProgressCommand struct {
	Principal    party.Ref
	PackageID    uint
	Details      *DetailsFragment
	Terms        *TermsFragment
	Contributors *[]party.Ref
}

type SaveProgressResult struct {
	Package      *dto.PackageDTO
	IsNew        bool
	Contributors []*dto.ContributorDTO
	Rejected     []dto.RejectedRefDTO
}

// Partial reports whether some contributor references were rejected.
func (r *SaveProgressResult) Partial() bool {
	return len(r.Rejected) > 0
}

type SaveProgressUseCase struct {
	packages     thrift.PackageRepository
	admins       thrift.AdminRepository
	contributors thrift.ContributorRepository
	directory    directory.Directory
	txMgr        db.Transactor
	authority    packageAuthority
	logger       logger.Interface
}

func NewSaveProgressUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	contributors thrift.ContributorRepository,
	dir directory.Directory,
	txMgr db.Transactor,
	logger logger.Interface,
) *SaveProgressUseCase {
	return &SaveProgressUseCase{
		packages:     packages,
		admins:       admins,
		contributors: contributors,
		directory:    dir,
		txMgr:        txMgr,
		authority:    newPackageAuthority(packages, admins),
		logger:       logger,
	}
}

func (uc *SaveProgressUseCase) Execute(ctx context.Context, cmd SaveProgressCommand) (*SaveProgressResult, error) {
	uc.logger.Infow("executing save progress use case",
		"principal", cmd.Principal.String(),
		"package_id", cmd.PackageID,
		"has_details", cmd.Details != nil,
		"has_terms", cmd.Terms != nil,
		"has_contributors", cmd.Contributors != nil,
	)

	if cmd.Details != nil {
		if err := utils.ValidateStruct(cmd.Details); err != nil {
			return nil, err
		}
	}

	pkg, isNew, err := uc.resolvePackage(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if cmd.Terms != nil {
		if cmd.Terms.Text != nil {
			pkg.SetTerms(*cmd.Terms.Text)
		}
		if cmd.Terms.Accepted != nil {
			pkg.AcceptTerms(*cmd.Terms.Accepted)
		}
	}

	result := &SaveProgressResult{IsNew: isNew}

	var keep []party.Ref
	if cmd.Contributors != nil {
		// The terms gate applies to the state after this call's own terms fragment.
		if err := pkg.RequireTermsAccepted(); err != nil {
			return nil, err
		}
		keep, result.Rejected, err = screenParticipants(ctx, uc.directory, pkg, cmd.Principal, *cmd.Contributors)
		if err != nil {
			uc.logger.Errorw("failed to screen contributors", "error", err)
			return nil, err
		}
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if isNew {
			if err := createPackage(txCtx, uc.packages, uc.admins, pkg); err != nil {
				return err
			}
		} else {
			if cmd.Details != nil {
				if err := ensureUniqueName(txCtx, uc.packages, pkg.Creator(), pkg.Name(), pkg.ID()); err != nil {
					return err
				}
			}
			if err := uc.packages.Update(txCtx, pkg); err != nil {
				return err
			}
		}

		if cmd.Contributors == nil {
			return nil
		}
		removed, err := uc.contributors.DeleteExcept(txCtx, pkg.ID(), keep)
		if err != nil {
			return err
		}
		stored, err := admitAll(txCtx, uc.contributors, pkg, keep)
		if err != nil {
			return err
		}
		result.Contributors = dto.ToContributorDTOs(stored)
		uc.logger.Infow("contributor list replaced", "package_id", pkg.ID(), "kept", len(stored), "removed", removed)
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to save package progress", "package_id", cmd.PackageID, "error", err)
		return nil, err
	}

	result.Package = dto.ToPackageDTO(pkg)
	uc.logger.Infow("package progress saved",
		"package_id", pkg.ID(),
		"is_new", isNew,
		"rejected", len(result.Rejected),
	)
	return result, nil
}

func (uc *SaveProgressUseCase) resolvePackage(ctx context.Context, cmd SaveProgressCommand) (*thrift.Package, bool, error) {
	if cmd.PackageID == 0 {
		if cmd.Details == nil {
			return nil, false, errors.NewValidationError("package details are required to create a package")
		}
		pkg, err := thrift.NewPackage(cmd.Principal, cmd.Details.toDomain(), vo.PackageStatus(cmd.Details.Status))
		if err != nil {
			return nil, false, err
		}
		return pkg, true, nil
	}

	pkg, err := uc.authority.load(ctx, cmd.Principal, cmd.PackageID)
	if err != nil {
		return nil, false, err
	}
	if cmd.Details != nil {
		if err := pkg.UpdateDetails(cmd.Details.toDomain()); err != nil {
			return nil, false, err
		}
	}
	return pkg, false, nil
}

func (f *DetailsFragment) toDomain() thrift.Details {
	return thrift.Details{
		Name:         f.Name,
		TotalAmount:  f.TotalAmount,
		DurationDays: f.DurationDays,
		SlotCount:    f.SlotCount,
		Visibility:   vo.Visibility(f.Visibility),
	}
}

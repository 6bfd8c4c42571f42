package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/db"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type CreatePackageCommand struct {
	Principal    party.Ref
	Name         string
	TotalAmount  decimal.Decimal
	DurationDays int
	SlotCount    int
	Visibility   string
	Status       string
}

type CreatePackageUseCase struct {
	packages thrift.PackageRepository
	admins   thrift.AdminRepository
	txMgr    db.Transactor
	logger   logger.Interface
}

func NewCreatePackageUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	txMgr db.Transactor,
	logger logger.Interface,
) *CreatePackageUseCase {
	return &CreatePackageUseCase{
		packages: packages,
		admins:   admins,
		txMgr:    txMgr,
		logger:   logger,
	}
}

func (uc *CreatePackageUseCase) Execute(ctx context.Context, cmd CreatePackageCommand) (*dto.PackageDTO, error) {
	uc.logger.Infow("executing create package use case", "creator", cmd.Principal.String(), "name", cmd.Name)

	pkg, err := thrift.NewPackage(cmd.Principal, thrift.Details{
		Name:         cmd.Name,
		TotalAmount:  cmd.TotalAmount,
		DurationDays: cmd.DurationDays,
		SlotCount:    cmd.SlotCount,
		Visibility:   vo.Visibility(cmd.Visibility),
	}, vo.PackageStatus(cmd.Status))
	if err != nil {
		uc.logger.Errorw("invalid package", "error", err)
		return nil, err
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		return createPackage(txCtx, uc.packages, uc.admins, pkg)
	})
	if err != nil {
		uc.logger.Errorw("failed to create package", "name", cmd.Name, "error", err)
		return nil, err
	}

	uc.logger.Infow("package created successfully", "package_id", pkg.ID(), "sid", pkg.SID())
	return dto.ToPackageDTO(pkg), nil
}

// createPackage persists a new package. User creators become admins of their package;
// merchant creators own it through merchant_id and are not added to the admin association.
func createPackage(ctx context.Context, packages thrift.PackageRepository, admins thrift.AdminRepository, pkg *thrift.Package) error {
	if err := ensureUniqueName(ctx, packages, pkg.Creator(), pkg.Name(), 0); err != nil {
		return err
	}
	if err := packages.Create(ctx, pkg); err != nil {
		return err
	}
	if pkg.Creator().IsUser() {
		if err := admins.Add(ctx, pkg.ID(), pkg.Creator()); err != nil {
			return fmt.Errorf("failed to register creator as admin: %w", err)
		}
	}
	return nil
}

func ensureUniqueName(ctx context.Context, packages thrift.PackageRepository, creator party.Ref, name string, excludeID uint) error {
	exists, err := packages.ExistsByCreatorAndName(ctx, creator, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check package name: %w", err)
	}
	if exists {
		return errors.NewConflictError("a package with this name already exists", name).
			WithReason(errors.ReasonDuplicateName)
	}
	return nil
}

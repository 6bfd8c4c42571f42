package usecases

import (
	"context"
	"fmt"

	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/db"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type GenerateSlotsCommand struct {
	Principal party.Ref
	PackageID uint
}

type GenerateSlotsUseCase struct {
	contributors thrift.ContributorRepository
	slots        thrift.SlotRepository
	txMgr        db.Transactor
	authority    packageAuthority
	metrics      AdmissionMetrics
	logger       logger.Interface
}

func NewGenerateSlotsUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	contributors thrift.ContributorRepository,
	slots thrift.SlotRepository,
	txMgr db.Transactor,
	metrics AdmissionMetrics,
	logger logger.Interface,
) *GenerateSlotsUseCase {
	return &GenerateSlotsUseCase{
		contributors: contributors,
		slots:        slots,
		txMgr:        txMgr,
		authority:    newPackageAuthority(packages, admins),
		metrics:      metricsOrNoop(metrics),
		logger:       logger,
	}
}

// Execute discards the package's slots and allocates fresh ones to confirmed contributors
// in admission order. Slot history does not survive regeneration.
func (uc *GenerateSlotsUseCase) Execute(ctx context.Context, cmd GenerateSlotsCommand) ([]*dto.SlotDTO, error) {
	uc.logger.Infow("executing generate slots use case", "package_id", cmd.PackageID)

	pkg, err := uc.authority.load(ctx, cmd.Principal, cmd.PackageID)
	if err != nil {
		return nil, err
	}

	var slots []*thrift.Slot
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		confirmed, err := uc.contributors.ListConfirmed(txCtx, pkg.ID())
		if err != nil {
			return fmt.Errorf("failed to list confirmed contributors: %w", err)
		}
		slots, err = thrift.AllocateSlots(pkg, confirmed)
		if err != nil {
			return err
		}
		return uc.slots.ReplaceAll(txCtx, pkg.ID(), slots)
	})
	if err != nil {
		uc.logger.Errorw("failed to generate slots", "package_id", pkg.ID(), "error", err)
		return nil, err
	}

	uc.metrics.RecordSlotsGenerated(len(slots))
	uc.logger.Infow("slots generated", "package_id", pkg.ID(), "count", len(slots), "slot_count", pkg.SlotCount())
	return dto.ToSlotDTOs(slots), nil
}

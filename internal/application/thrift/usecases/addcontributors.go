package usecases

import (
	"context"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/db"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type AddContributorsCommand struct {
	Principal    party.Ref
	PackageID    uint
	Participants []party.Ref
}

// AddContributorsResult lists the admitted contributors and the references that were
// skipped. The valid subset is committed even when some references are rejected.
type AddContributorsResult struct {
	Contributors []*dto.ContributorDTO
	Rejected     []dto.RejectedRefDTO
}

func (r *AddContributorsResult) Partial() bool {
	return len(r.Rejected) > 0
}

type AddContributorsUseCase struct {
	contributors thrift.ContributorRepository
	directory    directory.Directory
	txMgr        db.Transactor
	authority    packageAuthority
	metrics      AdmissionMetrics
	logger       logger.Interface
}

func NewAddContributorsUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	contributors thrift.ContributorRepository,
	dir directory.Directory,
	txMgr db.Transactor,
	metrics AdmissionMetrics,
	logger logger.Interface,
) *AddContributorsUseCase {
	return &AddContributorsUseCase{
		contributors: contributors,
		directory:    dir,
		txMgr:        txMgr,
		authority:    newPackageAuthority(packages, admins),
		metrics:      metricsOrNoop(metrics),
		logger:       logger,
	}
}

func (uc *AddContributorsUseCase) Execute(ctx context.Context, cmd AddContributorsCommand) (*AddContributorsResult, error) {
	uc.logger.Infow("executing add contributors use case",
		"principal", cmd.Principal.String(),
		"package_id", cmd.PackageID,
		"count", len(cmd.Participants),
	)

	if len(cmd.Participants) == 0 {
		return nil, errors.NewValidationError("at least one contributor is required")
	}

	pkg, err := uc.authority.load(ctx, cmd.Principal, cmd.PackageID)
	if err != nil {
		return nil, err
	}
	if err := pkg.RequireTermsAccepted(); err != nil {
		uc.metrics.RecordAdmission(AdmissionPathDirect, "terms_not_accepted")
		return nil, err
	}

	admitted, rejected, err := screenParticipants(ctx, uc.directory, pkg, cmd.Principal, cmd.Participants)
	if err != nil {
		uc.logger.Errorw("failed to screen contributors", "package_id", pkg.ID(), "error", err)
		return nil, err
	}

	var stored []*thrift.Contributor
	if len(admitted) > 0 {
		err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			var txErr error
			stored, txErr = admitAll(txCtx, uc.contributors, pkg, admitted)
			return txErr
		})
		if err != nil {
			uc.logger.Errorw("failed to add contributors", "package_id", pkg.ID(), "error", err)
			return nil, err
		}
	}

	for range stored {
		uc.metrics.RecordAdmission(AdmissionPathDirect, "admitted")
	}
	for range rejected {
		uc.metrics.RecordAdmission(AdmissionPathDirect, "rejected")
	}

	uc.logger.Infow("contributors added",
		"package_id", pkg.ID(),
		"admitted", len(stored),
		"rejected", len(rejected),
	)
	return &AddContributorsResult{
		Contributors: dto.ToContributorDTOs(stored),
		Rejected:     rejected,
	}, nil
}

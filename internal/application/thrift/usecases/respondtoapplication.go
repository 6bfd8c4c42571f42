package usecases

import (
	"context"
	"fmt"

	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/events"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/db"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type RespondToApplicationCommand struct {
	Principal     party.Ref
	ApplicationID uint
	Accept        bool
}

type RespondToApplicationUseCase struct {
	applications thrift.ApplicationRepository
	contributors thrift.ContributorRepository
	txMgr        db.Transactor
	authority    packageAuthority
	publisher    events.EventPublisher
	metrics      AdmissionMetrics
	logger       logger.Interface
}

func NewRespondToApplicationUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	applications thrift.ApplicationRepository,
	contributors thrift.ContributorRepository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	metrics AdmissionMetrics,
	logger logger.Interface,
) *RespondToApplicationUseCase {
	return &RespondToApplicationUseCase{
		applications: applications,
		contributors: contributors,
		txMgr:        txMgr,
		authority:    newPackageAuthority(packages, admins),
		publisher:    publisher,
		metrics:      metricsOrNoop(metrics),
		logger:       logger,
	}
}

// Execute resolves a pending application. Accepting find-or-creates the applicant's
// contributor row without confirming it. Rejecting deletes any contributor row the
// applicant has in the package.
func (uc *RespondToApplicationUseCase) Execute(ctx context.Context, cmd RespondToApplicationCommand) (*dto.ApplicationDTO, error) {
	uc.logger.Infow("executing respond to application use case", "application_id", cmd.ApplicationID, "accept", cmd.Accept)

	app, err := uc.applications.GetByID(ctx, cmd.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, errors.NewNotFoundError("application not found")
	}

	pkg, err := uc.authority.load(ctx, cmd.Principal, app.PackageID())
	if err != nil {
		return nil, err
	}

	if err := app.Respond(cmd.Accept); err != nil {
		return nil, err
	}
	if cmd.Accept {
		if err := pkg.RequireTermsAccepted(); err != nil {
			uc.metrics.RecordAdmission(AdmissionPathApplication, "terms_not_accepted")
			return nil, err
		}
	}

	applicant := party.User(app.UserID())
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		saved, err := uc.applications.SaveResponse(txCtx, app)
		if err != nil {
			return err
		}
		if !saved {
			return errors.NewStateError(errors.ReasonAlreadyResponded, "application has already been responded to")
		}
		if cmd.Accept {
			_, err = admitOne(txCtx, uc.contributors, pkg, applicant)
			return err
		}
		return uc.contributors.DeleteByParticipant(txCtx, pkg.ID(), applicant)
	})
	if err != nil {
		uc.logger.Errorw("failed to respond to application", "application_id", app.ID(), "error", err)
		return nil, err
	}

	uc.metrics.RecordAdmission(AdmissionPathApplication, app.Status().String())
	publish(uc.publisher, uc.logger, thrift.NewApplicationResolvedEvent(pkg, app))

	uc.logger.Infow("application resolved", "application_id", app.ID(), "status", app.Status())
	return dto.ToApplicationDTO(app), nil
}

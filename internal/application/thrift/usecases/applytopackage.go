package usecases

import (
	"context"
	"fmt"

	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/events"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	vo "github.com/thriftwise/thriftwise/internal/domain/thrift/valueobjects"
	"github.com/thriftwise/thriftwise/internal/shared/db"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type ApplyToPackageCommand struct {
	Principal party.Ref
	PackageID uint
}

type ApplyToPackageUseCase struct {
	packages     thrift.PackageRepository
	admins       thrift.AdminRepository
	contributors thrift.ContributorRepository
	invites      thrift.InviteRepository
	applications thrift.ApplicationRepository
	authority    packageAuthority
	txMgr        db.Transactor
	publisher    events.EventPublisher
	metrics      AdmissionMetrics
	logger       logger.Interface
}

func NewApplyToPackageUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	contributors thrift.ContributorRepository,
	invites thrift.InviteRepository,
	applications thrift.ApplicationRepository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	metrics AdmissionMetrics,
	logger logger.Interface,
) *ApplyToPackageUseCase {
	return &ApplyToPackageUseCase{
		packages:     packages,
		admins:       admins,
		contributors: contributors,
		invites:      invites,
		applications: applications,
		authority:    newPackageAuthority(packages, admins),
		txMgr:        txMgr,
		publisher:    publisher,
		metrics:      metricsOrNoop(metrics),
		logger:       logger,
	}
}

func (uc *ApplyToPackageUseCase) Execute(ctx context.Context, cmd ApplyToPackageCommand) (*dto.ApplicationDTO, error) {
	uc.logger.Infow("executing apply to package use case", "principal", cmd.Principal.String(), "package_id", cmd.PackageID)

	if !cmd.Principal.IsUser() {
		return nil, errors.NewForbiddenError("only users may apply to a package")
	}

	pkg, err := uc.authority.find(ctx, cmd.PackageID)
	if err != nil {
		return nil, err
	}

	app, err := thrift.NewApplication(pkg, cmd.Principal.ID)
	if err != nil {
		return nil, err
	}

	// Concurrent applications by the same user serialize on the package row.
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.packages.LockForUpdate(txCtx, pkg.ID()); err != nil {
			return err
		}
		if err := uc.ensureNoActiveMembership(txCtx, pkg.ID(), cmd.Principal.ID); err != nil {
			uc.metrics.RecordAdmission(AdmissionPathApplication, "duplicate")
			return err
		}
		return uc.applications.Create(txCtx, app)
	})
	if err != nil {
		if !errors.HasReason(err, errors.ReasonDuplicateMembership) {
			uc.logger.Errorw("failed to create application", "package_id", pkg.ID(), "error", err)
		}
		return nil, err
	}

	admins, err := uc.admins.List(ctx, pkg.ID())
	if err != nil {
		// Notification only; the application stands.
		uc.logger.Warnw("failed to list package admins for notification", "package_id", pkg.ID(), "error", err)
	}
	publish(uc.publisher, uc.logger, thrift.NewApplicationCreatedEvent(pkg, app, admins))

	uc.metrics.RecordAdmission(AdmissionPathApplication, "applied")
	uc.logger.Infow("application created", "application_id", app.ID(), "package_id", pkg.ID(), "user_id", app.UserID())
	return dto.ToApplicationDTO(app), nil
}

func (uc *ApplyToPackageUseCase) ensureNoActiveMembership(ctx context.Context, packageID, userID uint) error {
	duplicate := func(what string) error {
		return errors.NewConflictError("user already "+what+" for this package").
			WithReason(errors.ReasonDuplicateMembership)
	}

	existing, err := uc.contributors.GetByParticipant(ctx, packageID, party.User(userID))
	if err != nil {
		return fmt.Errorf("failed to check contributor: %w", err)
	}
	if existing != nil && existing.Status() != vo.ContributorStatusRejected {
		return duplicate("is a contributor")
	}

	invited, err := uc.invites.HasPending(ctx, packageID, userID)
	if err != nil {
		return fmt.Errorf("failed to check invites: %w", err)
	}
	if invited {
		return duplicate("has a pending invite")
	}

	applied, err := uc.applications.HasPending(ctx, packageID, userID)
	if err != nil {
		return fmt.Errorf("failed to check applications: %w", err)
	}
	if applied {
		return duplicate("has a pending application")
	}
	return nil
}

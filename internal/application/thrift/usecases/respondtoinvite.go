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

type RespondToInviteCommand struct {
	Principal party.Ref
	InviteID  uint
	Accept    bool
}

type RespondToInviteUseCase struct {
	invites      thrift.InviteRepository
	contributors thrift.ContributorRepository
	txMgr        db.Transactor
	authority    packageAuthority
	publisher    events.EventPublisher
	metrics      AdmissionMetrics
	logger       logger.Interface
}

func NewRespondToInviteUseCase(
	packages thrift.PackageRepository,
	invites thrift.InviteRepository,
	contributors thrift.ContributorRepository,
	txMgr db.Transactor,
	publisher events.EventPublisher,
	metrics AdmissionMetrics,
	logger logger.Interface,
) *RespondToInviteUseCase {
	return &RespondToInviteUseCase{
		invites:      invites,
		contributors: contributors,
		txMgr:        txMgr,
		authority:    newPackageAuthority(packages, nil),
		publisher:    publisher,
		metrics:      metricsOrNoop(metrics),
		logger:       logger,
	}
}

func (uc *RespondToInviteUseCase) Execute(ctx context.Context, cmd RespondToInviteCommand) (*dto.InviteDTO, error) {
	uc.logger.Infow("executing respond to invite use case", "invite_id", cmd.InviteID, "accept", cmd.Accept)

	inv, err := uc.invites.GetByID(ctx, cmd.InviteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}
	if inv == nil {
		return nil, errors.NewNotFoundError("invite not found")
	}

	pkg, err := uc.authority.find(ctx, inv.PackageID())
	if err != nil {
		return nil, err
	}

	if err := inv.Respond(cmd.Principal, cmd.Accept); err != nil {
		return nil, err
	}
	if cmd.Accept {
		if err := pkg.RequireTermsAccepted(); err != nil {
			uc.metrics.RecordAdmission(AdmissionPathInvite, "terms_not_accepted")
			return nil, err
		}
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		saved, err := uc.invites.SaveResponse(txCtx, inv)
		if err != nil {
			return err
		}
		if !saved {
			return errors.NewStateError(errors.ReasonAlreadyResponded, "invite has already been responded to")
		}
		if cmd.Accept {
			_, err = admitOne(txCtx, uc.contributors, pkg, party.User(inv.InvitedUserID()))
			return err
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to respond to invite", "invite_id", inv.ID(), "error", err)
		return nil, err
	}

	uc.metrics.RecordAdmission(AdmissionPathInvite, inv.Status().String())
	publish(uc.publisher, uc.logger, thrift.NewInviteRespondedEvent(pkg, inv))

	uc.logger.Infow("invite responded", "invite_id", inv.ID(), "status", inv.Status())
	return dto.ToInviteDTO(inv), nil
}

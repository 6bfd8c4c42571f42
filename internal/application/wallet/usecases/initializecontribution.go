package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/application/payment/paymentgateway"
	"github.com/thriftwise/thriftwise/internal/application/wallet/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
)

type InitializeContributionCommand struct {
	Principal party.Ref
	PackageID uint
	Amount    decimal.Decimal
	// OnBehalfOf names a confirmed contact contributor a merchant is paying for.
	OnBehalfOf *party.Ref
	Metadata   map[string]any
}

type InitializeContributionUseCase struct {
	packages     thrift.PackageRepository
	admins       thrift.AdminRepository
	contributors thrift.ContributorRepository
	directory    directory.Directory
	gateway      paymentgateway.Gateway
	currency     string
	callbackURL  string
	logger       logger.Interface
}

func NewInitializeContributionUseCase(
	packages thrift.PackageRepository,
	admins thrift.AdminRepository,
	contributors thrift.ContributorRepository,
	dir directory.Directory,
	gateway paymentgateway.Gateway,
	currency, callbackURL string,
	logger logger.Interface,
) *InitializeContributionUseCase {
	return &InitializeContributionUseCase{
		packages:     packages,
		admins:       admins,
		contributors: contributors,
		directory:    dir,
		gateway:      gateway,
		currency:     currency,
		callbackURL:  callbackURL,
		logger:       logger,
	}
}

func (uc *InitializeContributionUseCase) Execute(ctx context.Context, cmd InitializeContributionCommand) (*dto.PaymentInitDTO, error) {
	uc.logger.Infow("executing initialize contribution use case",
		"principal", cmd.Principal.String(),
		"package_id", cmd.PackageID,
		"amount", cmd.Amount.String(),
	)

	if !cmd.Amount.IsPositive() {
		return nil, errors.NewValidationError("amount must be positive")
	}
	if !paymentgateway.FitsMinorUnits(cmd.Amount) {
		return nil, errors.NewValidationError("amount must have at most 2 decimal places")
	}

	pkg, err := uc.packages.GetByID(ctx, cmd.PackageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, errors.NewNotFoundError("thrift package not found")
	}

	payer, err := uc.resolvePayer(ctx, pkg, cmd)
	if err != nil {
		return nil, err
	}
	if payer.Email == "" {
		return nil, errors.NewValidationError("payer has no email address")
	}

	metadata := make(map[string]any, len(cmd.Metadata)+4)
	for k, v := range cmd.Metadata {
		metadata[k] = v
	}
	metadata[MetaPackageID] = pkg.ID()
	metadata[MetaContributorType] = payer.Ref.Kind.String()
	metadata[MetaContributorID] = payer.Ref.ID
	metadata[MetaAmount] = cmd.Amount.String()

	reference := uuid.NewString()
	resp, err := uc.gateway.InitializeTransaction(ctx, paymentgateway.InitializeRequest{
		Email:       payer.Email,
		Amount:      paymentgateway.ToMinorUnits(cmd.Amount),
		Currency:    uc.currency,
		Reference:   reference,
		CallbackURL: uc.callbackURL,
		Metadata:    metadata,
	})
	if err != nil {
		uc.logger.Errorw("payment gateway initialize failed", "package_id", pkg.ID(), "reference", reference, "error", err)
		return nil, gatewayError(errors.ReasonGatewayUnavailable, "failed to initialize payment", err)
	}

	if resp.Reference != "" {
		reference = resp.Reference
	}
	uc.logger.Infow("contribution payment initialized", "package_id", pkg.ID(), "reference", reference, "payer", payer.Ref.String())
	return &dto.PaymentInitDTO{
		Reference:        reference,
		AuthorizationURL: resp.AuthorizationURL,
		AccessCode:       resp.AccessCode,
		Gateway:          resp.Raw,
	}, nil
}

// resolvePayer allows package authority holders to pay as themselves, and merchants to
// pay for one of their own contacts who is a confirmed contributor of the package.
func (uc *InitializeContributionUseCase) resolvePayer(ctx context.Context, pkg *thrift.Package, cmd InitializeContributionCommand) (*directory.Contact, error) {
	forbidden := errors.NewForbiddenError("not allowed to pay into this package")

	if cmd.OnBehalfOf != nil && *cmd.OnBehalfOf != cmd.Principal {
		ref := *cmd.OnBehalfOf
		if !ref.IsContact() || !cmd.Principal.IsMerchant() {
			return nil, forbidden
		}
		contact, err := uc.directory.ResolveContact(ctx, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve contact: %w", err)
		}
		if contact == nil || contact.MerchantID != cmd.Principal.ID {
			return nil, forbidden
		}
		c, err := uc.contributors.GetByParticipant(ctx, pkg.ID(), ref)
		if err != nil {
			return nil, fmt.Errorf("failed to check contributor: %w", err)
		}
		if c == nil || !c.IsConfirmed() {
			return nil, forbidden
		}
		return &directory.Contact{Ref: ref, Email: contact.Email, Name: contact.Name}, nil
	}

	ok, err := thrift.HasAuthority(ctx, uc.admins, pkg, cmd.Principal)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, forbidden
	}
	payer, err := directory.Resolve(ctx, uc.directory, cmd.Principal)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve payer: %w", err)
	}
	if payer == nil {
		return nil, errors.NewNotFoundError("payer not found")
	}
	return payer, nil
}

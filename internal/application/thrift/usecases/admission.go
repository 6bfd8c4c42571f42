package usecases

import (
	"context"
	"fmt"

	"github.com/thriftwise/thriftwise/internal/application/directory"
	"github.com/thriftwise/thriftwise/internal/application/thrift/dto"
	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

// Reasons attached to references that could not be admitted.
const (
	rejectUnsupportedKind = "unsupported_kind"
	rejectNotAllowed      = "not_allowed"
	rejectForeignContact  = "foreign_contact"
)

// screenParticipants splits refs into admissible participants and rejected references.
// Merchants may add users and their own contacts; users may add users only. Duplicate
// references collapse to one.
func screenParticipants(
	ctx context.Context,
	dir directory.Directory,
	pkg *thrift.Package,
	principal party.Ref,
	refs []party.Ref,
) ([]party.Ref, []dto.RejectedRefDTO, error) {
	admitted := make([]party.Ref, 0, len(refs))
	var rejected []dto.RejectedRefDTO
	seen := make(map[party.Ref]struct{}, len(refs))

	reject := func(ref party.Ref, reason string) {
		rejected = append(rejected, dto.RejectedRefDTO{Reference: ref.String(), Reason: reason})
	}

	for _, ref := range refs {
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}

		switch {
		case ref.IsUser():
			user, err := dir.ResolveUser(ctx, ref.ID)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to resolve user %d: %w", ref.ID, err)
			}
			if user == nil {
				reject(ref, errors.ReasonUnknownContributor)
				continue
			}
		case ref.IsContact():
			if !principal.IsMerchant() || pkg.MerchantID() == nil {
				reject(ref, rejectNotAllowed)
				continue
			}
			contact, err := dir.ResolveContact(ctx, ref.ID)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to resolve contact %d: %w", ref.ID, err)
			}
			if contact == nil {
				reject(ref, errors.ReasonUnknownContributor)
				continue
			}
			if contact.MerchantID != *pkg.MerchantID() {
				reject(ref, rejectForeignContact)
				continue
			}
		default:
			reject(ref, rejectUnsupportedKind)
			continue
		}
		admitted = append(admitted, ref)
	}
	return admitted, rejected, nil
}

// admitAll find-or-creates a pending contributor for each participant.
func admitAll(ctx context.Context, contributors thrift.ContributorRepository, pkg *thrift.Package, participants []party.Ref) ([]*thrift.Contributor, error) {
	stored := make([]*thrift.Contributor, 0, len(participants))
	for _, ref := range participants {
		c, err := admitOne(ctx, contributors, pkg, ref)
		if err != nil {
			return nil, err
		}
		stored = append(stored, c)
	}
	return stored, nil
}

func admitOne(ctx context.Context, contributors thrift.ContributorRepository, pkg *thrift.Package, ref party.Ref) (*thrift.Contributor, error) {
	c, err := thrift.NewContributor(pkg.ID(), ref)
	if err != nil {
		return nil, err
	}
	existing, _, err := contributors.FindOrCreate(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to admit %s: %w", ref, err)
	}
	return existing, nil
}

package thrift

import (
	"context"
	"fmt"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
)

// HasAuthority reports whether principal may manage pkg: it created the package or sits
// in the package's admin association for its kind.
func HasAuthority(ctx context.Context, admins AdminRepository, pkg *Package, principal party.Ref) (bool, error) {
	if !principal.IsPrincipal() {
		return false, nil
	}
	if pkg.IsOwnedBy(principal) {
		return true, nil
	}
	ok, err := admins.IsAdmin(ctx, pkg.ID(), principal)
	if err != nil {
		return false, fmt.Errorf("failed to check package admin: %w", err)
	}
	return ok, nil
}

package usecases

import (
	"context"
	"fmt"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/domain/thrift"
	"github.com/thriftwise/thriftwise/internal/shared/errors"
)

// packageAuthority answers whether a principal may manage a package: its creator or a
// member of the matching admin association.
type packageAuthority struct {
	packages thrift.PackageRepository
	admins   thrift.AdminRepository
}

func newPackageAuthority(packages thrift.PackageRepository, admins thrift.AdminRepository) packageAuthority {
	return packageAuthority{packages: packages, admins: admins}
}

func (a packageAuthority) holds(ctx context.Context, pkg *thrift.Package, principal party.Ref) (bool, error) {
	return thrift.HasAuthority(ctx, a.admins, pkg, principal)
}

// find loads a package without any authority check.
func (a packageAuthority) find(ctx context.Context, packageID uint) (*thrift.Package, error) {
	pkg, err := a.packages.GetByID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if pkg == nil {
		return nil, errors.NewNotFoundError("thrift package not found")
	}
	return pkg, nil
}

// load returns the package when principal holds authority over it.
func (a packageAuthority) load(ctx context.Context, principal party.Ref, packageID uint) (*thrift.Package, error) {
	pkg, err := a.find(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if err := a.require(ctx, pkg, principal); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (a packageAuthority) require(ctx context.Context, pkg *thrift.Package, principal party.Ref) error {
	ok, err := a.holds(ctx, pkg, principal)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewForbiddenError("only the package owner or an admin may perform this action")
	}
	return nil
}

// Package directory is the read-only port to identity and contact data owned by other
// services. The core never authenticates; it only resolves already-known principals.
package directory

import (
	"context"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
)

type UserInfo struct {
	ID       uint
	PublicID string
	Email    string
	Name     string
}

type MerchantInfo struct {
	ID           uint
	PublicID     string
	Email        string
	BusinessName string
}

// ContactInfo is a merchant address-book entry that may become a contributor.
type ContactInfo struct {
	ID         uint
	MerchantID uint
	Email      string
	Name       string
}

// Directory resolvers return (nil, nil) when the id is unknown.
type Directory interface {
	ResolveUser(ctx context.Context, id uint) (*UserInfo, error)
	ResolveMerchant(ctx context.Context, id uint) (*MerchantInfo, error)
	ResolveContact(ctx context.Context, id uint) (*ContactInfo, error)
}

// Contact is the subset every party kind shares.
type Contact struct {
	Ref   party.Ref
	Email string
	Name  string
}

// Resolve looks up any party kind. It returns (nil, nil) when the party does not exist.
func Resolve(ctx context.Context, dir Directory, ref party.Ref) (*Contact, error) {
	switch ref.Kind {
	case party.KindUser:
		u, err := dir.ResolveUser(ctx, ref.ID)
		if err != nil || u == nil {
			return nil, err
		}
		return &Contact{Ref: ref, Email: u.Email, Name: u.Name}, nil
	case party.KindMerchant:
		m, err := dir.ResolveMerchant(ctx, ref.ID)
		if err != nil || m == nil {
			return nil, err
		}
		return &Contact{Ref: ref, Email: m.Email, Name: m.BusinessName}, nil
	case party.KindContact:
		c, err := dir.ResolveContact(ctx, ref.ID)
		if err != nil || c == nil {
			return nil, err
		}
		return &Contact{Ref: ref, Email: c.Email, Name: c.Name}, nil
	}
	return nil, nil
}

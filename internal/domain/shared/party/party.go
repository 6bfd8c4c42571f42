// Package party defines the tagged reference used wherever a row belongs to exactly one of
// several principal kinds: package creators, contributors, wallet owners and callers.
package party

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind string

const (
	KindUser     Kind = "user"
	KindMerchant Kind = "merchant"
	KindContact  Kind = "contact"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindUser, KindMerchant, KindContact:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// Ref identifies one user, merchant or contact. The zero value refers to nobody.
type Ref struct {
	Kind Kind
	ID   uint
}

func User(id uint) Ref     { return Ref{Kind: KindUser, ID: id} }
func Merchant(id uint) Ref { return Ref{Kind: KindMerchant, ID: id} }
func Contact(id uint) Ref  { return Ref{Kind: KindContact, ID: id} }

// New validates kind and id.
func New(kind string, id uint) (Ref, error) {
	k := Kind(strings.ToLower(kind))
	if !k.IsValid() {
		return Ref{}, fmt.Errorf("invalid party kind %q", kind)
	}
	if id == 0 {
		return Ref{}, fmt.Errorf("%s id is required", k)
	}
	return Ref{Kind: k, ID: id}, nil
}

// Parse reads the "kind:id" form produced by String.
func Parse(s string) (Ref, error) {
	kind, rawID, ok := strings.Cut(s, ":")
	if !ok {
		return Ref{}, fmt.Errorf("invalid party reference %q", s)
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		return Ref{}, fmt.Errorf("invalid party id in %q: %w", s, err)
	}
	return New(kind, uint(id))
}

func (r Ref) IsZero() bool {
	return r.ID == 0 && r.Kind == ""
}

func (r Ref) IsUser() bool     { return r.Kind == KindUser }
func (r Ref) IsMerchant() bool { return r.Kind == KindMerchant }
func (r Ref) IsContact() bool  { return r.Kind == KindContact }

// IsPrincipal reports whether r can act as an authenticated caller. Contacts are address
// book entries and never authenticate.
func (r Ref) IsPrincipal() bool {
	return (r.Kind == KindUser || r.Kind == KindMerchant) && r.ID != 0
}

func (r Ref) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

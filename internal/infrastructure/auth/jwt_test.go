package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/shared/config"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "thriftwise", AccessExpMinutes: 5})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestService()

	for _, principal := range []party.Ref{party.User(7), party.Merchant(1)} {
		token, err := svc.Generate(principal)
		require.NoError(t, err)

		got, err := svc.VerifyPrincipal(token)
		require.NoError(t, err)
		assert.Equal(t, principal, got)
	}
}

func TestJWTService_ContactsCannotAuthenticate(t *testing.T) {
	svc := newTestService()

	_, err := svc.Generate(party.Contact(11))
	assert.Error(t, err)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		PrincipalType: "contact",
		PrincipalID:   11,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "thriftwise",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	token, err := forged.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyPrincipal(token)
	assert.Error(t, err)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := newTestService()
	valid, err := svc.Generate(party.User(7))
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "other-secret", Issuer: "thriftwise"})
	_, err = other.Verify(valid)
	assert.Error(t, err, "wrong secret")

	foreign := NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "someone-else"})
	_, err = foreign.Verify(valid)
	assert.Error(t, err, "wrong issuer")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		PrincipalType: "user",
		PrincipalID:   7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "thriftwise",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	token, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(token)
	assert.Error(t, err, "expired")

	_, err = svc.Verify("not-a-token")
	assert.Error(t, err)
}

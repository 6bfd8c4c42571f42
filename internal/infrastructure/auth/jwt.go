package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/shared/biztime"
	"github.com/thriftwise/thriftwise/internal/shared/config"
)

// Claims identify the calling principal. Tokens are issued by the identity service; this
// service only verifies them, except in development tooling and tests.
type Claims struct {
	PrincipalType string `json:"principal_type"`
	PrincipalID   uint   `json:"principal_id"`
	jwt.RegisteredClaims
}

// Principal returns the party the token was issued for. Contacts never authenticate.
func (c *Claims) Principal() (party.Ref, error) {
	ref, err := party.New(c.PrincipalType, c.PrincipalID)
	if err != nil {
		return party.Ref{}, err
	}
	if !ref.IsPrincipal() {
		return party.Ref{}, fmt.Errorf("%s cannot authenticate", ref.Kind)
	}
	return ref, nil
}

type JWTService struct {
	secret           []byte
	issuer           string
	accessExpMinutes int
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	exp := cfg.AccessExpMinutes
	if exp <= 0 {
		exp = 60
	}
	return &JWTService{
		secret:           []byte(cfg.Secret),
		issuer:           cfg.Issuer,
		accessExpMinutes: exp,
	}
}

// Generate signs an access token for principal.
func (s *JWTService) Generate(principal party.Ref) (string, error) {
	if !principal.IsPrincipal() {
		return "", fmt.Errorf("%s cannot authenticate", principal)
	}

	now := biztime.NowUTC()
	claims := &Claims{
		PrincipalType: principal.Kind.String(),
		PrincipalID:   principal.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   principal.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.accessExpMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// VerifyPrincipal verifies tokenString and returns the principal it names.
func (s *JWTService) VerifyPrincipal(tokenString string) (party.Ref, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return party.Ref{}, err
	}
	return claims.Principal()
}

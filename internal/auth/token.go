package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/doylio/eros-server/internal/shared"
)

// Claims is the signed claim set carried by an issued token.
type Claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// TokenService issues and verifies HMAC-signed bearer tokens. Tokens carry no
// expiry claim; they stay valid until revoked on the owning account.
type TokenService struct {
	secret []byte
}

// NewTokenService constructs a TokenService around the process-wide signing
// secret. The secret is immutable for the life of the process.
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret}
}

// Issue signs a token binding the account identifier and scope.
func (s *TokenService) Issue(accountID uuid.UUID, scope string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: accountID.String()},
		Scope:            scope,
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and structure of a token and returns the
// account identifier and scope it binds. Only HS256 is accepted. Verify does
// not consult the store, so a revoked token still verifies here; revocation
// is checked against the account's token list.
func (s *TokenService) Verify(tokenString string) (uuid.UUID, string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, "", shared.ErrInvalidToken
	}
	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", shared.ErrInvalidToken
	}
	return accountID, claims.Scope, nil
}

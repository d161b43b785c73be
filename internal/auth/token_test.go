package auth_test

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/doylio/eros-server/internal/auth"
	"github.com/doylio/eros-server/internal/shared"
	_ "github.com/doylio/eros-server/testing"
)

func TestTokenIssueVerifyRoundtrip(t *testing.T) {
	svc := auth.NewTokenService([]byte("secret-one"))
	accountID := uuid.New()

	token, err := svc.Issue(accountID, auth.ScopeAuth)
	require.NoError(t, err)

	gotID, gotScope, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, accountID, gotID)
	require.Equal(t, auth.ScopeAuth, gotScope)
}

func TestTokenVerifyTamperedSignature(t *testing.T) {
	svc := auth.NewTokenService([]byte("secret-one"))

	token, err := svc.Issue(uuid.New(), auth.ScopeAuth)
	require.NoError(t, err)

	// Flip one character in the middle of the signature segment.
	parts := strings.SplitN(token, ".", 3)
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[10] == 'A' {
		sig[10] = 'B'
	} else {
		sig[10] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, _, err = svc.Verify(tampered)
	require.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestTokenVerifyWrongSecret(t *testing.T) {
	issuer := auth.NewTokenService([]byte("secret-one"))
	verifier := auth.NewTokenService([]byte("secret-two"))

	token, err := issuer.Issue(uuid.New(), auth.ScopeAuth)
	require.NoError(t, err)

	_, _, err = verifier.Verify(token)
	require.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestTokenVerifyMalformed(t *testing.T) {
	svc := auth.NewTokenService([]byte("secret-one"))

	for _, input := range []string{"", "garbage", "a.b.c", "x.y"} {
		_, _, err := svc.Verify(input)
		require.ErrorIs(t, err, shared.ErrInvalidToken, "input %q", input)
	}
}

func TestTokenVerifyRejectsForeignAlgorithm(t *testing.T) {
	secret := []byte("secret-one")
	svc := auth.NewTokenService(secret)

	// Same secret, but signed with HS384: must be rejected by the
	// algorithm allow-list.
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.RegisteredClaims{Subject: uuid.NewString()})
	signed, err := foreign.SignedString(secret)
	require.NoError(t, err)

	_, _, err = svc.Verify(signed)
	require.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestTokenCarriesNoExpiry(t *testing.T) {
	svc := auth.NewTokenService([]byte("secret-one"))

	token, err := svc.Issue(uuid.New(), auth.ScopeAuth)
	require.NoError(t, err)

	// Tokens stay valid until revoked on the account; the claim set must
	// not include exp.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	claims := &auth.Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	require.Nil(t, claims.ExpiresAt)
}

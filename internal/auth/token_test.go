package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstsync/internal/auth"
	"gstsync/internal/config"
	"gstsync/internal/domain"
)

func newVerifier() *auth.TokenVerifier {
	return auth.NewTokenVerifier(&config.JWTConfig{Secret: "test-secret", Issuer: "gstsync"})
}

func TestIssueAndVerify(t *testing.T) {
	v := newVerifier()
	token, err := v.Issue("demo.myshop.com", time.Hour)
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "demo.myshop.com", claims.Shop)
	assert.Equal(t, "gstsync", claims.Issuer)
}

func TestVerify_Expired(t *testing.T) {
	v := newVerifier()
	token, err := v.Issue("demo.myshop.com", -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_WrongSecret(t *testing.T) {
	other := auth.NewTokenVerifier(&config.JWTConfig{Secret: "other", Issuer: "gstsync"})
	token, err := other.Issue("demo.myshop.com", time.Hour)
	require.NoError(t, err)

	_, err = newVerifier().Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_WrongIssuer(t *testing.T) {
	other := auth.NewTokenVerifier(&config.JWTConfig{Secret: "test-secret", Issuer: "someone-else"})
	token, err := other.Issue("demo.myshop.com", time.Hour)
	require.NoError(t, err)

	_, err = newVerifier().Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	claims := &auth.ShopClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "gstsync",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Audience:  jwt.ClaimStrings{"reports"},
		},
		Shop: "demo.myshop.com",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newVerifier().Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerify_MissingShop(t *testing.T) {
	claims := &auth.ShopClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "gstsync",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Audience:  jwt.ClaimStrings{"reports"},
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = newVerifier().Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

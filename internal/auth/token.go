// Package auth issues and verifies the shop-scoped tokens that guard report endpoints.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gstsync/internal/config"
	"gstsync/internal/domain"
)

const audienceReports = "reports"

// ShopClaims binds a token to a single shop.
type ShopClaims struct {
	jwt.RegisteredClaims
	Shop string `json:"shop"`
}

// TokenVerifier signs and validates HS256 shop tokens.
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier creates a verifier from the JWT config.
func NewTokenVerifier(cfg *config.JWTConfig) *TokenVerifier {
	return &TokenVerifier{secret: []byte(cfg.Secret), issuer: cfg.Issuer}
}

// Issue mints a report token for shop that expires after ttl.
func (v *TokenVerifier) Issue(shop string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &ShopClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   shop,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{audienceReports},
		},
		Shop: shop,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("signing shop token: %w", err)
	}
	return token, nil
}

// Verify parses and validates a token. Any failure maps to domain.ErrUnauthorized.
func (v *TokenVerifier) Verify(tokenString string) (*ShopClaims, error) {
	claims := &ShopClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	},
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(audienceReports),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}
	if claims.Shop == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

package util

import (
	"fmt"
	"time"

	"user-account-service/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserSnapshot is the sanitized user record embedded in tokens. It has
// no password field at all, so a hash can never leak into a claim.
type UserSnapshot struct {
	ID         uint          `json:"id"`
	Username   string        `json:"username"`
	Email      string        `json:"email"`
	CreateTime time.Time     `json:"create_time"`
	DNI        string        `json:"dni"`
	Roles      []models.Role `json:"roles"`
}

// Claims is the JWT payload: a user snapshot plus registered claims.
type Claims struct {
	Data UserSnapshot `json:"data"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies bearer tokens with a process-wide
// HS256 secret. It is stateless; tokens expire, they are never revoked.
type TokenIssuer struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// NewTokenIssuer builds an issuer. ttlHours defaults to 72 when not
// positive.
func NewTokenIssuer(secret, issuer string, ttlHours int) *TokenIssuer {
	if ttlHours <= 0 {
		ttlHours = 72
	}
	return &TokenIssuer{
		Secret: secret,
		Issuer: issuer,
		TTL:    time.Duration(ttlHours) * time.Hour,
	}
}

// Snapshot strips the password hash from a user record for embedding
// in a token or a response.
func Snapshot(u *models.User) UserSnapshot {
	return UserSnapshot{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		CreateTime: u.CreateTime,
		DNI:        u.DNI,
		Roles:      u.Roles,
	}
}

// Sign produces a signed token embedding the sanitized user snapshot,
// valid for the configured TTL from now.
func (t *TokenIssuer) Sign(u *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Data: Snapshot(u),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(t.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token. Malformed, tampered and expired
// tokens all fail; there is no grace period past expiry.
func (t *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return []byte(t.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

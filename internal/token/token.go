package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carry the authenticated user's identity and designation.
type Claims struct {
	UserID      uint64 `json:"user_id"`
	Designation string `json:"designation"`
	jwt.RegisteredClaims
}

// TTL is how long an issued token stays valid.
const TTL = 24 * time.Hour

// Sign issues an HS256 token for the user.
func Sign(secret string, userID uint64, designation string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(TTL)
	claims := Claims{
		UserID:      userID,
		Designation: designation,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse validates a signed token and returns its claims.
func Parse(secret, signed string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

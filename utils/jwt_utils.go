package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ParseSessionClaims reads the claims of a bearer token without verifying its
// signature. The client never holds the signing key; the API verifies tokens
// on every call, this is only used to read the role and expiry.
func ParseSessionClaims(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims)
	if err != nil {
		return nil, fmt.Errorf("error parsing token: %w", err)
	}
	return claims, nil
}

// TokenExpired reports whether a JWT bearer token carries an expiry in the
// past. Opaque tokens and tokens without exp are treated as live.
func TokenExpired(tokenStr string, now time.Time) bool {
	claims, err := ParseSessionClaims(tokenStr)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, role string, exp time.Time) string {
	t.Helper()
	claims := Claims{
		Name: "Ann",
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)
	return token
}

func TestParseSessionClaims(t *testing.T) {
	token := signedToken(t, "senior", time.Now().Add(time.Hour))

	claims, err := ParseSessionClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "senior", claims.Role)
	assert.Equal(t, "Ann", claims.Name)
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, TokenExpired(signedToken(t, "tl", now.Add(time.Hour)), now))
	assert.True(t, TokenExpired(signedToken(t, "tl", now.Add(-time.Hour)), now))
	assert.False(t, TokenExpired("12|opaque-sanctum-token", now))
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2024-05-17":                  "17 May 2024",
		"2024-05-17T10:00:00Z":        "17 May 2024",
		"2024-05-17T10:00:00.000000Z": "17 May 2024",
		"2024-05-17 10:00:00":         "17 May 2024",
		"":                            DatePlaceholder,
		"not a date":                  DatePlaceholder,
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatDate(in), "input %q", in)
	}
}

func TestNormalizePayloadDate(t *testing.T) {
	assert.Equal(t, "2024-05-17", NormalizePayloadDate("2024-05-17T23:10:00Z"))
	assert.Equal(t, "", NormalizePayloadDate(""))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 5, 17, 15, 0, 0, 0, time.UTC)

	assert.True(t, IsOverdue("2024-05-16", now))
	assert.False(t, IsOverdue("2024-05-17", now))
	assert.False(t, IsOverdue("2024-06-01", now))
	assert.False(t, IsOverdue("", now))
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)

	got, ok := tokenExpiry(tok)
	assert.True(t, ok)
	assert.True(t, exp.Equal(got))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, ok = tokenExpiry(noExp)
	assert.False(t, ok)

	_, ok = tokenExpiry("not-a-jwt")
	assert.False(t, ok)
}

func TestSealer(t *testing.T) {
	s := NewSealer("a-secret-that-is-long-enough-for-tests")

	sealed, err := s.Seal("siti")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "siti")

	got, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "siti", got)

	_, err = NewSealer("another-secret").Open(sealed)
	assert.Error(t, err)

	_, err = s.Open("garbage")
	assert.Error(t, err)
}

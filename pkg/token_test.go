package pkg

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	Configure("test-secret", time.Hour)
	tok, err := CreateToken(7, "student1", "student")
	require.NoError(t, err)

	c, err := VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), c.UserID)
	assert.Equal(t, "student1", c.Subject)
	assert.Equal(t, "student", c.UserType)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	Configure("one", time.Hour)
	tok, err := CreateToken(1, "a", "college")
	require.NoError(t, err)

	Configure("two", time.Hour)
	_, err = VerifyToken(tok)
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	Configure("s", time.Hour)
	claims := Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s"))
	require.NoError(t, err)
	_, err = VerifyToken(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

package pkg

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token.
type Claims struct {
	UserID   uint   `json:"uid"`
	UserType string `json:"type"`
	jwt.RegisteredClaims
}

var (
	mu     sync.RWMutex
	secret []byte
	ttl    = 30 * time.Minute
)

var ErrNoSecret = errors.New("JWT secret is not configured")

// Configure sets the signing secret and token lifetime.
func Configure(s string, lifetime time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	secret = []byte(s)
	if lifetime > 0 {
		ttl = lifetime
	}
}

func TokenTTL() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ttl
}

// CreateToken signs an HS256 session token for the user.
func CreateToken(userID uint, username, userType string) (string, error) {
	mu.RLock()
	key, life := secret, ttl
	mu.RUnlock()
	if len(key) == 0 {
		return "", ErrNoSecret
	}
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(life)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// VerifyToken parses and validates a session token.
func VerifyToken(tokenStr string) (*Claims, error) {
	mu.RLock()
	key := secret
	mu.RUnlock()
	if len(key) == 0 {
		return nil, ErrNoSecret
	}
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	// share-link tokens are signed with the same key by default
	if !ok || !parsed.Valid || claims.UserID == 0 || claims.UserType == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

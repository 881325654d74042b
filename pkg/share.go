package pkg

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	MinShareHours = 1
	MaxShareHours = 168
)

var (
	shareSecret []byte

	ErrShareHours   = fmt.Errorf("expires_in_hours must be between %d and %d", MinShareHours, MaxShareHours)
	ErrInvalidShare = errors.New("this verification link is invalid or has expired")
)

type shareClaims struct {
	CertificateID string `json:"certificate_id"`
	jwt.RegisteredClaims
}

// ConfigureShare sets the secret share links are signed with.
func ConfigureShare(s string) {
	mu.Lock()
	defer mu.Unlock()
	shareSecret = []byte(s)
}

// CreateShareToken signs a link token for a certificate's public id.
func CreateShareToken(publicID string, hours int) (string, time.Time, error) {
	if hours < MinShareHours || hours > MaxShareHours {
		return "", time.Time{}, ErrShareHours
	}
	mu.RLock()
	key := shareSecret
	mu.RUnlock()
	if len(key) == 0 {
		return "", time.Time{}, ErrNoSecret
	}
	now := time.Now()
	exp := now.Add(time.Duration(hours) * time.Hour)
	claims := shareClaims{
		CertificateID: publicID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	return signed, exp, err
}

// VerifyShareToken checks tok was issued for publicID and has not expired.
func VerifyShareToken(tok, publicID string) (time.Time, error) {
	mu.RLock()
	key := shareSecret
	mu.RUnlock()
	if len(key) == 0 {
		return time.Time{}, ErrNoSecret
	}
	parsed, err := jwt.ParseWithClaims(tok, &shareClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil || !parsed.Valid {
		return time.Time{}, ErrInvalidShare
	}
	claims, ok := parsed.Claims.(*shareClaims)
	if !ok || claims.CertificateID == "" || claims.ExpiresAt == nil {
		return time.Time{}, ErrInvalidShare
	}
	if claims.CertificateID != publicID {
		return time.Time{}, ErrInvalidShare
	}
	return claims.ExpiresAt.Time, nil
}

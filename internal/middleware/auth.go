package middleware

import (
	"context"
	"net/http"
	"strings"

	"placementhub/internal/logger"
	"placementhub/pkg"

	"go.uber.org/zap"
)

type ctxKey string

const (
	UserIDKey   ctxKey = "userID"
	UsernameKey ctxKey = "username"
	UserTypeKey ctxKey = "userType"
)

// Auth validates the bearer session token and stores the caller in the
// request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if h == "" || tok == "" || tok == h {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		claims, err := pkg.VerifyToken(tok)
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UsernameKey, claims.Subject)
		ctx = context.WithValue(ctx, UserTypeKey, claims.UserType)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActiveCheck reports whether the account with the given id may still use
// its sessions.
type ActiveCheck func(ctx context.Context, userID uint) (bool, error)

// RequireActive rejects sessions whose account was deactivated or removed
// after the token was issued. It must run after Auth.
func RequireActive(active ActiveCheck) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, _, ok := Caller(r.Context())
			if !ok {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			ok, err := active(r.Context(), uid)
			if err != nil {
				logger.L.Error("account check failed", zap.Uint("user_id", uid), zap.Error(err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if !ok {
				http.Error(w, "account is inactive", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireType rejects callers whose account type is not in types.
func RequireType(types ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ut, _ := r.Context().Value(UserTypeKey).(string)
			for _, t := range types {
				if ut == t {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "forbidden for account type "+ut, http.StatusForbidden)
		})
	}
}

// Caller returns the authenticated user id and type from ctx.
func Caller(ctx context.Context) (uint, string, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	if !ok || id == 0 {
		return 0, "", false
	}
	ut, _ := ctx.Value(UserTypeKey).(string)
	return id, ut, true
}

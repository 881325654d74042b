package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"placementhub/internal/config"
	"placementhub/internal/db"
	"placementhub/internal/logger"
	"placementhub/internal/middleware"
	"placementhub/internal/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var frontendBaseURL = "http://localhost:3000"

// Configure applies the settings handlers read at request time.
func Configure(cfg *config.Config) {
	if cfg.FrontendBaseURL != "" {
		frontendBaseURL = cfg.FrontendBaseURL
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// serverError logs err and answers 500 without leaking it.
func serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger.L.Error(msg, zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, msg)
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func idParam(r *http.Request, name string) (uint, error) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || v == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(v), nil
}

// profileOf loads the profile row owned by the authenticated user.
func profileOf[T any](r *http.Request, conn *gorm.DB) (*T, error) {
	uid, _, ok := middleware.Caller(r.Context())
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	var p T
	if err := conn.Where("user_id = ?", uid).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func currentStudent(r *http.Request) (*models.Student, error) {
	return profileOf[models.Student](r, db.DB)
}

func currentCollege(r *http.Request) (*models.College, error) {
	return profileOf[models.College](r, db.DB)
}

func currentCompany(r *http.Request) (*models.Company, error) {
	return profileOf[models.Company](r, db.DB)
}

// profileError answers a failed profile lookup.
func profileError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusForbidden, "profile not found for this account")
		return
	}
	serverError(w, r, "database error", err)
}

func dbFirst(dst any, id uint) error {
	return db.DB.First(dst, id).Error
}

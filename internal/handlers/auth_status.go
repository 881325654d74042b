package handlers

import (
	"context"
	"errors"
	"net/http"

	"placementhub/internal/db"
	"placementhub/internal/middleware"
	"placementhub/internal/models"

	"gorm.io/gorm"
)

// AccountActive reports whether user id still exists and is active.
func AccountActive(ctx context.Context, id uint) (bool, error) {
	var u models.User
	err := db.DB.WithContext(ctx).Select("id", "is_active").First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsActive, nil
}

// AuthMe returns the caller's account and which profile it owns.
// GET /api/v1/auth/me (protected)
func AuthMe(w http.ResponseWriter, r *http.Request) {
	uid, _, ok := middleware.Caller(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var user models.User
	if err := db.DB.First(&user, uid).Error; err != nil {
		writeError(w, http.StatusUnauthorized, "account no longer exists")
		return
	}

	var profileID uint
	switch user.UserType {
	case models.UserTypeStudent:
		var s models.Student
		_ = db.DB.Select("id").Where("user_id = ?", uid).First(&s).Error
		profileID = s.ID
	case models.UserTypeCollege:
		var c models.College
		_ = db.DB.Select("id").Where("user_id = ?", uid).First(&c).Error
		profileID = c.ID
	case models.UserTypeCompany:
		var c models.Company
		_ = db.DB.Select("id").Where("user_id = ?", uid).First(&c).Error
		profileID = c.ID
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":        user,
		"user_type":   user.UserType,
		"has_profile": profileID != 0,
		"profile_id":  profileID,
	})
}

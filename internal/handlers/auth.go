package handlers

import (
	"errors"
	"net/http"
	"strings"

	"placementhub/internal/auth"
	"placementhub/internal/db"
	"placementhub/internal/logger"
	"placementhub/internal/models"
	"placementhub/pkg"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

var errAccountExists = errors.New("username or email already registered")

// POST /api/v1/auth/register
func Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "username and email are required")
		return
	}
	if !models.ValidUserType(req.UserType) {
		writeError(w, http.StatusBadRequest, "user_type must be student, college or company")
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrWeakPassword) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if err != nil {
		serverError(w, r, "failed to hash password", err)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		UserType:     req.UserType,
		FullName:     req.FullName,
		Phone:        req.Phone,
		IsActive:     true,
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", user.Username, user.Email).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return errAccountExists
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(emptyProfile(&user)).Error
	})
	if errors.Is(err, errAccountExists) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		serverError(w, r, "failed to create account", err)
		return
	}
	logger.L.Info("account registered", zap.String("username", user.Username), zap.String("type", user.UserType))
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        user.ID,
		"username":  user.Username,
		"user_type": user.UserType,
	})
}

func emptyProfile(u *models.User) any {
	uid := u.ID
	name := u.FullName
	if name == "" {
		name = u.Username
	}
	switch u.UserType {
	case models.UserTypeCollege:
		return &models.College{UserID: &uid, CollegeName: name, Tier: 3, ContactEmail: u.Email}
	case models.UserTypeCompany:
		return &models.Company{UserID: &uid, CompanyName: name, ContactEmail: u.Email}
	}
	return &models.Student{UserID: &uid, Name: name, Email: u.Email, PlacementStatus: models.PlacementSeeking}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/v1/auth/login
func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	var user models.User
	err := db.DB.Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	} else if err != nil {
		serverError(w, r, "database error", err)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if !user.IsActive {
		writeError(w, http.StatusForbidden, "account is disabled")
		return
	}
	tok, err := pkg.CreateToken(user.ID, user.Username, user.UserType)
	if err != nil {
		serverError(w, r, "failed to sign token", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": tok,
		"token_type":   "bearer",
		"user_type":    user.UserType,
		"expires_in":   int(pkg.TokenTTL().Seconds()),
	})
}

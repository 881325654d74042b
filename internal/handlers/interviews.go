package handlers

import (
	"errors"
	"net/http"
	"time"

	"placementhub/internal/db"
	"placementhub/internal/middleware"
	"placementhub/internal/models"

	"gorm.io/gorm"
)

type createInterviewReq struct {
	ApplicationID uint       `json:"application_id"`
	InterviewDate *time.Time `json:"interview_date"`
	InterviewType string     `json:"interview_type"`
	Duration      int        `json:"duration"`
}

// POST /api/v1/interviews (company)
func CreateInterview(w http.ResponseWriter, r *http.Request) {
	var req createInterviewReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ApplicationID == 0 {
		writeError(w, http.StatusBadRequest, "application_id is required")
		return
	}
	if req.Duration < 0 {
		writeError(w, http.StatusBadRequest, "duration cannot be negative")
		return
	}
	company, err := currentCompany(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	var app models.JobApplication
	if err := db.DB.Preload("JobPosting").First(&app, req.ApplicationID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "application not found")
		return
	} else if err != nil {
		serverError(w, r, "database error", err)
		return
	}
	if app.JobPosting == nil || app.JobPosting.CompanyID != company.ID {
		writeError(w, http.StatusForbidden, "forbidden: application is for another company's job")
		return
	}
	if app.Status == models.AppRejected || app.Status == models.AppHired {
		writeError(w, http.StatusConflict, "application is already "+app.Status)
		return
	}
	iv := models.Interview{
		StudentID:     app.StudentID,
		CompanyID:     company.ID,
		ApplicationID: &app.ID,
		InterviewDate: req.InterviewDate,
		InterviewType: req.InterviewType,
		Duration:      req.Duration,
		Status:        models.InterviewScheduled,
	}
	if err := db.DB.Create(&iv).Error; err != nil {
		serverError(w, r, "failed to schedule interview", err)
		return
	}
	writeJSON(w, http.StatusCreated, iv)
}

type updateInterviewReq struct {
	Status       *string    `json:"status"`
	Feedback     *string    `json:"feedback"`
	Score        *float64   `json:"score"`
	RecordingURL *string    `json:"recording_url"`
	Date         *time.Time `json:"interview_date"`
}

// PATCH /api/v1/interviews/{id} (company, owner)
func UpdateInterview(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req updateInterviewReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
		writeError(w, http.StatusBadRequest, "score must be between 0 and 100")
		return
	}
	if req.Status != nil {
		switch *req.Status {
		case models.InterviewScheduled, models.InterviewCompleted, models.InterviewCancelled:
		default:
			writeError(w, http.StatusBadRequest, "status must be scheduled, completed or cancelled")
			return
		}
	}
	company, err := currentCompany(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	var iv models.Interview
	if err := db.DB.First(&iv, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "interview not found")
		return
	} else if err != nil {
		serverError(w, r, "database error", err)
		return
	}
	if iv.CompanyID != company.ID {
		writeError(w, http.StatusForbidden, "forbidden: not owner of interview")
		return
	}
	if iv.Status != models.InterviewScheduled && req.Status != nil && *req.Status != iv.Status {
		writeError(w, http.StatusConflict, "interview is already "+iv.Status)
		return
	}
	if req.Status != nil {
		iv.Status = *req.Status
	}
	if req.Feedback != nil {
		iv.Feedback = *req.Feedback
	}
	if req.Score != nil {
		iv.Score = req.Score
	}
	if req.RecordingURL != nil {
		iv.RecordingURL = *req.RecordingURL
	}
	if req.Date != nil {
		iv.InterviewDate = req.Date
	}
	if err := db.DB.Save(&iv).Error; err != nil {
		serverError(w, r, "failed to update interview", err)
		return
	}
	writeJSON(w, http.StatusOK, iv)
}

// GET /api/v1/interviews (student or company)
func ListInterviews(w http.ResponseWriter, r *http.Request) {
	_, ut, _ := middleware.Caller(r.Context())
	q := db.DB.Order("interview_date DESC")
	switch ut {
	case models.UserTypeStudent:
		s, err := currentStudent(r)
		if err != nil {
			profileError(w, r, err)
			return
		}
		q = q.Where("student_id = ?", s.ID)
	case models.UserTypeCompany:
		c, err := currentCompany(r)
		if err != nil {
			profileError(w, r, err)
			return
		}
		q = q.Where("company_id = ?", c.ID)
	default:
		writeError(w, http.StatusForbidden, "forbidden for account type "+ut)
		return
	}
	var out []models.Interview
	if err := q.Find(&out).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

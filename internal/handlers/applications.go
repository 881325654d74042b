package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"placementhub/internal/db"
	"placementhub/internal/logger"
	"placementhub/internal/models"
	"placementhub/internal/resume"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errJobClosed      = errors.New("job is not accepting applications")
	errAlreadyApplied = errors.New("already applied to this job")
	errJobNotFound    = errors.New("job not found")
)

type applyReq struct {
	ResumeURL   string `json:"resume_url"`
	CoverLetter string `json:"cover_letter"`
}

// Apply files the calling student's application, scored by how well their
// skills cover the posting.
// POST /api/v1/jobs/{id}/apply (student)
func Apply(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req applyReq
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	student, err := currentStudent(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	if req.ResumeURL == "" {
		req.ResumeURL = student.ResumeURL
	}

	var app models.JobApplication
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var job models.JobPosting
		if err := tx.First(&job, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return errJobNotFound
		} else if err != nil {
			return err
		}
		now := time.Now()
		if !job.Open(now) {
			return errJobClosed
		}
		var n int64
		if err := tx.Model(&models.JobApplication{}).
			Where("student_id = ? AND job_posting_id = ?", student.ID, job.ID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return errAlreadyApplied
		}
		app = models.JobApplication{
			StudentID:        student.ID,
			JobPostingID:     job.ID,
			ApplicationDate:  now,
			Status:           models.AppApplied,
			ResumeURL:        req.ResumeURL,
			CoverLetter:      req.CoverLetter,
			ApplicationScore: resume.MatchScore(student.Skills, job.SkillsRequired),
		}
		if err := tx.Create(&app).Error; err != nil {
			return err
		}
		return tx.Model(&job).UpdateColumn("total_applications", gorm.Expr("total_applications + ?", 1)).Error
	})
	switch {
	case errors.Is(err, errJobNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errJobClosed):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errAlreadyApplied):
		writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		serverError(w, r, "failed to apply", err)
	default:
		writeJSON(w, http.StatusCreated, app)
	}
}

// GET /api/v1/applications (student)
func StudentApplications(w http.ResponseWriter, r *http.Request) {
	student, err := currentStudent(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	var apps []models.JobApplication
	if err := db.DB.Preload("JobPosting.Company").
		Where("student_id = ?", student.ID).
		Order("application_date DESC").
		Find(&apps).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// GET /api/v1/jobs/{id}/applications (company, owner)
func JobApplications(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	job, ok := ownedJob(w, r, id)
	if !ok {
		return
	}
	var apps []models.JobApplication
	q := db.DB.Preload("Student").Where("job_posting_id = ?", job.ID)
	if st := strings.TrimSpace(r.URL.Query().Get("status")); st != "" {
		q = q.Where("status = ?", st)
	}
	if err := q.Order("application_score DESC").Order("id").Find(&apps).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job": job, "applications": apps})
}

var errStatusChanged = errors.New("status was changed by another request")

// advanceStatus writes status to on row id only while it still holds
// status from.
func advanceStatus(tx *gorm.DB, model any, id uint, from, to string) error {
	res := tx.Model(model).Where("id = ? AND status = ?", id, from).Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errStatusChanged
	}
	return nil
}

type applicationStatusReq struct {
	Status      string     `json:"status"`
	Package     float64    `json:"package"`
	JobRole     string     `json:"job_role"`
	JoiningDate *time.Time `json:"joining_date"`
}

// UpdateApplicationStatus moves an application along its review pipeline.
// Hiring records an offer and marks the student placed.
// PATCH /api/v1/applications/{id}/status (company)
func UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req applicationStatusReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Package < 0 {
		writeError(w, http.StatusBadRequest, "package cannot be negative")
		return
	}
	company, err := currentCompany(r)
	if err != nil {
		profileError(w, r, err)
		return
	}

	var app models.JobApplication
	if err := db.DB.Preload("JobPosting").Preload("Student").First(&app, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
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
	from := app.Status
	if err := app.Transition(req.Status); err != nil {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error": err.Error(),
			"from":  from,
			"to":    req.Status,
		})
		return
	}

	var placement *models.Placement
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := advanceStatus(tx, &models.JobApplication{}, app.ID, from, app.Status); err != nil {
			return err
		}
		if app.Status != models.AppHired {
			return nil
		}
		role := req.JobRole
		if role == "" {
			role = app.JobPosting.Title
		}
		placement = &models.Placement{
			StudentID:   app.StudentID,
			CompanyID:   company.ID,
			JobRole:     role,
			Package:     req.Package,
			JoiningDate: req.JoiningDate,
			Status:      models.PlacementOffered,
		}
		if app.Student != nil && app.Student.CollegeID != nil {
			placement.CollegeID = *app.Student.CollegeID
		}
		if err := tx.Create(placement).Error; err != nil {
			return err
		}
		return tx.Model(&models.Student{}).Where("id = ?", app.StudentID).Updates(map[string]any{
			"placement_status":  models.PlacementPlaced,
			"placement_company": company.CompanyName,
			"placement_package": req.Package,
		}).Error
	})
	if errors.Is(err, errStatusChanged) {
		writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error(), "from": from, "to": req.Status})
		return
	}
	if err != nil {
		serverError(w, r, "failed to update application", err)
		return
	}
	logger.L.Info("application status changed",
		zap.Uint("application_id", app.ID),
		zap.String("from", from),
		zap.String("to", app.Status))

	resp := map[string]any{"application": app}
	if placement != nil {
		resp["placement"] = placement
	}
	writeJSON(w, http.StatusOK, resp)
}

package handlers

import (
	"errors"
	"io"
	"net/http"

	"placementhub/internal/cache"
	"placementhub/internal/db"
	"placementhub/internal/logger"
	"placementhub/internal/middleware"
	"placementhub/internal/models"
	"placementhub/internal/predict"

	"go.uber.org/zap"
)

type trainReq struct {
	predict.Options
	UseSample bool `json:"use_sample"`
}

// TrainPredictor fits a model on the college's own roster, or on the
// synthetic cohort when asked, and registers it for the college.
// POST /api/v1/predict/train (college)
func TrainPredictor(w http.ResponseWriter, r *http.Request) {
	var req trainReq
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	college, err := currentCollege(r)
	if err != nil {
		profileError(w, r, err)
		return
	}

	var rows []predict.Row
	if req.UseSample {
		seed := req.Seed
		if seed == 0 {
			seed = 42
		}
		rows = predict.SampleDataset(predict.SampleSize, seed)
	} else {
		var students []models.Student
		if err := db.DB.Where("college_id = ?", college.ID).Find(&students).Error; err != nil {
			serverError(w, r, "database error", err)
			return
		}
		rows = predict.RowsFromStudents(students)
	}

	m, err := predict.Train(rows, req.Options)
	if errors.Is(err, predict.ErrNotEnoughData) || errors.Is(err, predict.ErrTestSize) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		serverError(w, r, "training failed", err)
		return
	}
	if err := predict.Save(r.Context(), cache.Default, college.ID, m); err != nil {
		serverError(w, r, "failed to store model", err)
		return
	}
	logger.L.Info("placement model trained",
		zap.Uint("college_id", college.ID),
		zap.Int("rows", len(rows)),
		zap.Float64("test_accuracy", m.TestAccuracy))
	writeJSON(w, http.StatusOK, map[string]any{
		"college_id":         college.ID,
		"train_accuracy":     m.TrainAccuracy,
		"test_accuracy":      m.TestAccuracy,
		"feature_importance": m.Importance,
		"train_rows":         m.TrainRows,
		"test_rows":          m.TestRows,
	})
}

type predictReq struct {
	CollegeID *uint             `json:"college_id"`
	Features  *predict.Features `json:"features"`
}

// Predict scores placement likelihood. Students default to their own
// college's model and their own profile.
// POST /api/v1/predict (protected)
func Predict(w http.ResponseWriter, r *http.Request) {
	var req predictReq
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	var collegeID uint
	if req.CollegeID != nil {
		collegeID = *req.CollegeID
	}

	_, ut, _ := middleware.Caller(r.Context())
	switch ut {
	case models.UserTypeStudent:
		s, err := currentStudent(r)
		if err != nil {
			profileError(w, r, err)
			return
		}
		if req.CollegeID == nil && s.CollegeID != nil {
			collegeID = *s.CollegeID
		}
		if req.Features == nil {
			f := predict.FromStudent(s)
			req.Features = &f
		}
	case models.UserTypeCollege:
		if req.CollegeID == nil {
			if c, err := currentCollege(r); err == nil {
				collegeID = c.ID
			}
		}
	}
	if req.Features == nil {
		writeError(w, http.StatusBadRequest, "features are required")
		return
	}

	m, modelID, err := predict.Load(r.Context(), cache.Default, collegeID)
	if errors.Is(err, predict.ErrNoModel) {
		writeError(w, http.StatusServiceUnavailable, "no trained model available")
		return
	}
	if err != nil {
		serverError(w, r, "failed to load model", err)
		return
	}
	p := m.Predict(*req.Features)
	writeJSON(w, http.StatusOK, map[string]any{
		"probability": p.Probability,
		"prediction":  p.Label,
		"model":       modelID,
		"features":    req.Features,
	})
}

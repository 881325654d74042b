package handlers

import (
	"net/http"

	"placementhub/internal/db"
	"placementhub/internal/logger"
	"placementhub/internal/models"
	"placementhub/internal/nep"

	"go.uber.org/zap"
)

// GET /api/v1/nep/guidelines
func NEPGuidelines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nep.Guidelines)
}

// CreateNEPAssessment scores the submitted indicators and stores the
// result for the calling college.
// POST /api/v1/nep/assessments (college)
func CreateNEPAssessment(w http.ResponseWriter, r *http.Request) {
	var sub nep.Submission
	if err := decodeBody(r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: expected category -> implemented indicators")
		return
	}
	college, err := currentCollege(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	res := nep.Score(sub)

	submitted := make(map[string]any, len(sub))
	for k, v := range sub {
		submitted[k] = v
	}
	a := models.NEPAssessment{
		CollegeID:       college.ID,
		OverallScore:    res.OverallScore,
		ComplianceLevel: res.ComplianceLevel,
		Result: map[string]any{
			"category_scores":  res.CategoryScores,
			"recommendations":  res.Recommendations,
			"total_indicators": res.TotalIndicators,
		},
		Submitted: submitted,
	}
	if err := db.DB.Create(&a).Error; err != nil {
		serverError(w, r, "failed to store assessment", err)
		return
	}
	logger.L.Info("nep assessment stored",
		zap.Uint("college_id", college.ID),
		zap.Float64("score", res.OverallScore),
		zap.String("level", res.ComplianceLevel))
	writeJSON(w, http.StatusCreated, map[string]any{"id": a.ID, "result": res})
}

// GET /api/v1/nep/assessments (college)
func NEPAssessments(w http.ResponseWriter, r *http.Request) {
	college, err := currentCollege(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	var rows []models.NEPAssessment
	if err := db.DB.Where("college_id = ?", college.ID).Order("created_at").Order("id").Find(&rows).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}
	entries := make([]nep.Entry, 0, len(rows))
	for _, a := range rows {
		entries = append(entries, nep.Entry{
			ID:    a.ID,
			Date:  a.CreatedAt.Format("2006-01-02"),
			Score: a.OverallScore,
			Level: a.ComplianceLevel,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": nep.History(entries)})
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"placementhub/internal/db"
	"placementhub/internal/interview"
	"placementhub/internal/llm"
	"placementhub/internal/models"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// POST /api/v1/practice/sessions (student)
func StartPractice(w http.ResponseWriter, r *http.Request) {
	var cfg interview.Config
	if err := decodeBody(r, &cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := cfg.Normalize(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	student, err := currentStudent(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	questions := interview.GenerateQuestions(r.Context(), llm.Default, cfg)
	s := interview.NewSession(student.ID, cfg, questions, time.Now())
	if err := db.DB.Create(s).Error; err != nil {
		serverError(w, r, "failed to start session", err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

// GET /api/v1/practice/sessions (student)
func ListPractice(w http.ResponseWriter, r *http.Request) {
	student, err := currentStudent(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	var out []models.PracticeSession
	if err := db.DB.Where("student_id = ?", student.ID).Order("created_at DESC").Find(&out).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ownSession loads the session named in the path if it belongs to the
// calling student, answering the request itself otherwise.
func ownSession(w http.ResponseWriter, r *http.Request) (*models.PracticeSession, bool) {
	student, err := currentStudent(r)
	if err != nil {
		profileError(w, r, err)
		return nil, false
	}
	var s models.PracticeSession
	err = db.DB.Where("id = ? AND student_id = ?", chi.URLParam(r, "id"), student.ID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	} else if err != nil {
		serverError(w, r, "database error", err)
		return nil, false
	}
	return &s, true
}

// GET /api/v1/practice/sessions/{id} (student)
func GetPractice(w http.ResponseWriter, r *http.Request) {
	if s, ok := ownSession(w, r); ok {
		writeJSON(w, http.StatusOK, s)
	}
}

type frameReq struct {
	Frame int `json:"frame"`
	interview.Metrics
}

// updateSession runs fn on the caller's session named in the path. The row
// stays locked until fn returns, so frames and answers for one session
// never overwrite each other.
func updateSession(r *http.Request, studentID uint, fn func(tx *gorm.DB, s *models.PracticeSession) error) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var s models.PracticeSession
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND student_id = ?", chi.URLParam(r, "id"), studentID).
			First(&s).Error
		if err != nil {
			return err
		}
		return fn(tx, &s)
	})
}

// sessionError answers a failed session update.
func sessionError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, interview.ErrSessionFinished):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, interview.ErrMetricRange), errors.Is(err, interview.ErrNegativeFrame),
		errors.Is(err, interview.ErrEmptyAnswer):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		serverError(w, r, msg, err)
	}
}

// PostFrame records a client-side body language reading. Only every
// tenth frame is kept.
// POST /api/v1/practice/sessions/{id}/frames (student)
func PostFrame(w http.ResponseWriter, r *http.Request) {
	var req frameReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	student, err := currentStudent(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	var (
		kept bool
		fb   []string
	)
	err = updateSession(r, student.ID, func(tx *gorm.DB, s *models.PracticeSession) error {
		var err error
		kept, fb, err = interview.AddSample(s, req.Frame, req.Metrics, time.Now())
		if err != nil || !kept {
			return err
		}
		return tx.Model(s).Select("samples").Updates(s).Error
	})
	if err != nil {
		sessionError(w, r, "failed to record frame", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"frame":    req.Frame,
		"sampled":  kept,
		"feedback": fb,
	})
}

type answerReq struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// POST /api/v1/practice/sessions/{id}/answers (student)
func PostAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	student, err := currentStudent(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	var a interview.AnswerAnalysis
	err = updateSession(r, student.ID, func(tx *gorm.DB, s *models.PracticeSession) error {
		var err error
		if a, err = interview.AddAnswer(s, req.Question, req.Answer); err != nil {
			return err
		}
		return tx.Model(s).Select("answers").Updates(s).Error
	})
	if err != nil {
		sessionError(w, r, "failed to record answer", err)
		return
	}
	interview.Coach(r.Context(), llm.Default, req.Question, req.Answer, &a)
	writeJSON(w, http.StatusOK, a)
}

// POST /api/v1/practice/sessions/{id}/finish (student)
func FinishPractice(w http.ResponseWriter, r *http.Request) {
	student, err := currentStudent(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	var report interview.Report
	err = updateSession(r, student.ID, func(tx *gorm.DB, s *models.PracticeSession) error {
		if err := interview.Finish(s); err != nil {
			return err
		}
		if err := tx.Model(s).Update("status", s.Status).Error; err != nil {
			return err
		}
		report = interview.BuildReport(s)
		return nil
	})
	if err != nil {
		sessionError(w, r, "failed to finish session", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GET /api/v1/practice/sessions/{id}/report (student)
func PracticeReport(w http.ResponseWriter, r *http.Request) {
	if s, ok := ownSession(w, r); ok {
		writeJSON(w, http.StatusOK, interview.BuildReport(s))
	}
}

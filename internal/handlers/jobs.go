package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"placementhub/internal/db"
	"placementhub/internal/jobparser"
	"placementhub/internal/logger"
	"placementhub/internal/models"
	"placementhub/internal/resume"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type parseReq struct {
	Text string `json:"text"`
}

// POST /api/v1/jobs/parse
func ParseJob(w http.ResponseWriter, r *http.Request) {
	var req parseReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	writeJSON(w, http.StatusOK, jobparser.Parse(req.Text))
}

// POST /api/v1/jobs/optimize
func OptimizeJob(w http.ResponseWriter, r *http.Request) {
	var in jobparser.OptimizeInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	writeJSON(w, http.StatusOK, jobparser.Optimize(in, time.Now()))
}

// GET /api/v1/jobs/templates
func JobTemplates(w http.ResponseWriter, r *http.Request) {
	out := make([]map[string]any, 0, len(jobparser.Templates))
	for _, t := range jobparser.Templates {
		out = append(out, map[string]any{
			"template":    t,
			"description": jobparser.TemplateText(t),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/v1/skills
func SkillCatalogue(w http.ResponseWriter, r *http.Request) {
	out := make(map[string][]string, len(jobparser.SkillDatabase))
	for _, c := range jobparser.SkillDatabase {
		out[c.Name] = c.Skills
	}
	writeJSON(w, http.StatusOK, out)
}

type createJobReq struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Requirements       string     `json:"requirements"`
	SkillsRequired     []string   `json:"skills_required"`
	ExperienceRequired string     `json:"experience_required"`
	Location           string     `json:"location"`
	SalaryRange        string     `json:"salary_range"`
	JobType            string     `json:"job_type"`
	Deadline           *time.Time `json:"deadline"`
}

// CreateJob posts a job for the calling company. Skills missing from the
// request are read off the description, and each one counts towards the
// skill's demand.
// POST /api/v1/jobs (company)
func CreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "title and description are required")
		return
	}
	now := time.Now()
	if req.Deadline != nil && req.Deadline.Before(now) {
		writeError(w, http.StatusBadRequest, "deadline is in the past")
		return
	}
	company, err := currentCompany(r)
	if err != nil {
		profileError(w, r, err)
		return
	}

	parsed := jobparser.Parse(req.Description + "\n" + req.Requirements)
	skills := make([]string, 0, len(req.SkillsRequired))
	for _, s := range req.SkillsRequired {
		if s = jobparser.Canonical(s); s != "" {
			skills = append(skills, s)
		}
	}
	if len(skills) == 0 {
		skills = parsed.SkillList()
	}
	job := models.JobPosting{
		CompanyID:          company.ID,
		Title:              req.Title,
		Description:        req.Description,
		Requirements:       req.Requirements,
		SkillsRequired:     skills,
		ExperienceRequired: req.ExperienceRequired,
		Location:           req.Location,
		SalaryRange:        req.SalaryRange,
		JobType:            req.JobType,
		PostedDate:         now,
		Deadline:           req.Deadline,
		IsActive:           true,
		ComplexityScore:    parsed.ComplexityScore,
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&job).Error; err != nil {
			return err
		}
		return bumpDemand(tx, skills)
	})
	if err != nil {
		serverError(w, r, "failed to create job", err)
		return
	}
	logger.L.Info("job posted", zap.Uint("job_id", job.ID), zap.Uint("company_id", company.ID), zap.Int("skills", len(skills)))
	writeJSON(w, http.StatusCreated, job)
}

// bumpDemand counts one more posting asking for each skill, creating
// catalogue rows on first sight.
func bumpDemand(tx *gorm.DB, skills []string) error {
	for _, s := range skills {
		sk := models.Skill{SkillName: s, Category: jobparser.CategoryOf(s), DemandScore: 1}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "skill_name"}},
			DoUpdates: clause.Assignments(map[string]any{"demand_score": gorm.Expr("skills.demand_score + ?", 1)}),
		}).Create(&sk).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// GET /api/v1/jobs
func ListJobs(w http.ResponseWriter, r *http.Request) {
	q := db.DB.Preload("Company").Where("is_active = ?", true).Order("posted_date DESC")
	if loc := strings.TrimSpace(r.URL.Query().Get("location")); loc != "" {
		q = q.Where("location = ?", loc)
	}
	if jt := strings.TrimSpace(r.URL.Query().Get("job_type")); jt != "" {
		q = q.Where("job_type = ?", jt)
	}
	var jobs []models.JobPosting
	if err := q.Find(&jobs).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}
	skill := strings.TrimSpace(r.URL.Query().Get("skill"))
	now := time.Now()
	out := make([]models.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if !j.Open(now) {
			continue
		}
		if skill != "" && resume.MatchScore(j.SkillsRequired, []string{skill}) == 0 {
			continue
		}
		out = append(out, j)
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/v1/jobs/{id}
func GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var job models.JobPosting
	if err := db.DB.Preload("Company").First(&job, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	} else if err != nil {
		serverError(w, r, "database error", err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

type updateJobReq struct {
	IsActive *bool      `json:"is_active"`
	Deadline *time.Time `json:"deadline"`
}

// PATCH /api/v1/jobs/{id} (company, owner)
func UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req updateJobReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	job, ok := ownedJob(w, r, id)
	if !ok {
		return
	}
	if req.IsActive != nil {
		job.IsActive = *req.IsActive
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}
	if err := db.DB.Save(job).Error; err != nil {
		serverError(w, r, "failed to update job", err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// ownedJob loads a job posted by the calling company, answering the
// request itself when it cannot.
func ownedJob(w http.ResponseWriter, r *http.Request, id uint) (*models.JobPosting, bool) {
	company, err := currentCompany(r)
	if err != nil {
		profileError(w, r, err)
		return nil, false
	}
	var job models.JobPosting
	if err := db.DB.First(&job, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "job not found")
		return nil, false
	} else if err != nil {
		serverError(w, r, "database error", err)
		return nil, false
	}
	if job.CompanyID != company.ID {
		writeError(w, http.StatusForbidden, "forbidden: not owner of job")
		return nil, false
	}
	return &job, true
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"placementhub/internal/llm"
	"placementhub/internal/middleware"
	"placementhub/internal/models"
	"placementhub/internal/resume"
)

// profileDefaults fills empty resume fields from a student profile.
func profileDefaults(r *http.Request, in *resume.Input) {
	if _, ut, _ := middleware.Caller(r.Context()); ut != models.UserTypeStudent {
		return
	}
	s, err := currentStudent(r)
	if err != nil {
		return
	}
	if in.Name == "" {
		in.Name = s.Name
	}
	if in.Email == "" {
		in.Email = s.Email
	}
	if len(in.Skills) == 0 {
		in.Skills = s.Skills
	}
}

// POST /api/v1/resume/build (student)
func BuildResume(w http.ResponseWriter, r *http.Request) {
	var in resume.Input
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	profileDefaults(r, &in)
	res, err := resume.Build(r.Context(), llm.Default, in)
	if errors.Is(err, resume.ErrMissingField) || errors.Is(err, resume.ErrUnknownTemplate) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		serverError(w, r, "failed to build resume", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type gapReq struct {
	Skills         []string `json:"skills"`
	ResumeText     string   `json:"resume_text"`
	JobDescription string   `json:"job_description"`
	JobID          uint     `json:"job_id"`
}

// POST /api/v1/resume/gap (student)
func ResumeGap(w http.ResponseWriter, r *http.Request) {
	var req gapReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.JobID != 0 && strings.TrimSpace(req.JobDescription) == "" {
		var job models.JobPosting
		if err := dbFirst(&job, req.JobID); err != nil {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		req.JobDescription = job.Description + "\n" + job.Requirements
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		writeError(w, http.StatusBadRequest, "job_description or job_id is required")
		return
	}
	if len(req.Skills) == 0 {
		in := resume.Input{}
		profileDefaults(r, &in)
		req.Skills = in.Skills
	}
	writeJSON(w, http.StatusOK, resume.Gap(req.Skills, req.ResumeText, req.JobDescription))
}

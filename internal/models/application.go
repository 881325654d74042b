package models

import (
	"errors"
	"time"
)

const (
	AppApplied     = "applied"
	AppReviewed    = "reviewed"
	AppShortlisted = "shortlisted"
	AppRejected    = "rejected"
	AppHired       = "hired"
)

var ErrInvalidTransition = errors.New("invalid status transition")

var applicationTransitions = map[string][]string{
	AppApplied:     {AppReviewed, AppRejected},
	AppReviewed:    {AppShortlisted, AppRejected},
	AppShortlisted: {AppHired, AppRejected},
}

type JobApplication struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	StudentID        uint        `gorm:"not null;uniqueIndex:idx_student_job" json:"student_id"`
	Student          *Student    `json:"student,omitempty"`
	JobPostingID     uint        `gorm:"not null;uniqueIndex:idx_student_job" json:"job_posting_id"`
	JobPosting       *JobPosting `json:"job_posting,omitempty"`
	ApplicationDate  time.Time   `json:"application_date"`
	Status           string      `gorm:"size:50;default:applied" json:"status"`
	ResumeURL        string      `gorm:"size:200" json:"resume_url"`
	CoverLetter      string      `gorm:"type:text" json:"cover_letter"`
	ApplicationScore float64     `json:"application_score"`
}

// Transition moves the application to next or returns ErrInvalidTransition.
func (a *JobApplication) Transition(next string) error {
	for _, s := range applicationTransitions[a.Status] {
		if s == next {
			a.Status = next
			return nil
		}
	}
	return ErrInvalidTransition
}

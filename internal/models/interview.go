package models

import "time"

const (
	InterviewScheduled = "scheduled"
	InterviewCompleted = "completed"
	InterviewCancelled = "cancelled"
)

type Interview struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	StudentID     uint            `gorm:"index;not null" json:"student_id"`
	CompanyID     uint            `gorm:"index;not null" json:"company_id"`
	ApplicationID *uint           `gorm:"index" json:"application_id,omitempty"`
	Application   *JobApplication `json:"application,omitempty"`
	InterviewDate *time.Time      `json:"interview_date,omitempty"`
	InterviewType string          `gorm:"size:50" json:"interview_type"`
	Duration      int             `json:"duration"`
	Status        string          `gorm:"size:50;default:scheduled" json:"status"`
	Feedback      string          `gorm:"type:text" json:"feedback"`
	Score         *float64        `json:"score,omitempty"`
	RecordingURL  string          `gorm:"size:200" json:"recording_url"`
}

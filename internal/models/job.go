package models

import "time"

type JobPosting struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	CompanyID          uint       `gorm:"index;not null" json:"company_id"`
	Company            *Company   `json:"company,omitempty"`
	Title              string     `gorm:"size:200;not null" json:"title"`
	Description        string     `gorm:"type:text;not null" json:"description"`
	Requirements       string     `gorm:"type:text" json:"requirements"`
	SkillsRequired     []string   `gorm:"serializer:json" json:"skills_required"`
	ExperienceRequired string     `gorm:"size:50" json:"experience_required"`
	Location           string     `gorm:"size:100" json:"location"`
	SalaryRange        string     `gorm:"size:100" json:"salary_range"`
	JobType            string     `gorm:"size:50" json:"job_type"`
	PostedDate         time.Time  `json:"posted_date"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	IsActive           bool       `gorm:"default:true" json:"is_active"`
	TotalApplications  int        `gorm:"default:0" json:"total_applications"`
	ComplexityScore    int        `json:"complexity_score"`
}

// Open reports whether students can still apply at t.
func (j *JobPosting) Open(t time.Time) bool {
	if !j.IsActive {
		return false
	}
	return j.Deadline == nil || !t.After(*j.Deadline)
}

// Skill tracks how often employers ask for a skill.
type Skill struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SkillName   string    `gorm:"size:100;uniqueIndex;not null" json:"skill_name"`
	Category    string    `gorm:"size:50" json:"category"`
	DemandScore float64   `gorm:"default:0" json:"demand_score"`
	CreatedAt   time.Time `json:"created_at"`
}

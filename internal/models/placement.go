package models

import "time"

const (
	PlacementOffered  = "offered"
	PlacementAccepted = "accepted"
	PlacementJoined   = "joined"
	PlacementDeclined = "declined"
)

var placementTransitions = map[string][]string{
	PlacementOffered:  {PlacementAccepted, PlacementDeclined},
	PlacementAccepted: {PlacementJoined},
}

type Placement struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	StudentID      uint       `gorm:"index;not null" json:"student_id"`
	Student        *Student   `json:"student,omitempty"`
	CompanyID      uint       `gorm:"index;not null" json:"company_id"`
	Company        *Company   `json:"company,omitempty"`
	CollegeID      uint       `gorm:"index;not null" json:"college_id"`
	JobRole        string     `gorm:"size:200" json:"job_role"`
	Package        float64    `json:"package"`
	JoiningDate    *time.Time `json:"joining_date,omitempty"`
	OfferLetterURL string     `gorm:"size:200" json:"offer_letter_url"`
	Status         string     `gorm:"size:50;default:offered" json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (p *Placement) Transition(next string) error {
	for _, s := range placementTransitions[p.Status] {
		if s == next {
			p.Status = next
			return nil
		}
	}
	return ErrInvalidTransition
}

package models

const (
	PlacementSeeking     = "seeking"
	PlacementPlaced      = "placed"
	PlacementNotInterest = "not_interested"
)

type Student struct {
	ID                 uint     `gorm:"primaryKey" json:"id"`
	UserID             *uint    `gorm:"uniqueIndex" json:"user_id,omitempty"`
	CollegeID          *uint    `gorm:"index;uniqueIndex:idx_college_roll" json:"college_id,omitempty"`
	College            *College `json:"college,omitempty"`
	RollNumber         *string  `gorm:"size:20;uniqueIndex:idx_college_roll" json:"roll_number,omitempty"`
	Name               string   `gorm:"size:100" json:"name"`
	Email              string   `gorm:"size:100" json:"email"`
	Department         string   `gorm:"size:50;index" json:"department"`
	Year               int      `json:"year"`
	CGPA               float64  `json:"cgpa"`
	Attendance         float64  `json:"attendance"`
	Backlogs           int      `json:"backlogs"`
	CommunicationScore int      `json:"communication_score"`
	TechnicalScore     int      `json:"technical_score"`
	Skills             []string `gorm:"serializer:json" json:"skills"`
	Projects           []string `gorm:"serializer:json" json:"projects"`
	Internships        []string `gorm:"serializer:json" json:"internships"`
	ResumeURL          string   `gorm:"size:200" json:"resume_url"`
	LinkedinURL        string   `gorm:"size:200" json:"linkedin_url"`
	GithubURL          string   `gorm:"size:200" json:"github_url"`
	PlacementStatus    string   `gorm:"size:20;default:seeking" json:"placement_status"`
	PlacementCompany   string   `gorm:"size:100" json:"placement_company"`
	PlacementPackage   float64  `json:"placement_package"`
}

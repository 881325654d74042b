package models

type College struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	UserID          *uint    `gorm:"uniqueIndex" json:"user_id,omitempty"`
	CollegeName     string   `gorm:"size:200;not null" json:"college_name"`
	University      string   `gorm:"size:200" json:"university"`
	Location        string   `gorm:"size:100;index" json:"location"`
	Accreditation   string   `gorm:"size:50" json:"accreditation"`
	Tier            int      `gorm:"default:3" json:"tier"`
	EstablishedYear int      `json:"established_year"`
	TotalStudents   int      `json:"total_students"`
	Departments     []string `gorm:"serializer:json" json:"departments"`
	ContactPerson   string   `gorm:"size:100" json:"contact_person"`
	ContactEmail    string   `gorm:"size:100" json:"contact_email"`
	ContactPhone    string   `gorm:"size:20" json:"contact_phone"`
	Website         string   `gorm:"size:200" json:"website"`
}

// TierFromAccreditation maps a NAAC grade to the 1..3 tier used by the
// talent heatmap when a college did not state one.
func TierFromAccreditation(acc string) int {
	switch acc {
	case "NAAC A++", "NAAC A+":
		return 1
	case "NAAC A", "NAAC B++":
		return 2
	}
	return 3
}

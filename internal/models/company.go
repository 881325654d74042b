package models

type Company struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        *uint  `gorm:"uniqueIndex" json:"user_id,omitempty"`
	CompanyName   string `gorm:"size:200;not null" json:"company_name"`
	Industry      string `gorm:"size:100" json:"industry"`
	Location      string `gorm:"size:100" json:"location"`
	Website       string `gorm:"size:200" json:"website"`
	Description   string `gorm:"type:text" json:"description"`
	ContactPerson string `gorm:"size:100" json:"contact_person"`
	ContactEmail  string `gorm:"size:100" json:"contact_email"`
	ContactPhone  string `gorm:"size:20" json:"contact_phone"`
	Size          string `gorm:"size:50" json:"size"`
	FoundedYear   int    `json:"founded_year"`
}

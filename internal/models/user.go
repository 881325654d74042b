package models

import "time"

const (
	UserTypeStudent = "student"
	UserTypeCollege = "college"
	UserTypeCompany = "company"
)

// User is a login account. Exactly one profile (Student, College or
// Company) hangs off it, matching UserType.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Username      string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash  string    `gorm:"size:200;not null" json:"-"`
	UserType      string    `gorm:"size:20;not null" json:"user_type"`
	FullName      string    `gorm:"size:100" json:"full_name"`
	Phone         string    `gorm:"size:20" json:"phone"`
	WalletAddress *string   `gorm:"size:42;uniqueIndex" json:"wallet_address,omitempty"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ValidUserType(t string) bool {
	switch t {
	case UserTypeStudent, UserTypeCollege, UserTypeCompany:
		return true
	}
	return false
}

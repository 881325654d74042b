package handlers

import (
	"errors"
	"net/http"
	"strings"

	"placementhub/internal/db"
	"placementhub/internal/middleware"
	"placementhub/internal/models"

	"gorm.io/gorm"
)

// GET /api/v1/students/me (student)
func ShowStudent(w http.ResponseWriter, r *http.Request) {
	s, err := currentStudent(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	if s.CollegeID != nil {
		var c models.College
		if err := db.DB.First(&c, *s.CollegeID).Error; err == nil {
			s.College = &c
		}
	}
	writeJSON(w, http.StatusOK, s)
}

type studentUpdate struct {
	Name               *string  `json:"name"`
	Email              *string  `json:"email"`
	CollegeID          *uint    `json:"college_id"`
	RollNumber         *string  `json:"roll_number"`
	Department         *string  `json:"department"`
	Year               *int     `json:"year"`
	CGPA               *float64 `json:"cgpa"`
	Attendance         *float64 `json:"attendance"`
	Backlogs           *int     `json:"backlogs"`
	CommunicationScore *int     `json:"communication_score"`
	TechnicalScore     *int     `json:"technical_score"`
	Skills             []string `json:"skills"`
	Projects           []string `json:"projects"`
	Internships        []string `json:"internships"`
	ResumeURL          *string  `json:"resume_url"`
	LinkedinURL        *string  `json:"linkedin_url"`
	GithubURL          *string  `json:"github_url"`
	PlacementStatus    *string  `json:"placement_status"`
}

func (u *studentUpdate) validate() error {
	switch {
	case u.CGPA != nil && (*u.CGPA < 0 || *u.CGPA > 10):
		return errors.New("cgpa must be between 0 and 10")
	case u.Attendance != nil && (*u.Attendance < 0 || *u.Attendance > 100):
		return errors.New("attendance must be between 0 and 100")
	case u.Backlogs != nil && *u.Backlogs < 0:
		return errors.New("backlogs cannot be negative")
	case u.CommunicationScore != nil && (*u.CommunicationScore < 1 || *u.CommunicationScore > 10):
		return errors.New("communication_score must be between 1 and 10")
	case u.TechnicalScore != nil && (*u.TechnicalScore < 1 || *u.TechnicalScore > 10):
		return errors.New("technical_score must be between 1 and 10")
	}
	if u.PlacementStatus != nil {
		switch *u.PlacementStatus {
		case models.PlacementSeeking, models.PlacementPlaced, models.PlacementNotInterest:
		default:
			return errors.New("placement_status must be seeking, placed or not_interested")
		}
	}
	return nil
}

func (u *studentUpdate) apply(s *models.Student) {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	setString(&s.Name, u.Name)
	setString(&s.Email, u.Email)
	setString(&s.Department, u.Department)
	setString(&s.ResumeURL, u.ResumeURL)
	setString(&s.LinkedinURL, u.LinkedinURL)
	setString(&s.GithubURL, u.GithubURL)
	setString(&s.PlacementStatus, u.PlacementStatus)
	if u.CollegeID != nil {
		s.CollegeID = u.CollegeID
	}
	if u.RollNumber != nil {
		roll := strings.TrimSpace(*u.RollNumber)
		s.RollNumber = &roll
	}
	if u.Year != nil {
		s.Year = *u.Year
	}
	if u.CGPA != nil {
		s.CGPA = *u.CGPA
	}
	if u.Attendance != nil {
		s.Attendance = *u.Attendance
	}
	if u.Backlogs != nil {
		s.Backlogs = *u.Backlogs
	}
	if u.CommunicationScore != nil {
		s.CommunicationScore = *u.CommunicationScore
	}
	if u.TechnicalScore != nil {
		s.TechnicalScore = *u.TechnicalScore
	}
	if u.Skills != nil {
		s.Skills = u.Skills
	}
	if u.Projects != nil {
		s.Projects = u.Projects
	}
	if u.Internships != nil {
		s.Internships = u.Internships
	}
}

// UpdateStudent edits the caller's profile. Joining a college with a roll
// number that a bulk import already created merges the two: the imported
// row is claimed by this account, provided the roster email is the
// account's email.
// PUT /api/v1/students/me (student)
func UpdateStudent(w http.ResponseWriter, r *http.Request) {
	var body studentUpdate
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := body.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s, err := currentStudent(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	body.apply(s)

	if s.CollegeID != nil {
		var c models.College
		if err := db.DB.First(&c, *s.CollegeID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusBadRequest, "college not found")
			return
		} else if err != nil {
			serverError(w, r, "database error", err)
			return
		}
	}

	uid, _, _ := middleware.Caller(r.Context())
	var account models.User
	if err := db.DB.First(&account, uid).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if s.CollegeID != nil && s.RollNumber != nil && *s.RollNumber != "" {
			var imported models.Student
			err := tx.Where("college_id = ? AND roll_number = ? AND id <> ?", *s.CollegeID, *s.RollNumber, s.ID).
				First(&imported).Error
			if err == nil {
				if imported.UserID != nil {
					return errRollTaken
				}
				if imported.Email == "" || !strings.EqualFold(strings.TrimSpace(imported.Email), account.Email) {
					return errClaimEmail
				}
				for _, owned := range []any{&models.Certificate{}, &models.Placement{}} {
					if err := tx.Model(owned).Where("student_id = ?", imported.ID).
						Update("student_id", s.ID).Error; err != nil {
						return err
					}
				}
				if err := tx.Delete(&imported).Error; err != nil {
					return err
				}
				mergeImported(s, &imported)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		return tx.Save(s).Error
	})
	if errors.Is(err, errRollTaken) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if errors.Is(err, errClaimEmail) {
		writeError(w, http.StatusForbidden, err.Error())
		return
	}
	if err != nil {
		serverError(w, r, "failed to update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

var (
	errRollTaken  = errors.New("roll number already claimed by another account")
	errClaimEmail = errors.New("roll number is registered to a different email address")
)

// mergeImported fills fields the student left empty from a roster row.
func mergeImported(s, imported *models.Student) {
	if s.Department == "" {
		s.Department = imported.Department
	}
	if s.Year == 0 {
		s.Year = imported.Year
	}
	if s.CGPA == 0 {
		s.CGPA = imported.CGPA
	}
	if s.Attendance == 0 {
		s.Attendance = imported.Attendance
	}
	if len(s.Skills) == 0 {
		s.Skills = imported.Skills
	}
}

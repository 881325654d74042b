// Package seed loads demo accounts and a synthetic student cohort.
package seed

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"placementhub/internal/auth"
	"placementhub/internal/jobparser"
	"placementhub/internal/logger"
	"placementhub/internal/models"
	"placementhub/internal/predict"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DemoPassword = "password123"

var ErrAlreadySeeded = errors.New("demo data already present")

type Summary struct {
	Users      int
	Students   int
	Placements int
}

var cohortSkills = []string{
	"Python", "Java", "JavaScript", "SQL", "React", "Node.js", "AWS", "Docker",
	"Machine Learning", "Git", "Linux", "Communication", "Teamwork", "Go",
}

var packages = []float64{4.5, 6, 7.5, 9, 12, 18}

// Run creates the demo student1, college1 and company1 accounts and a
// cohort of n synthetic students on the demo college's roster. Placed
// students get offers spread over the twelve months before now.
func Run(conn *gorm.DB, n int, now time.Time) (Summary, error) {
	var sum Summary
	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return sum, err
	}
	err = conn.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Where("username = ?", "college1").Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadySeeded
		}

		users := map[string]*models.User{}
		for _, u := range []struct{ name, kind, full string }{
			{"student1", models.UserTypeStudent, "Demo Student"},
			{"college1", models.UserTypeCollege, "Demo Institute of Technology"},
			{"company1", models.UserTypeCompany, "Demo Tech Pvt Ltd"},
		} {
			user := &models.User{
				Username:     u.name,
				Email:        u.name + "@demo.placementhub.local",
				PasswordHash: hash,
				UserType:     u.kind,
				FullName:     u.full,
				IsActive:     true,
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			users[u.name] = user
			sum.Users++
		}

		college := &models.College{
			UserID:          &users["college1"].ID,
			CollegeName:     "Demo Institute of Technology",
			University:      "Demo Technical University",
			Location:        "Bengaluru",
			Accreditation:   "NAAC A+",
			Tier:            models.TierFromAccreditation("NAAC A+"),
			EstablishedYear: 1998,
			Departments:     predict.Departments,
			ContactEmail:    users["college1"].Email,
		}
		if err := tx.Create(college).Error; err != nil {
			return err
		}
		company := &models.Company{
			UserID:       &users["company1"].ID,
			CompanyName:  "Demo Tech Pvt Ltd",
			Industry:     "Software",
			Location:     "Bengaluru",
			Size:         "201-500",
			ContactEmail: users["company1"].Email,
		}
		if err := tx.Create(company).Error; err != nil {
			return err
		}

		roll := "DEMO0001"
		me := &models.Student{
			UserID:             &users["student1"].ID,
			CollegeID:          &college.ID,
			RollNumber:         &roll,
			Name:               "Demo Student",
			Email:              users["student1"].Email,
			Department:         "CSE",
			Year:               4,
			CGPA:               8.2,
			Attendance:         91,
			CommunicationScore: 7,
			TechnicalScore:     8,
			Skills:             []string{"Python", "SQL", "React", "Git"},
			Projects:           []string{"Placement tracker", "Chat app"},
			Internships:        []string{"Summer analytics intern"},
			PlacementStatus:    models.PlacementSeeking,
		}
		if err := tx.Create(me).Error; err != nil {
			return err
		}
		sum.Students++

		rng := rand.New(rand.NewSource(42))
		for i, row := range predict.SampleDataset(n, 42) {
			st := cohortStudent(i, row, college.ID, rng)
			if err := tx.Create(st).Error; err != nil {
				return err
			}
			sum.Students++
			if !row.Placed {
				continue
			}
			pkg := packages[rng.Intn(len(packages))]
			p := &models.Placement{
				StudentID: st.ID,
				CompanyID: company.ID,
				CollegeID: college.ID,
				JobRole:   "Graduate Engineer",
				Package:   pkg,
				Status:    models.PlacementJoined,
				CreatedAt: now.AddDate(0, -rng.Intn(12), -rng.Intn(28)),
			}
			if err := tx.Create(p).Error; err != nil {
				return err
			}
			if err := tx.Model(st).Updates(map[string]any{
				"placement_company": company.CompanyName,
				"placement_package": pkg,
			}).Error; err != nil {
				return err
			}
			sum.Placements++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	logger.L.Info("seeded demo data",
		zap.Int("users", sum.Users),
		zap.Int("students", sum.Students),
		zap.Int("placements", sum.Placements))
	return sum, nil
}

func cohortStudent(i int, row predict.Row, collegeID uint, rng *rand.Rand) *models.Student {
	roll := fmt.Sprintf("SYN%04d", i+1)
	st := &models.Student{
		CollegeID:          &collegeID,
		RollNumber:         &roll,
		Name:               fmt.Sprintf("Student %04d", i+1),
		Department:         row.Department,
		Year:               4,
		CGPA:               row.CGPA,
		Attendance:         float64(70 + rng.Intn(31)),
		Backlogs:           int(row.Backlogs),
		CommunicationScore: int(row.CommunicationScore),
		TechnicalScore:     int(row.TechnicalScore),
		PlacementStatus:    models.PlacementSeeking,
	}
	for k := 0; k < int(row.Internships); k++ {
		st.Internships = append(st.Internships, fmt.Sprintf("Internship %d", k+1))
	}
	for k := 0; k < int(row.Projects); k++ {
		st.Projects = append(st.Projects, fmt.Sprintf("Project %d", k+1))
	}
	for _, k := range rng.Perm(len(cohortSkills))[:3+rng.Intn(3)] {
		st.Skills = append(st.Skills, jobparser.Canonical(cohortSkills[k]))
	}
	if row.Placed {
		st.PlacementStatus = models.PlacementPlaced
	}
	return st
}

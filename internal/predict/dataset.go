// Package predict trains and serves the placement likelihood model.
package predict

import (
	"math"
	"math/rand"

	"placementhub/internal/models"
)

var FeatureNames = []string{"cgpa", "internships", "projects", "backlogs", "communication_score", "technical_score"}

type Features struct {
	CGPA               float64 `json:"cgpa"`
	Internships        float64 `json:"internships"`
	Projects           float64 `json:"projects"`
	Backlogs           float64 `json:"backlogs"`
	CommunicationScore float64 `json:"communication_score"`
	TechnicalScore     float64 `json:"technical_score"`
}

func (f Features) Vector() []float64 {
	return []float64{f.CGPA, f.Internships, f.Projects, f.Backlogs, f.CommunicationScore, f.TechnicalScore}
}

// FromStudent reads the model features off a student profile.
func FromStudent(s *models.Student) Features {
	return Features{
		CGPA:               s.CGPA,
		Internships:        float64(len(s.Internships)),
		Projects:           float64(len(s.Projects)),
		Backlogs:           float64(s.Backlogs),
		CommunicationScore: float64(s.CommunicationScore),
		TechnicalScore:     float64(s.TechnicalScore),
	}
}

type Row struct {
	Features
	Department string `json:"department"`
	Placed     bool   `json:"placed"`
}

var Departments = []string{"CSE", "ECE", "ME", "CE", "IT"}

// Formula is the placement score the synthetic cohort is labelled with;
// a student counts as placed above 5.
func Formula(f Features) float64 {
	return f.CGPA*0.3 + f.Internships*0.2 + f.Projects*0.15 +
		f.CommunicationScore*0.15 + f.TechnicalScore*0.2 - f.Backlogs*0.5
}

// SampleDataset generates a reproducible synthetic cohort of n students.
func SampleDataset(n int, seed int64) []Row {
	rng := rand.New(rand.NewSource(seed))
	rows := make([]Row, n)
	for i := range rows {
		f := Features{
			CGPA:               math.Round((6+rng.Float64()*4)*100) / 100,
			Internships:        float64(rng.Intn(4)),
			Projects:           float64(rng.Intn(6)),
			Backlogs:           float64(rng.Intn(3)),
			CommunicationScore: float64(1 + rng.Intn(10)),
			TechnicalScore:     float64(1 + rng.Intn(10)),
		}
		rows[i] = Row{
			Features:   f,
			Department: Departments[rng.Intn(len(Departments))],
			Placed:     Formula(f) > 5.0,
		}
	}
	return rows
}

// RowsFromStudents labels a college roster for training. Students who opted
// out of placement are left out.
func RowsFromStudents(students []models.Student) []Row {
	rows := make([]Row, 0, len(students))
	for i := range students {
		s := &students[i]
		if s.PlacementStatus == models.PlacementNotInterest {
			continue
		}
		rows = append(rows, Row{
			Features:   FromStudent(s),
			Department: s.Department,
			Placed:     s.PlacementStatus == models.PlacementPlaced,
		})
	}
	return rows
}

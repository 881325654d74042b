// Package nep scores a college against the NEP 2020 guideline categories.
package nep

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type Guideline struct {
	Key         string   `json:"key"`
	Description string   `json:"description"`
	Weight      float64  `json:"weight"`
	Indicators  []string `json:"indicators"`
}

var Guidelines = []Guideline{
	{"academic_flexibility", "Multiple entry/exit options", 20, []string{"Credit transfer", "Multiple entry points", "Exit options with certificates"}},
	{"multidisciplinary", "Interdisciplinary learning", 25, []string{"Minor programs", "Elective courses", "Cross-department courses"}},
	{"skill_development", "Vocational and skill-based education", 15, []string{"Skill courses", "Industry internships", "Certification programs"}},
	{"technology_integration", "Digital and online learning", 20, []string{"Online courses", "Digital resources", "Blended learning"}},
	{"research_innovation", "Research and innovation focus", 10, []string{"Research projects", "Innovation cells", "Patent support"}},
	{"internationalization", "Global exposure and collaboration", 10, []string{"Foreign collaborations", "Student exchange", "Global curriculum"}},
}

// Submission maps a category key to the indicators the college has
// implemented.
type Submission map[string][]string

type CategoryScore struct {
	Score       float64  `json:"score"`
	MaxScore    float64  `json:"max_score"`
	Implemented []string `json:"implemented"`
	Pending     []string `json:"pending"`
}

type Recommendation struct {
	Priority string `json:"priority"`
	Category string `json:"category"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
}

type Result struct {
	OverallScore    float64                  `json:"overall_score"`
	MaxScore        float64                  `json:"max_score"`
	ComplianceLevel string                   `json:"compliance_level"`
	CategoryScores  map[string]CategoryScore `json:"category_scores"`
	TotalIndicators int                      `json:"total_indicators"`
	Recommendations []Recommendation         `json:"recommendations"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func Level(score float64) string {
	switch {
	case score >= 85:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 50:
		return "Average"
	}
	return "Poor"
}

// Score rates a submission. Indicators that are not part of a category are
// ignored, as are repeats.
func Score(sub Submission) Result {
	res := Result{MaxScore: 100, CategoryScores: map[string]CategoryScore{}}
	total := 0.0
	for _, g := range Guidelines {
		res.TotalIndicators += len(g.Indicators)
		done := map[string]bool{}
		for _, ind := range sub[g.Key] {
			for _, known := range g.Indicators {
				if strings.EqualFold(strings.TrimSpace(ind), known) {
					done[known] = true
				}
			}
		}
		cs := CategoryScore{MaxScore: g.Weight, Implemented: []string{}, Pending: []string{}}
		for _, ind := range g.Indicators {
			if done[ind] {
				cs.Implemented = append(cs.Implemented, ind)
			} else {
				cs.Pending = append(cs.Pending, ind)
			}
		}
		score := float64(len(cs.Implemented)) / float64(len(g.Indicators)) * g.Weight
		cs.Score = round1(score)
		total += score
		res.CategoryScores[g.Key] = cs
	}
	res.OverallScore = round1(total)
	res.ComplianceLevel = Level(total)
	res.Recommendations = Recommendations(res)
	return res
}

func titleCase(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Recommendations lists categories under 80% of their weight, High
// priority first.
func Recommendations(res Result) []Recommendation {
	out := []Recommendation{}
	for _, g := range Guidelines {
		cs, ok := res.CategoryScores[g.Key]
		if !ok || cs.Score >= cs.MaxScore*0.8 {
			continue
		}
		priority := "Medium"
		if cs.Score < cs.MaxScore*0.5 {
			priority = "High"
		}
		pending := cs.Pending
		if len(pending) > 2 {
			pending = pending[:2]
		}
		name := titleCase(g.Key)
		out = append(out, Recommendation{
			Priority: priority,
			Category: name,
			Action:   "Implement: " + strings.Join(pending, ", "),
			Impact:   fmt.Sprintf("Increase %s score by %.1f points", name, cs.MaxScore-cs.Score),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority == "High" && out[j].Priority != "High"
	})
	return out
}

// Progress is one stored assessment with the change since the previous
// one.
type Progress struct {
	ID              uint    `json:"id"`
	Date            string  `json:"date"`
	OverallScore    float64 `json:"overall_score"`
	ComplianceLevel string  `json:"compliance_level"`
	Delta           float64 `json:"delta"`
}

// Entry is the stored form an assessment history is built from.
type Entry struct {
	ID    uint
	Date  string
	Score float64
	Level string
}

// History orders entries as given and fills the delta to the previous one.
func History(entries []Entry) []Progress {
	out := make([]Progress, 0, len(entries))
	for i, e := range entries {
		p := Progress{ID: e.ID, Date: e.Date, OverallScore: e.Score, ComplianceLevel: e.Level}
		if i > 0 {
			p.Delta = round1(e.Score - entries[i-1].Score)
		}
		out = append(out, p)
	}
	return out
}

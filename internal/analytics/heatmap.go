package analytics

import (
	"errors"
	"sort"
	"strings"

	"placementhub/internal/jobparser"
)

var (
	ErrNoRequiredSkills = errors.New("at least one required skill is needed")
	ErrSortBy           = errors.New("sort_by must be talent_count, avg_cgpa, placement_rate or tier")
)

// StudentFacts is the slice of a student profile the heatmap aggregates.
type StudentFacts struct {
	College  string
	Location string
	Tier     int
	CGPA     float64
	Placed   bool
	Skills   []string
}

type HeatRow struct {
	College       string  `json:"college"`
	Location      string  `json:"location"`
	Tier          int     `json:"tier"`
	Skill         string  `json:"skill"`
	TalentCount   int     `json:"talent_count"`
	AvgCGPA       float64 `json:"avg_cgpa"`
	PlacementRate float64 `json:"placement_rate"`
}

// HeatmapRows groups students into one row per college and skill. The
// placement rate is the college's overall rate.
func HeatmapRows(students []StudentFacts) []HeatRow {
	type acc struct {
		row     HeatRow
		cgpaSum float64
	}
	type college struct {
		location      string
		tier          int
		total, placed int
	}
	colleges := map[string]*college{}
	cells := map[[2]string]*acc{}

	for _, s := range students {
		c, ok := colleges[s.College]
		if !ok {
			c = &college{location: s.Location, tier: s.Tier}
			colleges[s.College] = c
		}
		c.total++
		if s.Placed {
			c.placed++
		}
		seen := map[string]bool{}
		for _, sk := range s.Skills {
			sk = jobparser.Canonical(sk)
			if sk == "" || seen[strings.ToLower(sk)] {
				continue
			}
			seen[strings.ToLower(sk)] = true
			key := [2]string{s.College, sk}
			a, ok := cells[key]
			if !ok {
				a = &acc{row: HeatRow{College: s.College, Location: s.Location, Tier: s.Tier, Skill: sk}}
				cells[key] = a
			}
			a.row.TalentCount++
			a.cgpaSum += s.CGPA
		}
	}

	rows := make([]HeatRow, 0, len(cells))
	for key, a := range cells {
		c := colleges[key[0]]
		a.row.AvgCGPA = round(a.cgpaSum/float64(a.row.TalentCount), 2)
		a.row.PlacementRate = round(float64(c.placed)/float64(c.total)*100, 1)
		rows = append(rows, a.row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].College != rows[j].College {
			return rows[i].College < rows[j].College
		}
		return rows[i].Skill < rows[j].Skill
	})
	return rows
}

type Filter struct {
	Locations        []string `json:"locations"`
	Tiers            []int    `json:"tiers"`
	Skills           []string `json:"skills"`
	MinCGPA          float64  `json:"min_cgpa"`
	MinPlacementRate float64  `json:"min_placement_rate"`
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}

// FilterRows keeps rows matching every set criterion.
func FilterRows(rows []HeatRow, f Filter) []HeatRow {
	out := make([]HeatRow, 0, len(rows))
	for _, r := range rows {
		if len(f.Locations) > 0 && !containsFold(f.Locations, r.Location) {
			continue
		}
		if len(f.Tiers) > 0 {
			ok := false
			for _, t := range f.Tiers {
				ok = ok || t == r.Tier
			}
			if !ok {
				continue
			}
		}
		if len(f.Skills) > 0 && !containsFold(f.Skills, r.Skill) {
			continue
		}
		if r.AvgCGPA < f.MinCGPA || r.PlacementRate < f.MinPlacementRate {
			continue
		}
		out = append(out, r)
	}
	return out
}

type HeatMetrics struct {
	TotalTalent  int     `json:"total_talent"`
	AvgCGPA      float64 `json:"avg_cgpa"`
	AvgPlacement float64 `json:"avg_placement"`
	TopColleges  []Count `json:"top_colleges"`
	TopSkills    []Count `json:"top_skills"`
	TopLocations []Count `json:"top_locations"`
	CollegeCount int     `json:"college_count"`
	SkillCount   int     `json:"skill_count"`
}

func Metrics(rows []HeatRow) HeatMetrics {
	m := HeatMetrics{}
	colleges, skills, locations := map[string]int{}, map[string]int{}, map[string]int{}
	var cgpa, placement float64
	for _, r := range rows {
		m.TotalTalent += r.TalentCount
		cgpa += r.AvgCGPA
		placement += r.PlacementRate
		colleges[r.College] += r.TalentCount
		skills[r.Skill] += r.TalentCount
		locations[r.Location] += r.TalentCount
	}
	if n := float64(len(rows)); n > 0 {
		m.AvgCGPA = round(cgpa/n, 2)
		m.AvgPlacement = round(placement/n, 1)
	}
	m.TopColleges = topN(colleges, 5)
	m.TopSkills = topN(skills, 5)
	m.TopLocations = topN(locations, 5)
	m.CollegeCount = len(colleges)
	m.SkillCount = len(skills)
	return m
}

type SearchQuery struct {
	Filter
	MinTalentPerCollege int    `json:"min_talent_per_college"`
	SortBy              string `json:"sort_by"`
}

type CollegeMatch struct {
	College       string  `json:"college"`
	Location      string  `json:"location"`
	Tier          int     `json:"tier"`
	TalentCount   int     `json:"talent_count"`
	AvgCGPA       float64 `json:"avg_cgpa"`
	PlacementRate float64 `json:"placement_rate"`
}

// Search finds colleges that cover every required skill and have at least
// MinTalentPerCollege matching students in total.
func Search(rows []HeatRow, q SearchQuery) ([]CollegeMatch, error) {
	if len(q.Skills) == 0 {
		return nil, ErrNoRequiredSkills
	}
	if q.SortBy == "" {
		q.SortBy = "talent_count"
	}
	switch q.SortBy {
	case "talent_count", "avg_cgpa", "placement_rate", "tier":
	default:
		return nil, ErrSortBy
	}

	byCollege := map[string][]HeatRow{}
	var order []string
	for _, r := range FilterRows(rows, q.Filter) {
		if _, ok := byCollege[r.College]; !ok {
			order = append(order, r.College)
		}
		byCollege[r.College] = append(byCollege[r.College], r)
	}

	out := []CollegeMatch{}
	for _, name := range order {
		rs := byCollege[name]
		covered := true
		for _, want := range q.Skills {
			found := false
			for _, r := range rs {
				found = found || strings.EqualFold(r.Skill, strings.TrimSpace(want))
			}
			covered = covered && found
		}
		if !covered {
			continue
		}
		m := CollegeMatch{College: name, Location: rs[0].Location, Tier: rs[0].Tier}
		var cgpa, placement float64
		for _, r := range rs {
			m.TalentCount += r.TalentCount
			cgpa += r.AvgCGPA
			placement += r.PlacementRate
		}
		if m.TalentCount < q.MinTalentPerCollege {
			continue
		}
		m.AvgCGPA = round(cgpa/float64(len(rs)), 2)
		m.PlacementRate = round(placement/float64(len(rs)), 1)
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch q.SortBy {
		case "avg_cgpa":
			return a.AvgCGPA > b.AvgCGPA
		case "placement_rate":
			return a.PlacementRate > b.PlacementRate
		case "tier":
			return a.Tier < b.Tier
		}
		return a.TalentCount > b.TalentCount
	})
	return out, nil
}

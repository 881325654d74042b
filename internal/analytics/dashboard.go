// Package analytics computes the college placement dashboard, the
// placement forecast and the company-facing talent heatmap.
package analytics

import (
	"errors"
	"math"
	"sort"
	"time"
)

// CacheTTL bounds how stale a cached dashboard or heatmap may be.
const CacheTTL = 5 * time.Minute

var ErrNotEnoughData = errors.New("need at least two months of placement history")

// PlacementRecord is one placement as the dashboard sees it.
type PlacementRecord struct {
	Department string
	Company    string
	Package    float64
	Date       time.Time
}

type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type MonthCount struct {
	Month      string `json:"month"`
	Placements int    `json:"placements"`
}

type Dashboard struct {
	CollegeID             uint           `json:"college_id"`
	Year                  int            `json:"year"`
	RegisteredStudents    int            `json:"registered_students"`
	TotalPlacements       int            `json:"total_placements"`
	AveragePackage        float64        `json:"average_package"`
	PlacementRate         float64        `json:"placement_rate"`
	TopCompanies          []Count        `json:"top_companies"`
	DepartmentPerformance map[string]int `json:"department_performance"`
	Monthly               []MonthCount   `json:"monthly"`
}

const monthLayout = "2006-01"

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// topN sorts counts descending (name ascending on ties) and keeps n.
func topN(counts map[string]int, n int) []Count {
	out := make([]Count, 0, len(counts))
	for k, v := range counts {
		out = append(out, Count{Name: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// BuildDashboard summarises the placements of one college in year.
// registered is the number of students on the college roster.
func BuildDashboard(collegeID uint, year, registered int, recs []PlacementRecord) Dashboard {
	d := Dashboard{
		CollegeID:             collegeID,
		Year:                  year,
		RegisteredStudents:    registered,
		TopCompanies:          []Count{},
		DepartmentPerformance: map[string]int{},
	}
	companies := map[string]int{}
	months := make([]int, 12)
	total := 0.0
	for _, r := range recs {
		if r.Date.Year() != year {
			continue
		}
		d.TotalPlacements++
		total += r.Package
		companies[r.Company]++
		d.DepartmentPerformance[r.Department]++
		months[r.Date.Month()-1]++
	}
	if d.TotalPlacements > 0 {
		d.AveragePackage = round(total/float64(d.TotalPlacements), 2)
	}
	if registered > 0 {
		d.PlacementRate = round(float64(d.TotalPlacements)/float64(registered)*100, 2)
	}
	d.TopCompanies = topN(companies, 5)
	for i, n := range months {
		d.Monthly = append(d.Monthly, MonthCount{
			Month:      time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC).Format(monthLayout),
			Placements: n,
		})
	}
	return d
}

// MonthlySeries counts placements per month from the first to the last
// month present, with empty months as zero.
func MonthlySeries(recs []PlacementRecord) []MonthCount {
	if len(recs) == 0 {
		return nil
	}
	counts := map[string]int{}
	first, last := recs[0].Date, recs[0].Date
	for _, r := range recs {
		counts[r.Date.Format(monthLayout)]++
		if r.Date.Before(first) {
			first = r.Date
		}
		if r.Date.After(last) {
			last = r.Date
		}
	}
	var out []MonthCount
	m := time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !m.After(end) {
		k := m.Format(monthLayout)
		out = append(out, MonthCount{Month: k, Placements: counts[k]})
		m = m.AddDate(0, 1, 0)
	}
	return out
}

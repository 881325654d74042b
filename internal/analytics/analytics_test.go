package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDashboard(t *testing.T) {
	recs := []PlacementRecord{
		{Department: "CSE", Company: "Acme", Package: 12, Date: day(2024, 1, 10)},
		{Department: "CSE", Company: "Acme", Package: 10, Date: day(2024, 1, 20)},
		{Department: "ECE", Company: "Globex", Package: 8, Date: day(2024, 3, 5)},
		{Department: "ME", Company: "Initech", Package: 6, Date: day(2023, 12, 1)},
	}
	d := BuildDashboard(4, 2024, 30, recs)

	assert.Equal(t, 3, d.TotalPlacements)
	assert.Equal(t, 10.0, d.AveragePackage)
	assert.Equal(t, 10.0, d.PlacementRate)
	assert.Equal(t, []Count{{"Acme", 2}, {"Globex", 1}}, d.TopCompanies)
	assert.Equal(t, map[string]int{"CSE": 2, "ECE": 1}, d.DepartmentPerformance)
	require.Len(t, d.Monthly, 12)
	assert.Equal(t, MonthCount{"2024-01", 2}, d.Monthly[0])
	assert.Equal(t, MonthCount{"2024-03", 1}, d.Monthly[2])
}

func TestBuildDashboardNoStudents(t *testing.T) {
	d := BuildDashboard(1, 2024, 0, nil)
	assert.Equal(t, 0.0, d.PlacementRate)
	assert.Empty(t, d.TopCompanies)
}

func TestMonthlySeries(t *testing.T) {
	s := MonthlySeries([]PlacementRecord{
		{Date: day(2024, 3, 1)},
		{Date: day(2023, 11, 2)},
		{Date: day(2024, 3, 9)},
	})
	assert.Equal(t, []MonthCount{
		{"2023-11", 1}, {"2023-12", 0}, {"2024-01", 0}, {"2024-02", 0}, {"2024-03", 2},
	}, s)
	assert.Nil(t, MonthlySeries(nil))
}

func TestBuildForecast(t *testing.T) {
	hist := []MonthCount{{"2024-01", 2}, {"2024-02", 4}, {"2024-03", 6}}
	f, err := BuildForecast(hist, 3)
	require.NoError(t, err)

	assert.Equal(t, 2.0, f.Slope)
	assert.Equal(t, 2.0, f.Intercept)
	require.Len(t, f.Points, 3)
	assert.Equal(t, ForecastPoint{Month: "2024-04", Predicted: 8, Lower: 7.2, Upper: 8.8}, f.Points[0])
	assert.Equal(t, "2024-06", f.Points[2].Month)
	assert.Equal(t, 10.0, f.AverageMonthly)
	assert.Equal(t, 50.0, f.GrowthRate)
	assert.Equal(t, "2024-06", f.PeakMonth)
}

func TestBuildForecastClampsAtZero(t *testing.T) {
	f, err := BuildForecast([]MonthCount{{"2024-01", 10}, {"2024-02", 0}}, 0)
	require.NoError(t, err)
	assert.Len(t, f.Points, DefaultForecastPeriods)
	for _, p := range f.Points {
		assert.GreaterOrEqual(t, p.Predicted, 0.0)
	}
	assert.Equal(t, 0.0, f.GrowthRate)
}

func TestBuildForecastErrors(t *testing.T) {
	_, err := BuildForecast([]MonthCount{{"2024-01", 1}}, 12)
	assert.ErrorIs(t, err, ErrNotEnoughData)
	_, err = BuildForecast([]MonthCount{{"2024-01", 1}, {"2024-02", 1}}, 37)
	assert.ErrorIs(t, err, ErrForecastPeriods)
}

func sampleStudents() []StudentFacts {
	return []StudentFacts{
		{College: "PICT", Location: "Pune", Tier: 2, CGPA: 8, Placed: true, Skills: []string{"python", "SQL"}},
		{College: "PICT", Location: "Pune", Tier: 2, CGPA: 9, Placed: false, Skills: []string{"Python", "Docker"}},
		{College: "COEP", Location: "Pune", Tier: 1, CGPA: 8.5, Placed: true, Skills: []string{"Java", "SQL"}},
		{College: "VIT", Location: "Vellore", Tier: 2, CGPA: 7, Placed: true, Skills: []string{"Python", "SQL", "python"}},
	}
}

func TestHeatmapRows(t *testing.T) {
	rows := HeatmapRows(sampleStudents())
	require.Len(t, rows, 7)
	assert.Equal(t, HeatRow{College: "COEP", Location: "Pune", Tier: 1, Skill: "Java", TalentCount: 1, AvgCGPA: 8.5, PlacementRate: 100}, rows[0])

	var py HeatRow
	for _, r := range rows {
		if r.College == "PICT" && r.Skill == "Python" {
			py = r
		}
	}
	assert.Equal(t, 2, py.TalentCount)
	assert.Equal(t, 8.5, py.AvgCGPA)
	assert.Equal(t, 50.0, py.PlacementRate)
}

func TestFilterAndMetrics(t *testing.T) {
	rows := HeatmapRows(sampleStudents())

	pune := FilterRows(rows, Filter{Locations: []string{"pune"}})
	assert.Len(t, pune, 5)

	tier1 := FilterRows(rows, Filter{Tiers: []int{1}})
	assert.Len(t, tier1, 2)

	placed := FilterRows(rows, Filter{MinPlacementRate: 90})
	for _, r := range placed {
		assert.NotEqual(t, "PICT", r.College)
	}

	m := Metrics(rows)
	assert.Equal(t, 8, m.TotalTalent)
	assert.Equal(t, 3, m.CollegeCount)
	assert.Equal(t, 4, m.SkillCount)
	assert.Equal(t, Count{"PICT", 4}, m.TopColleges[0])
	assert.Equal(t, Count{"Pune", 6}, m.TopLocations[0])
	assert.ElementsMatch(t, []Count{{"Python", 3}, {"SQL", 3}, {"Docker", 1}, {"Java", 1}}, m.TopSkills)
}

func TestSearch(t *testing.T) {
	rows := HeatmapRows(sampleStudents())

	res, err := Search(rows, SearchQuery{Filter: Filter{Skills: []string{"Python", "SQL"}}})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "PICT", res[0].College)
	assert.Equal(t, 3, res[0].TalentCount)
	assert.Equal(t, "VIT", res[1].College)

	res, err = Search(rows, SearchQuery{Filter: Filter{Skills: []string{"Python", "SQL"}}, SortBy: "avg_cgpa"})
	require.NoError(t, err)
	assert.Equal(t, "PICT", res[0].College)

	res, err = Search(rows, SearchQuery{Filter: Filter{Skills: []string{"SQL"}}, SortBy: "tier"})
	require.NoError(t, err)
	assert.Equal(t, "COEP", res[0].College)

	res, err = Search(rows, SearchQuery{Filter: Filter{Skills: []string{"Python", "SQL"}}, MinTalentPerCollege: 3})
	require.NoError(t, err)
	require.Len(t, res, 1)

	_, err = Search(rows, SearchQuery{})
	assert.ErrorIs(t, err, ErrNoRequiredSkills)
	_, err = Search(rows, SearchQuery{Filter: Filter{Skills: []string{"SQL"}}, SortBy: "vibes"})
	assert.ErrorIs(t, err, ErrSortBy)
}

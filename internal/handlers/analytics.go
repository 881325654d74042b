package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"placementhub/internal/analytics"
	"placementhub/internal/cache"
	"placementhub/internal/db"
	"placementhub/internal/logger"
	"placementhub/internal/models"

	"go.uber.org/zap"
)

const heatmapKey = "analytics:heatmap:rows"

// placementRecords loads the college's placements, declined offers
// excluded, in the shape the dashboard aggregates.
func placementRecords(collegeID uint) ([]analytics.PlacementRecord, error) {
	var ps []models.Placement
	if err := db.DB.Preload("Student").Preload("Company").
		Where("college_id = ? AND status <> ?", collegeID, models.PlacementDeclined).
		Order("created_at").
		Find(&ps).Error; err != nil {
		return nil, err
	}
	recs := make([]analytics.PlacementRecord, 0, len(ps))
	for _, p := range ps {
		rec := analytics.PlacementRecord{Package: p.Package, Date: p.CreatedAt}
		if p.Student != nil {
			rec.Department = p.Student.Department
		}
		if p.Company != nil {
			rec.Company = p.Company.CompanyName
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Dashboard summarises a year of placements for the calling college.
// GET /api/v1/analytics/dashboard?year= (college)
func Dashboard(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1900 || y > 3000 {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = y
	}
	college, err := currentCollege(r)
	if err != nil {
		profileError(w, r, err)
		return
	}

	key := fmt.Sprintf("analytics:dashboard:%d:%d", college.ID, year)
	var d analytics.Dashboard
	if err := cache.GetJSON(r.Context(), cache.Default, key, &d); err == nil {
		writeJSON(w, http.StatusOK, d)
		return
	}

	var registered int64
	if err := db.DB.Model(&models.Student{}).Where("college_id = ?", college.ID).Count(&registered).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}
	recs, err := placementRecords(college.ID)
	if err != nil {
		serverError(w, r, "database error", err)
		return
	}
	d = analytics.BuildDashboard(college.ID, year, int(registered), recs)

	snapshot := models.Analytics{
		MetricName:  "placement_rate",
		MetricValue: d.PlacementRate,
		MetricDate:  time.Now(),
		EntityType:  "college",
		EntityID:    college.ID,
		AdditionalData: map[string]any{
			"year":             year,
			"total_placements": d.TotalPlacements,
			"average_package":  d.AveragePackage,
		},
	}
	if err := db.DB.Create(&snapshot).Error; err != nil {
		logger.L.Warn("failed to record analytics snapshot", zap.Error(err))
	}
	if err := cache.SetJSON(r.Context(), cache.Default, key, d, analytics.CacheTTL); err != nil {
		logger.L.Warn("failed to cache dashboard", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, d)
}

// GET /api/v1/analytics/forecast?periods= (college)
func Forecast(w http.ResponseWriter, r *http.Request) {
	periods := 0
	if v := r.URL.Query().Get("periods"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid periods")
			return
		}
		periods = p
	}
	college, err := currentCollege(r)
	if err != nil {
		profileError(w, r, err)
		return
	}
	recs, err := placementRecords(college.ID)
	if err != nil {
		serverError(w, r, "database error", err)
		return
	}
	history := analytics.MonthlySeries(recs)
	f, err := analytics.BuildForecast(history, periods)
	if errors.Is(err, analytics.ErrNotEnoughData) || errors.Is(err, analytics.ErrForecastPeriods) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		serverError(w, r, "forecast failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history, "forecast": f})
}

// heatRows returns the campus talent rows, cached across requests.
func heatRows(r *http.Request) ([]analytics.HeatRow, error) {
	var rows []analytics.HeatRow
	if err := cache.GetJSON(r.Context(), cache.Default, heatmapKey, &rows); err == nil {
		return rows, nil
	}
	var students []models.Student
	if err := db.DB.Preload("College").Where("college_id IS NOT NULL").Find(&students).Error; err != nil {
		return nil, err
	}
	facts := make([]analytics.StudentFacts, 0, len(students))
	for _, s := range students {
		if s.College == nil {
			continue
		}
		tier := s.College.Tier
		if tier < 1 || tier > 3 {
			tier = models.TierFromAccreditation(s.College.Accreditation)
		}
		facts = append(facts, analytics.StudentFacts{
			College:  s.College.CollegeName,
			Location: s.College.Location,
			Tier:     tier,
			CGPA:     s.CGPA,
			Placed:   s.PlacementStatus == models.PlacementPlaced,
			Skills:   s.Skills,
		})
	}
	rows = analytics.HeatmapRows(facts)
	if err := cache.SetJSON(r.Context(), cache.Default, heatmapKey, rows, analytics.CacheTTL); err != nil {
		logger.L.Warn("failed to cache heatmap", zap.Error(err))
	}
	return rows, nil
}

func splitQuery(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func filterFromQuery(r *http.Request) (analytics.Filter, error) {
	q := r.URL.Query()
	f := analytics.Filter{
		Locations: splitQuery(q.Get("locations")),
		Skills:    splitQuery(q.Get("skills")),
	}
	for _, t := range splitQuery(q.Get("tiers")) {
		n, err := strconv.Atoi(t)
		if err != nil {
			return f, errors.New("invalid tier " + t)
		}
		f.Tiers = append(f.Tiers, n)
	}
	var err error
	if v := q.Get("min_cgpa"); v != "" {
		if f.MinCGPA, err = strconv.ParseFloat(v, 64); err != nil {
			return f, errors.New("invalid min_cgpa")
		}
	}
	if v := q.Get("min_placement_rate"); v != "" {
		if f.MinPlacementRate, err = strconv.ParseFloat(v, 64); err != nil {
			return f, errors.New("invalid min_placement_rate")
		}
	}
	return f, nil
}

// GET /api/v1/analytics/heatmap (company or college)
func Heatmap(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := heatRows(r)
	if err != nil {
		serverError(w, r, "database error", err)
		return
	}
	rows = analytics.FilterRows(rows, f)
	writeJSON(w, http.StatusOK, map[string]any{
		"rows":    rows,
		"metrics": analytics.Metrics(rows),
	})
}

// POST /api/v1/analytics/talent-search (company)
func TalentSearch(w http.ResponseWriter, r *http.Request) {
	var q analytics.SearchQuery
	if err := decodeBody(r, &q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rows, err := heatRows(r)
	if err != nil {
		serverError(w, r, "database error", err)
		return
	}
	matches, err := analytics.Search(rows, q)
	if errors.Is(err, analytics.ErrNoRequiredSkills) || errors.Is(err, analytics.ErrSortBy) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		serverError(w, r, "search failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(matches), "colleges": matches})
}

// GET /api/v1/skills/demand?limit=
func SkillDemand(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}
	var skills []models.Skill
	if err := db.DB.Order("demand_score DESC").Order("skill_name").Limit(limit).Find(&skills).Error; err != nil {
		serverError(w, r, "database error", err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

package handlers_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobResp struct {
	ID                uint     `json:"id"`
	Title             string   `json:"title"`
	SkillsRequired    []string `json:"skills_required"`
	ComplexityScore   int      `json:"complexity_score"`
	TotalApplications int      `json:"total_applications"`
}

func postJob(t *testing.T, api *testAPI, token string, body map[string]any) jobResp {
	t.Helper()
	rec := api.do(http.MethodPost, "/api/v1/jobs", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[jobResp](t, rec)
}

func TestCreateJobCanonicalisesSkills(t *testing.T) {
	api := newAPI(t)
	company := api.signup("acme", "company")

	job := postJob(t, api, company, map[string]any{
		"title":           "Backend Engineer",
		"description":     "Build services. 2+ years experience required.",
		"skills_required": []string{"python", " sql "},
		"location":        "Pune",
	})
	assert.Equal(t, []string{"Python", "SQL"}, job.SkillsRequired)

	// no skills given: read them off the description
	parsed := postJob(t, api, company, map[string]any{
		"title":       "Frontend Engineer",
		"description": "We need React and TypeScript. Experience with Python is a plus.",
	})
	assert.ElementsMatch(t, []string{"TypeScript", "Python", "React"}, parsed.SkillsRequired)

	rec := api.do(http.MethodGet, "/api/v1/skills/demand?limit=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	top := decode[[]map[string]any](t, rec)
	require.Len(t, top, 1)
	assert.Equal(t, "Python", top[0]["skill_name"])
	assert.EqualValues(t, 2, top[0]["demand_score"])

	rec = api.do(http.MethodPost, "/api/v1/jobs", company, map[string]any{"title": "No description"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	past := time.Now().Add(-time.Hour)
	rec = api.do(http.MethodPost, "/api/v1/jobs", company, map[string]any{"title": "Late", "description": "x", "deadline": past})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListJobsFilters(t *testing.T) {
	api := newAPI(t)
	company := api.signup("acme", "company")
	student := api.signup("asha", "student")

	postJob(t, api, company, map[string]any{"title": "Data Analyst", "description": "SQL reports", "skills_required": []string{"SQL"}, "location": "Pune"})
	closed := postJob(t, api, company, map[string]any{"title": "Go Developer", "description": "Go services", "skills_required": []string{"Go"}, "location": "Chennai"})

	rec := api.do(http.MethodPatch, fmt.Sprintf("/api/v1/jobs/%d", closed.ID), company, map[string]any{"is_active": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/v1/jobs", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	jobs := decode[[]jobResp](t, rec)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Data Analyst", jobs[0].Title)

	rec = api.do(http.MethodGet, "/api/v1/jobs?skill=python", student, nil)
	assert.Empty(t, decode[[]jobResp](t, rec))

	rec = api.do(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/apply", closed.ID), student, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	other := api.signup("globex", "company")
	rec = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/jobs/%d", jobs[0].ID), other, map[string]any{"is_active": false})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHiringPipeline(t *testing.T) {
	api := newAPI(t)
	college := api.signup("college1", "college")
	company := api.signup("acme", "company")
	student := api.signup("asha", "student")
	api.enrol(student, api.profileID(college), "R001")

	rec := api.do(http.MethodPut, "/api/v1/students/me", student, map[string]any{"skills": []string{"python"}})
	require.Equal(t, http.StatusOK, rec.Code)

	job := postJob(t, api, company, map[string]any{
		"title":           "Backend Engineer",
		"description":     "Build APIs",
		"skills_required": []string{"Python", "React"},
	})

	rec = api.do(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/apply", job.ID), student, map[string]any{"cover_letter": "Hello"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	app := decode[map[string]any](t, rec)
	assert.EqualValues(t, 50, app["application_score"])
	appID := uint(app["id"].(float64))

	rec = api.do(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/apply", job.ID), student, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = api.do(http.MethodPost, "/api/v1/jobs/9999/apply", student, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, fmt.Sprintf("/api/v1/jobs/%d", job.ID), student, nil)
	assert.Equal(t, 1, decode[jobResp](t, rec).TotalApplications)

	statusPath := fmt.Sprintf("/api/v1/applications/%d/status", appID)
	rec = api.do(http.MethodPatch, statusPath, company, map[string]any{"status": "hired"})
	require.Equal(t, http.StatusConflict, rec.Code)
	conflict := decode[map[string]string](t, rec)
	assert.Equal(t, "applied", conflict["from"])
	assert.Equal(t, "hired", conflict["to"])

	other := api.signup("globex", "company")
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPatch, statusPath, other, map[string]any{"status": "reviewed"}).Code)

	for _, s := range []string{"reviewed", "shortlisted"} {
		rec = api.do(http.MethodPatch, statusPath, company, map[string]any{"status": s})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec = api.do(http.MethodPatch, statusPath, company, map[string]any{"status": "hired", "package": 12.5})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	placement := decode[map[string]any](t, rec)["placement"].(map[string]any)
	assert.Equal(t, "offered", placement["status"])
	assert.Equal(t, "Backend Engineer", placement["job_role"])
	assert.EqualValues(t, api.profileID(college), placement["college_id"])

	rec = api.do(http.MethodGet, "/api/v1/students/me", student, nil)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "placed", me["placement_status"])
	assert.EqualValues(t, 12.5, me["placement_package"])

	rec = api.do(http.MethodGet, fmt.Sprintf("/api/v1/jobs/%d/applications", job.ID), company, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[map[string]any](t, rec)["applications"], 1)

	rec = api.do(http.MethodGet, "/api/v1/applications", student, nil)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)

	// the offer: company cannot accept it, the student can, then joined
	placementPath := fmt.Sprintf("/api/v1/placements/%d/status", uint(placement["id"].(float64)))
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPatch, placementPath, company, map[string]any{"status": "accepted"}).Code)
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPatch, placementPath, company, map[string]any{"status": "joined"}).Code)
	require.Equal(t, http.StatusOK, api.do(http.MethodPatch, placementPath, student, map[string]any{"status": "accepted"}).Code)
	require.Equal(t, http.StatusOK, api.do(http.MethodPatch, placementPath, college, map[string]any{"status": "joined"}).Code)

	rec = api.do(http.MethodGet, "/api/v1/placements", college, nil)
	list := decode[[]map[string]any](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "joined", list[0]["status"])
}

func TestDeclinedOfferResetsStudent(t *testing.T) {
	api := newAPI(t)
	company := api.signup("acme", "company")
	student := api.signup("asha", "student")

	job := postJob(t, api, company, map[string]any{"title": "Analyst", "description": "Reports", "skills_required": []string{"SQL"}})
	rec := api.do(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/apply", job.ID), student, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	statusPath := fmt.Sprintf("/api/v1/applications/%d/status", uint(decode[map[string]any](t, rec)["id"].(float64)))
	for _, s := range []string{"reviewed", "shortlisted", "hired"} {
		rec = api.do(http.MethodPatch, statusPath, company, map[string]any{"status": s, "package": 6})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	placementID := uint(decode[map[string]any](t, rec)["placement"].(map[string]any)["id"].(float64))

	rec = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/placements/%d/status", placementID), student, map[string]any{"status": "declined"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/v1/students/me", student, nil)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "seeking", me["placement_status"])
	assert.Equal(t, "", me["placement_company"])
}

func TestJobParseAndOptimize(t *testing.T) {
	api := newAPI(t)
	company := api.signup("acme", "company")

	rec := api.do(http.MethodPost, "/api/v1/jobs/parse", company, map[string]string{
		"text": "Acme Corp\nWe are hiring a Senior Data Engineer\nLocation: Bengaluru\n3+ years experience with Python and SQL required.",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	parsed := decode[map[string]any](t, rec)
	assert.Equal(t, "Senior Data Engineer", parsed["job_title"])
	assert.Equal(t, "Acme Corp", parsed["company"])

	rec = api.do(http.MethodPost, "/api/v1/jobs/optimize", company, map[string]any{
		"job_title": "QA Engineer",
		"skills":    []string{"Selenium", "Python"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	opt := decode[map[string]any](t, rec)
	assert.Contains(t, opt["description"], "QA Engineer")
	assert.EqualValues(t, 89, opt["ats_score"])

	rec = api.do(http.MethodGet, "/api/v1/jobs/templates", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[[]map[string]any](t, rec))
}

func TestConcurrentHiresCreateOnePlacement(t *testing.T) {
	api := newAPI(t)
	company := api.signup("acme", "company")
	student := api.signup("asha", "student")

	job := postJob(t, api, company, map[string]any{"title": "Analyst", "description": "Reports", "skills_required": []string{"SQL"}})
	rec := api.do(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%d/apply", job.ID), student, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	statusPath := fmt.Sprintf("/api/v1/applications/%d/status", uint(decode[map[string]any](t, rec)["id"].(float64)))
	for _, s := range []string{"reviewed", "shortlisted"} {
		require.Equal(t, http.StatusOK, api.do(http.MethodPatch, statusPath, company, map[string]any{"status": s}).Code)
	}

	codes := make([]int, 8)
	var wg sync.WaitGroup
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = api.do(http.MethodPatch, statusPath, company, map[string]any{"status": "hired", "package": 9}).Code
		}(i)
	}
	wg.Wait()

	hired := 0
	for _, c := range codes {
		switch c {
		case http.StatusOK:
			hired++
		default:
			assert.Equal(t, http.StatusConflict, c)
		}
	}
	assert.Equal(t, 1, hired)

	rec = api.do(http.MethodGet, "/api/v1/placements", company, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)
}

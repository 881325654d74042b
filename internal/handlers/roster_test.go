package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterCSV = "\ufeffstudent_name,roll_number,email,department,year,cgpa,attendance,skills\n" +
	"Asha Rao,R001,asha@test.local,CSE,4,8.7,92,Python;SQL\n" +
	"Vikram Iyer,R002,vikram@test.local,ECE,3,7.1,81,\n"

const rosterPath = "/api/v1/colleges/me/students/bulk-upload"

type roster struct {
	Count    int              `json:"count"`
	Students []map[string]any `json:"students"`
}

func TestBulkUploadStudents(t *testing.T) {
	api := newAPI(t)
	college := api.signup("college1", "college")

	rec := api.upload(rosterPath, college, "file", "roster.csv", []byte(rosterCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[map[string]any](t, rec)
	assert.EqualValues(t, 2, out["inserted"])
	assert.EqualValues(t, 0, out["duplicates_skipped"])

	rec = api.upload(rosterPath, college, "students", "again.csv", []byte(rosterCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out = decode[map[string]any](t, rec)
	assert.EqualValues(t, 0, out["inserted"])
	assert.EqualValues(t, 2, out["duplicates_skipped"])

	rec = api.do(http.MethodGet, "/api/v1/colleges/me/students?department=CSE", college, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[roster](t, rec)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Asha Rao", list.Students[0]["name"])
	assert.Equal(t, []any{"Python", "SQL"}, list.Students[0]["skills"])
}

func TestBulkUploadRejectsBadFiles(t *testing.T) {
	api := newAPI(t)
	college := api.signup("college1", "college")

	rec := api.upload(rosterPath, college, "file", "bad.csv", []byte("name,roll\nA,1\n"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	out := decode[map[string]any](t, rec)
	assert.Len(t, out["expected"], 8)

	// one bad row rolls back the whole file
	bad := rosterCSV + "Meera Das,R003,meera@test.local,ME,2,11.5,70,\n"
	rec = api.upload(rosterPath, college, "file", "bad.csv", []byte(bad))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "line 4")

	rec = api.do(http.MethodGet, "/api/v1/colleges/me/students", college, nil)
	assert.Equal(t, 0, decode[roster](t, rec).Count)

	student := api.signup("student1", "student")
	rec = api.upload(rosterPath, student, "file", "roster.csv", []byte(rosterCSV))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStudentClaimsImportedRow(t *testing.T) {
	api := newAPI(t)
	college := api.signup("college1", "college")
	collegeID := api.profileID(college)
	rec := api.upload(rosterPath, college, "file", "roster.csv", []byte(rosterCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	asha := api.signup("asha", "student")
	rec = api.do(http.MethodPut, "/api/v1/students/me", asha, map[string]any{
		"college_id":  collegeID,
		"roll_number": "R001",
		"github_url":  "https://github.com/asha",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "CSE", me["department"])
	assert.EqualValues(t, 8.7, me["cgpa"])
	assert.Equal(t, "https://github.com/asha", me["github_url"])

	rec = api.do(http.MethodGet, "/api/v1/colleges/me/students", college, nil)
	assert.Equal(t, 2, decode[roster](t, rec).Count)

	imposter := api.signup("imposter", "student")
	rec = api.do(http.MethodPut, "/api/v1/students/me", imposter, map[string]any{
		"college_id":  collegeID,
		"roll_number": "R001",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestImportedRowClaimNeedsRosterEmail(t *testing.T) {
	api := newAPI(t)
	college := api.signup("college1", "college")
	collegeID := api.profileID(college)
	rec := api.upload(rosterPath, college, "file", "roster.csv", []byte(rosterCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var vikramID uint
	for _, s := range decode[roster](t, api.do(http.MethodGet, "/api/v1/colleges/me/students", college, nil)).Students {
		if s["roll_number"] == "R002" {
			vikramID = uint(s["id"].(float64))
		}
	}
	require.NotZero(t, vikramID)
	publicID := issue(t, api, college, vikramID)["public_id"].(string)

	mallory := api.signup("mallory", "student")
	rec = api.do(http.MethodPut, "/api/v1/students/me", mallory, map[string]any{
		"college_id":  collegeID,
		"roll_number": "R002",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/v1/certificates", mallory, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]map[string]any](t, rec))
	rec = api.do(http.MethodPost, "/api/v1/certificates/share-link", mallory, map[string]any{"certificate_id": publicID, "expires_in_hours": 1})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	vikram := api.signup("vikram", "student")
	rec = api.do(http.MethodPut, "/api/v1/students/me", vikram, map[string]any{
		"college_id":  collegeID,
		"roll_number": "R002",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/v1/certificates", vikram, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	certs := decode[[]map[string]any](t, rec)
	require.Len(t, certs, 1)
	assert.Equal(t, publicID, certs[0]["public_id"])
	assert.Equal(t, "Vikram Iyer", certs[0]["holder_name"])
}

func TestUpdateStudentValidation(t *testing.T) {
	api := newAPI(t)
	tok := api.signup("asha", "student")

	for _, body := range []map[string]any{
		{"cgpa": 10.5},
		{"attendance": -1},
		{"technical_score": 11},
		{"placement_status": "retired"},
		{"college_id": 999},
	} {
		rec := api.do(http.MethodPut, "/api/v1/students/me", tok, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%v", body)
	}
}

func TestCollegeProfileAndDirectory(t *testing.T) {
	api := newAPI(t)
	tok := api.signup("college1", "college")

	rec := api.do(http.MethodPut, "/api/v1/colleges/me", tok, map[string]any{
		"college_name":  "Demo Institute of Technology",
		"location":      "Bengaluru",
		"accreditation": "NAAC A+",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, decode[map[string]any](t, rec)["tier"])

	rec = api.do(http.MethodPut, "/api/v1/colleges/me", tok, map[string]any{"tier": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/v1/colleges?location=Bengaluru", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Demo Institute of Technology")
}

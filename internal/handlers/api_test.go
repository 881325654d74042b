package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"placementhub/internal/cache"
	"placementhub/internal/config"
	"placementhub/internal/db/dbtest"
	"placementhub/internal/router"
	"placementhub/pkg"

	"github.com/stretchr/testify/require"
)

const testPassword = "password123"

type testAPI struct {
	t *testing.T
	h http.Handler
}

// newAPI serves the full router over a fresh database and in-process cache.
func newAPI(t *testing.T) *testAPI {
	t.Helper()
	dbtest.Use(t)
	prev := cache.Default
	cache.Default = cache.NewMemory()
	t.Cleanup(func() { cache.Default = prev })
	pkg.Configure("handler-test-secret", time.Hour)
	pkg.ConfigureShare("handler-share-secret")

	h := router.RegisterRouter(&config.Config{
		FrontendBaseURL: "https://app.test",
		CORSOrigins:     []string{"*"},
	})
	return &testAPI{t: t, h: h}
}

func (a *testAPI) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.serve(req, token)
}

// upload posts content as a multipart file under field.
func (a *testAPI) upload(path, token, field, filename string, content []byte) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(a.t, err)
	_, err = fw.Write(content)
	require.NoError(a.t, err)
	require.NoError(a.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return a.serve(req, token)
}

// signup registers an account of the given type and returns a session token.
func (a *testAPI) signup(username, userType string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":  username,
		"email":     username + "@test.local",
		"password":  testPassword,
		"user_type": userType,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": testPassword,
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[struct {
		AccessToken string `json:"access_token"`
	}](a.t, rec)
	require.NotEmpty(a.t, out.AccessToken)
	return out.AccessToken
}

// profileID returns the id of the profile behind token.
func (a *testAPI) profileID(token string) uint {
	a.t.Helper()
	rec := a.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode[struct {
		ProfileID uint `json:"profile_id"`
	}](a.t, rec)
	require.NotZero(a.t, out.ProfileID)
	return out.ProfileID
}

// enrol puts the student behind token on a college roster with roll.
func (a *testAPI) enrol(token string, collegeID uint, roll string) {
	a.t.Helper()
	rec := a.do(http.MethodPut, "/api/v1/students/me", token, map[string]any{
		"college_id":  collegeID,
		"roll_number": roll,
		"department":  "CSE",
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedline/internal/config"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Dates.Now = "2026-08-31T12:00:00Z"
	cfg.Scale.Users = 20
	cfg.Scale.Teams = []config.TeamTypeCount{{Type: "engineering", Count: 1}}
	cfg.Scale.ProjectsPerTeamMin = 1
	cfg.Scale.ProjectsPerTeamMax = 1
	cfg.Scale.TasksPerProjectMin = 3
	cfg.Scale.TasksPerProjectMax = 5

	handler, err := New(Config{
		Workspace: t.TempDir(),
		Scenario:  cfg,
		Auth:      AuthConfig{JWTSecret: testSecret},
	})
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: subject}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(res.Body)
	require.NoError(t, err)
	return res, out.Bytes()
}

func TestHealthzIsUnauthenticated(t *testing.T) {
	srv := newTestServer(t)
	res, body := doJSON(t, http.MethodGet, srv.URL+"/v0/healthz", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Contains(t, string(body), `"ok"`)
}

func TestStatsRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	res, _ := doJSON(t, http.MethodGet, srv.URL+"/v0/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = doJSON(t, http.MethodGet, srv.URL+"/v0/stats", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body := doJSON(t, http.MethodGet, srv.URL+"/v0/stats", signToken(t, "tester"), nil)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
}

func TestRunThenStats(t *testing.T) {
	srv := newTestServer(t)
	token := signToken(t, "tester")

	res, body := doJSON(t, http.MethodPost, srv.URL+"/v0/runs", token,
		map[string]any{"seed": 42, "reset": true})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	var run struct {
		Seed   int64          `json:"seed"`
		Counts map[string]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(body, &run))
	assert.EqualValues(t, 42, run.Seed)
	assert.Equal(t, 20, run.Counts["users"])
	assert.Equal(t, 1, run.Counts["workspaces"])
	assert.Positive(t, run.Counts["tasks"])

	res, body = doJSON(t, http.MethodGet, srv.URL+"/v0/stats", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	var stats struct {
		Tables []struct {
			Table string `json:"table"`
			Rows  int64  `json:"rows"`
		} `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(body, &stats))
	byTable := make(map[string]int64)
	for _, tc := range stats.Tables {
		byTable[tc.Table] = tc.Rows
	}
	for table, want := range run.Counts {
		assert.EqualValues(t, want, byTable[table], table)
	}
}

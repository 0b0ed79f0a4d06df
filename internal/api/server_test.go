package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/econsim/internal/api"
	"github.com/talgya/econsim/internal/audit"
	"github.com/talgya/econsim/internal/engine"
	"github.com/talgya/econsim/internal/entropy"
)

func newTestServer(t *testing.T, rateLimit int) http.Handler {
	t.Helper()
	store := audit.NewFileStore(filepath.Join(t.TempDir(), "game_log.txt"))
	sim := engine.New(audit.NewLog(store, nil), entropy.NewSeeded(3), engine.DefaultOptions())
	srv := &api.Server{Sim: sim, RateLimit: rateLimit}
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type stateResponse struct {
	State struct {
		GDP  float64 `json:"gdp"`
		Time int     `json:"time"`
	} `json:"state"`
	Warnings []string `json:"warnings"`
}

func TestState(t *testing.T) {
	h := newTestServer(t, 100)

	rec := do(t, h, http.MethodGet, "/api/v1/state", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1000.0, resp.State.GDP)
	assert.Empty(t, resp.Warnings)
}

func TestAdjustAndLog(t *testing.T) {
	h := newTestServer(t, 100)

	rec := do(t, h, http.MethodPost, "/api/v1/adjust", `{"action":"investment","value":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Greater(t, resp.State.GDP, 1000.0)

	rec = do(t, h, http.MethodGet, "/api/v1/log", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var log struct {
		Entries []audit.Entry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &log))
	require.Len(t, log.Entries, 1)
	assert.Equal(t, "Investment Adjustment", log.Entries[0].Action)
	assert.Equal(t, 2, log.Entries[0].Value)
}

func TestAdjust_Rejections(t *testing.T) {
	h := newTestServer(t, 100)

	cases := map[string]string{
		"unknown lever": `{"action":"tariffs","value":1}`,
		"missing value": `{"action":"taxes"}`,
		"bad json":      `{"action":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/adjust", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAdvance(t *testing.T) {
	h := newTestServer(t, 100)

	rec := do(t, h, http.MethodPost, "/api/v1/advance", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp stateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.State.Time, "years defaults to 1")

	rec = do(t, h, http.MethodPost, "/api/v1/advance", `{"years":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.State.Time)

	rec = do(t, h, http.MethodPost, "/api/v1/advance", `{"years":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/advance", `{"years":1000000000000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/state", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.State.Time, "rejected advances leave the clock alone")
}

func TestClearLog(t *testing.T) {
	h := newTestServer(t, 100)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/adjust", `{"action":"taxes","value":1}`).Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/v1/log/clear", "").Code)

	rec := do(t, h, http.MethodGet, "/api/v1/log", "")
	var log struct {
		Entries []audit.Entry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &log))
	assert.Empty(t, log.Entries)
}

func TestEventsAndPolicies_StartEmpty(t *testing.T) {
	h := newTestServer(t, 100)

	rec := do(t, h, http.MethodGet, "/api/v1/events", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"events":[]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/policies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"policies":[]}`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t, 100)

	rec := do(t, h, http.MethodGet, "/api/v1/adjust", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, 2)

	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodPost, "/api/v1/adjust", `{"action":"spending","value":1}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(t, h, http.MethodPost, "/api/v1/adjust", `{"action":"spending","value":1}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Reads are never limited.
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/v1/state", "").Code)
}

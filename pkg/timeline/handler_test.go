package timeline

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/klokku/prazos/internal/utils"
	"github.com/klokku/prazos/pkg/deadline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter() *mux.Router {
	clock := &utils.MockClock{FixedNow: reference}
	handler := NewHandler(newTestArithmetic(), DefaultGenerateConfig(reference, location), clock)
	router := mux.NewRouter()
	router.HandleFunc("/api/timeline/sample", handler.GetSamples).Methods("GET")
	router.HandleFunc("/api/timeline/fix", handler.Fix).Methods("POST")
	return router
}

func getSamples(t *testing.T, router *mux.Router, url string) []SampleDTO {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var samples []SampleDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&samples))
	return samples
}

func TestHandler_GetSamples(t *testing.T) {
	router := setupRouter()

	first := getSamples(t, router, "/api/timeline/sample?seed=42&count=5&completed=true")
	second := getSamples(t, router, "/api/timeline/sample?seed=42&count=5&completed=true")

	require.Len(t, first, 5)
	assert.Equal(t, first, second)
	for _, s := range first {
		assert.Equal(t, deadline.StatusDone, s.Status)
		assert.NotEmpty(t, s.Milestones.Closed)
	}

	single := getSamples(t, router, "/api/timeline/sample")
	assert.Len(t, single, 1)
}

func TestHandler_GetSamples_BadRequests(t *testing.T) {
	router := setupRouter()
	for _, url := range []string{
		"/api/timeline/sample?seed=abc",
		"/api/timeline/sample?count=0",
		"/api/timeline/sample?count=100000",
		"/api/timeline/sample?completed=maybe",
	} {
		t.Run(url, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandler_Fix(t *testing.T) {
	router := setupRouter()
	body, _ := json.Marshal(deadline.RawMilestones{Start: "2024-01-22T09:00:00-03:00", Due: "2024-01-15T18:00:00-03:00"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/timeline/fix", bytes.NewBuffer(body)))

	require.Equal(t, http.StatusOK, w.Code)
	var got FixResultDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.True(t, got.Changed)
	assert.Equal(t, "2024-01-23T18:00:00-03:00", got.Milestones.Due)
}

package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/travelrecap/timeline-backend-go/internal/boundary"
	"github.com/travelrecap/timeline-backend-go/internal/database"
	"github.com/travelrecap/timeline-backend-go/internal/engine"
	"github.com/travelrecap/timeline-backend-go/internal/repository"
	"github.com/travelrecap/timeline-backend-go/internal/service"
	"github.com/travelrecap/timeline-backend-go/internal/spatial"
	"github.com/travelrecap/timeline-backend-go/pkg/response"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resolver, err := boundary.NewResolver([]boundary.CountryPolygon{{
		Name: "Boxland",
		Rings: [][]spatial.Point{{
			{Lat: 0, Lon: 0},
			{Lat: 0, Lon: 20},
			{Lat: 20, Lon: 20},
			{Lat: 20, Lon: 0},
			{Lat: 0, Lon: 0},
		}},
	}})
	require.NoError(t, err)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	svc := service.NewAnalysisService(
		engine.New(resolver),
		repository.NewRunRepository(db),
		nil,
		100,
	)
	h := NewTimelineHandler(svc)

	r := gin.New()
	r.POST("/api/v1/timeline/analyze", h.Analyze)
	r.GET("/api/v1/timeline/runs", h.ListRuns)
	r.GET("/api/v1/timeline/runs/:id", h.GetRun)
	r.DELETE("/api/v1/timeline/runs/:id", h.DeleteRun)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return w, envelope
}

func TestAnalyzeEndpoint(t *testing.T) {
	r := testRouter(t)

	raw := `{
	  "semanticSegments": [
	    {
	      "startTime": "2024-05-01T08:00:00Z",
	      "endTime": "2024-05-01T18:00:00Z",
	      "visit": {
	        "probability": 0.9,
	        "topCandidate": {"placeId": "home", "name": "Home", "placeLocation": {"latLng": "10.0°, 10.0°"}}
	      }
	    },
	    {"activity": {"distanceMeters": 2500}}
	  ]
	}`

	w, envelope := doRequest(t, r, http.MethodPost, "/api/v1/timeline/analyze", raw)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, envelope.Code)

	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)

	var result struct {
		Places []struct {
			PlaceName string `json:"placeName"`
			Country   string `json:"country"`
		} `json:"places"`
		Stats struct {
			TotalDistanceMeters float64 `json:"totalDistanceMeters"`
			CarbonKgCO2         float64 `json:"carbonKgCO2"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(data, &result))

	require.Len(t, result.Places, 1)
	assert.Equal(t, "Home", result.Places[0].PlaceName)
	assert.Equal(t, "Boxland", result.Places[0].Country)
	assert.Equal(t, 2500.0, result.Stats.TotalDistanceMeters)
	assert.InDelta(t, 2.5*0.17, result.Stats.CarbonKgCO2, 1e-9)
}

func TestAnalyzeEndpoint_InvalidBody(t *testing.T) {
	r := testRouter(t)

	w, envelope := doRequest(t, r, http.MethodPost, "/api/v1/timeline/analyze", `[1, 2, 3]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusBadRequest, envelope.Code)
}

func TestAnalyzeEndpoint_InvalidYearParam(t *testing.T) {
	r := testRouter(t)

	w, _ := doRequest(t, r, http.MethodPost, "/api/v1/timeline/analyze?year=abc", `{"semanticSegments": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunsEndpoints(t *testing.T) {
	r := testRouter(t)

	// Each analysis persists a run summary.
	_, _ = doRequest(t, r, http.MethodPost, "/api/v1/timeline/analyze", `{"semanticSegments": [{"activity": {"distanceMeters": 1000}}]}`)

	w, envelope := doRequest(t, r, http.MethodGet, "/api/v1/timeline/runs", "")
	require.Equal(t, http.StatusOK, w.Code)

	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var runs []struct {
		ID                  string  `json:"id"`
		MovementCount       int     `json:"movementCount"`
		TotalDistanceMeters float64 `json:"totalDistanceMeters"`
	}
	require.NoError(t, json.Unmarshal(data, &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, 1, runs[0].MovementCount)
	assert.Equal(t, 1000.0, runs[0].TotalDistanceMeters)

	w, _ = doRequest(t, r, http.MethodGet, "/api/v1/timeline/runs/"+runs[0].ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, r, http.MethodDelete, "/api/v1/timeline/runs/"+runs[0].ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, r, http.MethodGet, "/api/v1/timeline/runs/"+runs[0].ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunsEndpoint_MissingRun(t *testing.T) {
	r := testRouter(t)

	w, _ := doRequest(t, r, http.MethodGet, "/api/v1/timeline/runs/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(t, r, http.MethodDelete, "/api/v1/timeline/runs/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaceLocationsEndpoint_NoCache(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/v1/place-locations", NewPlaceHandler(nil).GetPlaceLocations)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/place-locations", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MapVideo-App/internal/application"
	"MapVideo-App/internal/config"
	"MapVideo-App/internal/domain/model"
	"MapVideo-App/internal/domain/service"
	repoImpl "MapVideo-App/internal/repository"
)

func ptr[T any](v T) *T { return &v }

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repoImpl.NewMemoryRestaurantsRepository([]model.Restaurant{
		{ID: 1, Latitude: 34.65, Longitude: 135.20, Rating: ptr(4.5), RestaurantName: ptr("A"), VideoID: ptr("vidA")},
		{ID: 2, Latitude: 34.80, Longitude: 135.20, Rating: ptr(5.0), RestaurantName: ptr("B")},
		{ID: 3, Latitude: 34.66, Longitude: 135.25, Rating: ptr(4.9), RestaurantName: ptr("C")},
	})
	sessions := application.NewMapSessionService(
		service.NewRestaurantQuery(repo, time.Second, 30),
		application.MapSessionOptions{},
	)
	defaults := config.MapDefaults{
		CenterLng: 135.5,
		CenterLat: 34.6,
		Zoom:      9,
		Style:     "mapbox://styles/mapbox/streets-v11",
	}
	return NewRouter(NewMapSessionHandler(sessions, defaults), NewRestaurantsHandler(sessions))
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type featureCollection struct {
	Type     string `json:"type"`
	Features []struct {
		Properties map[string]any `json:"properties"`
	} `json:"features"`
}

type syncResponse struct {
	Sync    service.SyncResult `json:"sync"`
	Markers featureCollection  `json:"markers"`
}

var osakaBody = gin.H{"south": 34.60, "north": 34.70, "west": 135.10, "east": 135.30}

func TestHealth(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "healthy", body["status"])
}

func TestGetMapConfig(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/map/config", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[config.MapDefaults](t, w)
	assert.Equal(t, 135.5, body.CenterLng)
	assert.Equal(t, 34.6, body.CenterLat)
	assert.Equal(t, 9.0, body.Zoom)
}

func TestMapSessionFlow(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[CreateSessionResponse](t, w)
	require.NotEmpty(t, created.SessionID)
	base := "/sessions/" + created.SessionID

	w = doRequest(t, router, http.MethodPost, base+"/load", osakaBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	loaded := decode[syncResponse](t, w)
	assert.True(t, loaded.Sync.Applied)
	assert.Equal(t, "FeatureCollection", loaded.Markers.Type)
	require.Len(t, loaded.Markers.Features, 2)

	w = doRequest(t, router, http.MethodGet, base+"/markers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	markers := decode[featureCollection](t, w)
	require.Len(t, markers.Features, 2)

	var markerID string
	for _, f := range markers.Features {
		if f.Properties["key"] == "restaurant:1" {
			markerID = f.Properties["marker_id"].(string)
		}
	}
	require.NotEmpty(t, markerID)

	w = doRequest(t, router, http.MethodPost, base+"/markers/"+markerID+"/click", nil)
	require.Equal(t, http.StatusOK, w.Code)
	panel := decode[model.DetailPanelView](t, w)
	assert.True(t, panel.IsOpen)
	assert.Equal(t, "https://www.youtube.com/embed/vidA", panel.EmbedURL)
	assert.Equal(t, "A", panel.RestaurantInfo.Name)

	w = doRequest(t, router, http.MethodPost, base+"/panel/close", nil)
	require.Equal(t, http.StatusOK, w.Code)
	panel = decode[model.DetailPanelView](t, w)
	assert.False(t, panel.IsOpen)

	w = doRequest(t, router, http.MethodGet, base+"/panel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodPost, base+"/viewport", gin.H{"south": 10, "north": 11, "west": 10, "east": 11})
	require.Equal(t, http.StatusOK, w.Code)
	settled := decode[syncResponse](t, w)
	assert.True(t, settled.Sync.Applied)
	assert.Empty(t, settled.Markers.Features)

	w = doRequest(t, router, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodGet, base+"/markers", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMapSessionErrors(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodPost, "/sessions/unknown/load", osakaBody)
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "session_not_found", body["error"])

	w = doRequest(t, router, http.MethodPost, "/sessions", nil)
	created := decode[CreateSessionResponse](t, w)
	base := "/sessions/" + created.SessionID

	w = doRequest(t, router, http.MethodPost, base+"/load", gin.H{"south": 34.6, "north": 34.7})
	assert.Equal(t, http.StatusBadRequest, w.Code, "east/west が無い")

	w = doRequest(t, router, http.MethodPost, base+"/load", gin.H{"south": 35, "north": 34, "west": 135, "east": 136})
	assert.Equal(t, http.StatusBadRequest, w.Code, "南北が逆")

	w = doRequest(t, router, http.MethodPost, base+"/markers/nope/click", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	body = decode[map[string]string](t, w)
	assert.Equal(t, "marker_not_found", body["error"])
}

func TestGetRestaurantsByBoundingBox(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/restaurants?bbox=135.10,34.60,135.30,34.70", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode[GetRestaurantsResponse](t, w)
	require.Len(t, body.Restaurants, 2)
	assert.Equal(t, int64(3), body.Restaurants[0].ID)
	assert.Equal(t, int64(1), body.Restaurants[1].ID)
}

func TestGetRestaurantsByBoundingBox_Invalid(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name string
		path string
	}{
		{"bboxなし", "/restaurants"},
		{"座標が3つ", "/restaurants?bbox=1,2,3"},
		{"数値でない", "/restaurants?bbox=a,34.6,135.3,34.7"},
		{"範囲が逆", "/restaurants?bbox=135.3,34.6,135.1,34.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestParseBBox(t *testing.T) {
	bounds, err := parseBBox(" 135.1, 34.6 ,135.3,34.7")

	require.NoError(t, err)
	assert.Equal(t, model.ViewportBounds{South: 34.6, North: 34.7, West: 135.1, East: 135.3}, bounds)

	_, err = parseBBox("1,2,x,4")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "max_lng", vErr.Field)
}

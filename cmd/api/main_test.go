package main

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/gin-gonic/gin"
    "github.com/goccy/go-json"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "sensorprep/internal/config"
    "sensorprep/internal/data"
    "sensorprep/internal/pipeline"
)

func testServer(t *testing.T, key string) *server {
    t.Helper()
    gin.SetMode(gin.TestMode)
    X := make([][]float64, 200)
    y := make([]int, 200)
    for i := range X {
        X[i] = []float64{float64(i), float64(-i)}
        y[i] = (i / 10) % 4
    }
    cfg := config.Default()
    cfg.WindowSize = 5
    p, err := pipeline.Prepare(&data.Dataset{Features: X, Labels: y, Columns: []string{"a", "b"}}, cfg, nil)
    require.NoError(t, err)
    return &server{prepared: p, staticDir: t.TempDir(), apiKey: key}
}

func get(r http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(http.MethodGet, path, nil)
    for k, v := range header {
        req.Header.Set(k, v)
    }
    w := httptest.NewRecorder()
    r.ServeHTTP(w, req)
    return w
}

func TestHealth(t *testing.T) {
    gin.SetMode(gin.TestMode)
    r := (&server{staticDir: t.TempDir()}).router()
    w := get(r, "/health", nil)
    assert.Equal(t, http.StatusOK, w.Code)
    assert.JSONEq(t, `{"status":"ok","dataset":false}`, w.Body.String())
}

func TestSummary(t *testing.T) {
    s := testServer(t, "")
    w := get(s.router(), "/summary", nil)
    require.Equal(t, http.StatusOK, w.Code)

    var got pipeline.Summary
    require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
    assert.Equal(t, s.prepared.Summary().Train, got.Train)
    assert.Equal(t, 5, got.WindowSize)
    assert.Equal(t, 2, got.Features)
    assert.Equal(t, []string{"Non-request", "Both hands", "Left hand", "Right hand"}, got.ClassNames)
    assert.Len(t, got.Stages, 4)
}

func TestDistribution(t *testing.T) {
    s := testServer(t, "")
    r := s.router()

    w := get(r, "/distribution", nil)
    assert.Equal(t, http.StatusOK, w.Code)
    assert.Contains(t, w.Body.String(), pipeline.StageBalanced)

    w = get(r, "/distribution?stage=TREINO", nil)
    require.Equal(t, http.StatusOK, w.Code)
    var body struct {
        Stage        string `json:"stage"`
        Distribution struct {
            Total int `json:"total"`
        } `json:"distribution"`
    }
    require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
    assert.Equal(t, pipeline.StageTrain, body.Stage)
    assert.Equal(t, len(s.prepared.YTrain), body.Distribution.Total)

    w = get(r, "/distribution?stage=nope", nil)
    assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNoDataset(t *testing.T) {
    gin.SetMode(gin.TestMode)
    r := (&server{staticDir: t.TempDir()}).router()
    assert.Equal(t, http.StatusServiceUnavailable, get(r, "/summary", nil).Code)
    assert.Equal(t, http.StatusServiceUnavailable, get(r, "/distribution", nil).Code)
}

func TestAPIKey(t *testing.T) {
    s := testServer(t, "secret")
    r := s.router()
    assert.Equal(t, http.StatusUnauthorized, get(r, "/summary", nil).Code)
    assert.Equal(t, http.StatusUnauthorized, get(r, "/summary", map[string]string{"X-API-Key": "wrong"}).Code)
    assert.Equal(t, http.StatusOK, get(r, "/summary", map[string]string{"X-API-Key": "secret"}).Code)
    assert.Equal(t, http.StatusOK, get(r, "/health", nil).Code, "health is public")
}

package requestlog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLogsRouter(repo Repo, store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := &Service{Repo: repo}
	if store != nil {
		svc.Store = store
	}
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func seedRows(t *testing.T, repo Repo, n int) {
	t.Helper()
	base := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		location := "Austin, TX"
		if i%2 == 1 {
			location = "Denver, CO"
		}
		if _, err := repo.Insert(context.Background(), Record{
			Timestamp:        base.Add(time.Duration(i) * time.Minute),
			Location:         location,
			Direction:        "S",
			Water:            "Low",
			Maintenance:      "Low",
			GardenType:       "Native Plants",
			Success:          true,
			ProcessingTimeMs: 100,
		}); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
}

func TestLogsEndpointReturnsRecentRows(t *testing.T) {
	repo := NewMemoryRepo()
	seedRows(t, repo, 6)
	r := newLogsRouter(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/logs?limit=4", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body struct {
		Logs  []Record `json:"logs"`
		Count int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Count != 4 || len(body.Logs) != 4 {
		t.Fatalf("count = %d with %d logs, want 4", body.Count, len(body.Logs))
	}
	if !body.Logs[0].Timestamp.After(body.Logs[1].Timestamp) {
		t.Fatalf("logs not ordered newest first")
	}
}

func TestLogsEndpointFiltersByLocation(t *testing.T) {
	repo := NewMemoryRepo()
	seedRows(t, repo, 6)
	r := newLogsRouter(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/logs?location=denver", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body struct {
		Logs []Record `json:"logs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Logs) != 3 {
		t.Fatalf("expected 3 Denver rows, got %d", len(body.Logs))
	}
	for _, rec := range body.Logs {
		if rec.Location != "Denver, CO" {
			t.Fatalf("filter leaked row for %q", rec.Location)
		}
	}
}

func TestLogsEndpointEmptyRepoReturnsEmptyList(t *testing.T) {
	r := newLogsRouter(NewMemoryRepo(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/logs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if string(body["logs"]) != "[]" {
		t.Fatalf("logs = %s, want []", body["logs"])
	}
}

func TestStatsEndpoint(t *testing.T) {
	repo := NewMemoryRepo()
	seedRows(t, repo, 4)
	r := newLogsRouter(repo, &fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/logs/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var stats Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalRequests != 4 || stats.SuccessfulRequests != 4 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.SuccessRate != 100 || stats.AvgProcessingTimeMs != 100 {
		t.Fatalf("unexpected rates: %+v", stats)
	}
	if !stats.BackupEnabled {
		t.Fatalf("backup_enabled should be true with a configured store")
	}
}

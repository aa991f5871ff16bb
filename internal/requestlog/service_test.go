package requestlog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	err      error
	puts     int
	lastKey  string
	lastData []byte
	lastMeta map[string]string
}

func (f *fakeStore) Put(ctx context.Context, key, contentType string, data []byte, metadata map[string]string) error {
	f.puts++
	f.lastKey = key
	f.lastData = data
	f.lastMeta = metadata
	return f.err
}

func TestBackupKeyFormat(t *testing.T) {
	ts := time.Date(2026, time.August, 31, 9, 5, 7, 0, time.UTC)
	got := BackupKey(42, ts)
	want := "request-logs/2026/08/31/42_090507.json"
	if got != want {
		t.Fatalf("BackupKey = %q, want %q", got, want)
	}
}

func TestWriteBacksUpAndAttachesKey(t *testing.T) {
	repo := NewMemoryRepo()
	store := &fakeStore{}
	svc := &Service{Repo: repo, Store: store}

	svc.Write(context.Background(), Record{
		Location:    "Austin, TX",
		Direction:   "S",
		Water:       "Low",
		Maintenance: "Low",
		GardenType:  "Native Plants",
		Success:     true,
		PlantCount:  5,
	})

	if store.puts != 1 {
		t.Fatalf("expected 1 backup put, got %d", store.puts)
	}
	if store.lastMeta["success"] != "true" || store.lastMeta["location"] != "Austin, TX" {
		t.Fatalf("unexpected backup metadata: %v", store.lastMeta)
	}

	var mirrored Record
	if err := json.Unmarshal(store.lastData, &mirrored); err != nil {
		t.Fatalf("backup payload is not valid JSON: %v", err)
	}
	if mirrored.PlantCount != 5 {
		t.Fatalf("backup payload plant_count = %d, want 5", mirrored.PlantCount)
	}

	rows, err := repo.Recent(context.Background(), 10, "")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].BackupKey != store.lastKey || rows[0].BackupTimestamp == nil {
		t.Fatalf("backup key not attached to row: %+v", rows[0])
	}
}

func TestWriteSwallowsStoreFailure(t *testing.T) {
	repo := NewMemoryRepo()
	store := &fakeStore{err: errors.New("spaces unavailable")}
	svc := &Service{Repo: repo, Store: store}

	svc.Write(context.Background(), Record{Location: "Austin, TX", Success: true})

	rows, err := repo.Recent(context.Background(), 10, "")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected row to persist despite backup failure, got %d rows", len(rows))
	}
	if rows[0].BackupKey != "" || rows[0].BackupTimestamp != nil {
		t.Fatalf("failed backup must not attach a key: %+v", rows[0])
	}
}

func TestWriteWithoutStoreSkipsBackup(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}

	svc.Write(context.Background(), Record{Location: "Austin, TX", Success: true})

	rows, _ := repo.Recent(context.Background(), 10, "")
	if len(rows) != 1 || rows[0].BackupKey != "" {
		t.Fatalf("expected one row without backup key, got %+v", rows)
	}
}

func TestRecentClampsLimit(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 120; i++ {
		svc.Write(context.Background(), Record{
			Location:  "Austin, TX",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Success:   true,
		})
	}

	rows, err := svc.Recent(context.Background(), 0, "")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rows) != 50 {
		t.Fatalf("default limit should be 50, got %d", len(rows))
	}

	rows, err = svc.Recent(context.Background(), 500, "")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(rows) != 100 {
		t.Fatalf("limit should clamp to 100, got %d", len(rows))
	}
}

func TestStatsAveragesOverRecentRows(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Store: &fakeStore{}}
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	svc.Write(context.Background(), Record{Timestamp: base, Success: true, ProcessingTimeMs: 100})
	svc.Write(context.Background(), Record{Timestamp: base.Add(time.Minute), Success: true, ProcessingTimeMs: 300})
	svc.Write(context.Background(), Record{Timestamp: base.Add(2 * time.Minute), Success: false, ProcessingTimeMs: 0})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalRequests != 3 || stats.SuccessfulRequests != 2 {
		t.Fatalf("totals = (%d, %d), want (3, 2)", stats.TotalRequests, stats.SuccessfulRequests)
	}
	if stats.SuccessRate < 66 || stats.SuccessRate > 67 {
		t.Fatalf("success rate = %f, want ~66.7", stats.SuccessRate)
	}
	if stats.AvgProcessingTimeMs != 200 {
		t.Fatalf("avg processing time = %f, want 200 (zero rows excluded)", stats.AvgProcessingTimeMs)
	}
	if !stats.BackupEnabled {
		t.Fatalf("backup should report enabled when a store is configured")
	}
}

package requestlog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []Record
}

// NewMemoryRepo constructs an empty in-memory repository.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1}
}

func (r *MemoryRepo) Insert(ctx context.Context, rec Record) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, rec)
	return rec.ID, nil
}

func (r *MemoryRepo) AttachBackup(ctx context.Context, id int64, key string, ts time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].BackupKey = key
			tsCopy := ts
			r.rows[i].BackupTimestamp = &tsCopy
			return nil
		}
	}
	return nil
}

func (r *MemoryRepo) Recent(ctx context.Context, limit int, location string) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filter := strings.ToLower(strings.TrimSpace(location))
	out := make([]Record, 0, len(r.rows))
	for _, rec := range r.rows {
		if filter != "" && !strings.Contains(strings.ToLower(rec.Location), filter) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) Totals(ctx context.Context) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var successful int64
	for _, rec := range r.rows {
		if rec.Success {
			successful++
		}
	}
	return int64(len(r.rows)), successful, nil
}

var _ Repo = (*MemoryRepo)(nil)

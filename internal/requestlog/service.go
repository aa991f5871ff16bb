package requestlog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"garden-backend/internal/shared/metrics"
	"garden-backend/internal/shared/storage/object"
	"garden-backend/internal/shared/telemetry"
)

// Service writes audit records and mirrors them to object storage. The Store
// may be nil, which disables the mirror entirely.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// Write persists a record and attempts a best-effort backup. It never returns
// an error: persistence failures are logged and swallowed so they cannot
// affect the HTTP response that has already been decided.
func (s *Service) Write(ctx context.Context, rec Record) {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	id, err := s.Repo.Insert(ctx, rec)
	if err != nil {
		telemetry.Error("requestlog.insert_failed", map[string]any{
			"location": rec.Location,
			"error":    err.Error(),
		})
		return
	}
	rec.ID = id

	telemetry.Info("requestlog.written", map[string]any{
		"id":       id,
		"location": rec.Location,
		"success":  rec.Success,
	})

	s.backup(ctx, rec)
}

// backup mirrors the record to object storage. Failures are logged and
// counted, never escalated; the primary row stays valid without a mirror.
func (s *Service) backup(ctx context.Context, rec Record) {
	if s.Store == nil {
		return
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		telemetry.Warn("requestlog.backup_marshal_failed", map[string]any{
			"id":    rec.ID,
			"error": err.Error(),
		})
		return
	}

	key := BackupKey(rec.ID, rec.Timestamp)
	metadata := map[string]string{
		"location":    rec.Location,
		"garden_type": rec.GardenType,
		"success":     strconv.FormatBool(rec.Success),
	}

	if err := s.Store.Put(ctx, key, "application/json", data, metadata); err != nil {
		metrics.IncBackupFailed()
		telemetry.Warn("requestlog.backup_failed", map[string]any{
			"id":    rec.ID,
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	if err := s.Repo.AttachBackup(ctx, rec.ID, key, time.Now().UTC()); err != nil {
		telemetry.Warn("requestlog.backup_attach_failed", map[string]any{
			"id":    rec.ID,
			"key":   key,
			"error": err.Error(),
		})
	}
}

// BackupKey builds the date-partitioned object key for a record.
func BackupKey(id int64, ts time.Time) string {
	ts = ts.UTC()
	return fmt.Sprintf("request-logs/%04d/%02d/%02d/%d_%s.json",
		ts.Year(), int(ts.Month()), ts.Day(), id, ts.Format("150405"))
}

// Recent returns recent records, clamping limit to 1-100 with a default of 50.
func (s *Service) Recent(ctx context.Context, limit int, location string) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	return s.Repo.Recent(ctx, limit, location)
}

// Stats summarizes logged requests. Average processing time is computed over
// the most recent 100 rows.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	total, successful, err := s.Repo.Totals(ctx)
	if err != nil {
		return Stats{}, err
	}

	recent, err := s.Repo.Recent(ctx, 100, "")
	if err != nil {
		return Stats{}, err
	}

	var sum, count float64
	for _, rec := range recent {
		if rec.ProcessingTimeMs > 0 {
			sum += float64(rec.ProcessingTimeMs)
			count++
		}
	}
	var avg float64
	if count > 0 {
		avg = sum / count
	}

	var rate float64
	if total > 0 {
		rate = float64(successful) / float64(total) * 100
	}

	return Stats{
		TotalRequests:       total,
		SuccessfulRequests:  successful,
		SuccessRate:         rate,
		AvgProcessingTimeMs: avg,
		RecentRequestsCount: len(recent),
		BackupEnabled:       s.Store != nil,
	}, nil
}

package requestlog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Insert appends a row and returns the generated id.
func (r *PGRepo) Insert(ctx context.Context, rec Record) (int64, error) {
	const query = `
INSERT INTO request_logs (
	timestamp, location, direction, water, maintenance, garden_type,
	response_json, plant_count, season, success, error_message, processing_time_ms
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`

	var id int64
	err := r.DB.QueryRowContext(ctx, query,
		rec.Timestamp,
		rec.Location,
		rec.Direction,
		rec.Water,
		rec.Maintenance,
		rec.GardenType,
		nullString(rec.ResponseJSON),
		rec.PlantCount,
		nullString(rec.Season),
		rec.Success,
		nullString(rec.ErrorMessage),
		rec.ProcessingTimeMs,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert request log: %w", err)
	}
	return id, nil
}

// AttachBackup records the backup key and timestamp on an existing row.
func (r *PGRepo) AttachBackup(ctx context.Context, id int64, key string, ts time.Time) error {
	const query = `UPDATE request_logs SET backup_key = $1, backup_timestamp = $2 WHERE id = $3`
	if _, err := r.DB.ExecContext(ctx, query, key, ts, id); err != nil {
		return fmt.Errorf("attach backup to request log %d: %w", id, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (r *PGRepo) Recent(ctx context.Context, limit int, location string) ([]Record, error) {
	query := `
SELECT id, timestamp, location, direction, water, maintenance, garden_type,
       response_json, plant_count, season, success, error_message, processing_time_ms,
       backup_key, backup_timestamp
FROM request_logs`
	args := []any{}
	if strings.TrimSpace(location) != "" {
		query += ` WHERE location ILIKE $1`
		args = append(args, "%"+strings.TrimSpace(location)+"%")
	}
	query += fmt.Sprintf(` ORDER BY timestamp DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query request logs: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var responseJSON, season, errorMessage, backupKey sql.NullString
		var plantCount, processingTime sql.NullInt64
		var backupTS sql.NullTime
		if err := rows.Scan(
			&rec.ID,
			&rec.Timestamp,
			&rec.Location,
			&rec.Direction,
			&rec.Water,
			&rec.Maintenance,
			&rec.GardenType,
			&responseJSON,
			&plantCount,
			&season,
			&rec.Success,
			&errorMessage,
			&processingTime,
			&backupKey,
			&backupTS,
		); err != nil {
			return nil, fmt.Errorf("scan request log: %w", err)
		}
		rec.ResponseJSON = responseJSON.String
		rec.Season = season.String
		rec.ErrorMessage = errorMessage.String
		rec.BackupKey = backupKey.String
		rec.PlantCount = int(plantCount.Int64)
		rec.ProcessingTimeMs = int(processingTime.Int64)
		if backupTS.Valid {
			ts := backupTS.Time
			rec.BackupTimestamp = &ts
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Totals returns overall and successful request counts.
func (r *PGRepo) Totals(ctx context.Context) (int64, int64, error) {
	const query = `SELECT COUNT(*), COUNT(*) FILTER (WHERE success) FROM request_logs`
	var total, successful int64
	if err := r.DB.QueryRowContext(ctx, query).Scan(&total, &successful); err != nil {
		return 0, 0, fmt.Errorf("count request logs: %w", err)
	}
	return total, successful, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Repo = (*PGRepo)(nil)

package requestlog

import (
	"context"
	"time"
)

// Repo persists request log records.
type Repo interface {
	// Insert appends a record and returns its assigned identifier.
	Insert(ctx context.Context, rec Record) (int64, error)
	// AttachBackup records the object-storage reference for an existing row.
	AttachBackup(ctx context.Context, id int64, key string, ts time.Time) error
	// Recent returns up to limit records, newest first, optionally filtered
	// by a case-insensitive location substring.
	Recent(ctx context.Context, limit int, location string) ([]Record, error)
	// Totals returns the overall and successful request counts.
	Totals(ctx context.Context) (total, successful int64, err error)
}

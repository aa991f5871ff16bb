package requestlog

import "time"

// Record is one append-only audit row per recommendation request. It is
// written once at the end of processing; only the backup reference is ever
// attached afterwards.
type Record struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Location   string `json:"location"`
	Direction  string `json:"direction"`
	Water      string `json:"water"`
	Maintenance string `json:"maintenance"`
	GardenType string `json:"garden_type"`

	ResponseJSON string `json:"response_json,omitempty"`
	PlantCount   int    `json:"plant_count"`
	Season       string `json:"season,omitempty"`

	Success          bool   `json:"success"`
	ErrorMessage     string `json:"error_message,omitempty"`
	ProcessingTimeMs int    `json:"processing_time_ms"`

	BackupKey       string     `json:"backup_key,omitempty"`
	BackupTimestamp *time.Time `json:"backup_timestamp,omitempty"`
}

// Stats summarizes logged requests.
type Stats struct {
	TotalRequests       int64   `json:"total_requests"`
	SuccessfulRequests  int64   `json:"successful_requests"`
	SuccessRate         float64 `json:"success_rate"`
	AvgProcessingTimeMs float64 `json:"average_processing_time_ms"`
	RecentRequestsCount int     `json:"recent_requests_count"`
	BackupEnabled       bool    `json:"backup_enabled"`
}

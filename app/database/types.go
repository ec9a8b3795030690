package database

import (
	"time"
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID           string    `json:"run_id"`
	Pipeline     string    `json:"pipeline"`
	Status       string    `json:"status"`
	Message      string    `json:"message,omitempty"`
	Matched      int       `json:"matched"`
	UpdatedPages int       `json:"updated_pages"`
	CreatedPages int       `json:"created_pages"`
	Skipped      int       `json:"skipped"`
	CreatedToday int       `json:"created_today"`
	UpdatedToday int       `json:"updated_today"`
	Notified     bool      `json:"notified"`
	StartedAt    time.Time `json:"started_at"`
	DurationMs   int64     `json:"duration_ms"`
}

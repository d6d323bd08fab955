package models

import (
	"fmt"
	"time"
)

// RunResult contains the outcome of one report run.
type RunResult struct {
	DryRun     bool        `json:"dry_run"`
	StartTime  time.Time   `json:"start_time"`
	EndTime    time.Time   `json:"end_time"`
	DurationMs int64       `json:"duration_ms"`
	Artifacts  []*Artifact `json:"artifacts,omitempty"`
	Summary    RunSummary  `json:"summary"`
	Errors     []string    `json:"errors,omitempty"`
}

// RunSummary provides aggregate statistics for a run.
type RunSummary struct {
	ScopesProcessed int `json:"scopes_processed"`
	TeamsFetched    int `json:"teams_fetched"`
	UsersIndexed    int `json:"users_indexed"`
	SeatsSeen       int `json:"seats_seen"`
	SeatsSkipped    int `json:"seats_skipped"`
	RowsEmitted     int `json:"rows_emitted"`
	Requests        int `json:"requests"`
	Retries         int `json:"retries"`
	RateLimitWaits  int `json:"rate_limit_waits"`
}

// IsSuccess returns true if the run recorded no errors.
func (r *RunResult) IsSuccess() bool {
	return len(r.Errors) == 0
}

// String returns a human-readable representation of the run summary.
func (s RunSummary) String() string {
	return fmt.Sprintf(
		"report completed. Scopes: %d, Teams: %d, Users indexed: %d, "+
			"Seats: %d seen / %d skipped, Rows: %d, "+
			"Requests: %d (%d retries, %d rate-limit waits)",
		s.ScopesProcessed, s.TeamsFetched, s.UsersIndexed,
		s.SeatsSeen, s.SeatsSkipped, s.RowsEmitted,
		s.Requests, s.Retries, s.RateLimitWaits,
	)
}

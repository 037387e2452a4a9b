package model

import "time"

// RunStatus represents the terminal state of a pipeline run.
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// Run is the persisted record of one pipeline invocation.
type Run struct {
	ID            string    `json:"id"`
	Source        string    `json:"source"`
	Status        RunStatus `json:"status"`
	TotalRecords  int       `json:"total_records"`
	ActiveRecords int       `json:"active_records"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

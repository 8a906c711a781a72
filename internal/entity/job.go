package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type JobState string

const (
	StateQueued   JobState = "queued"
	StateRunning  JobState = "running"
	StateFinished JobState = "finished"
	StateError    JobState = "error"
)

// Terminal reports whether no further progress updates are expected.
func (s JobState) Terminal() bool {
	return s == StateFinished || s == StateError
}

// MakeJobID derives the deduplication key for a job from its normalized
// parameters. Identical limits map to the same id, so repeated requests
// collapse onto one job. Deterministic and stable across restarts.
func MakeJobID(limit int64) string {
	return fmt.Sprintf("limit-%d", limit)
}

// Status and result records live under separate keys per job, so one record
// expiring slightly before the other still leaves something to read.
func StatusKey(jobID string) string { return "prime-job:" + jobID + ":status" }
func ResultKey(jobID string) string { return "prime-job:" + jobID + ":result" }

// JobStatus is the mutable in-flight record for a job. Written once by the
// enqueue path (queued) and by the worker for every state after that.
// Timestamps are epoch milliseconds.
type JobStatus struct {
	Status          JobState `json:"status"`
	JobID           string   `json:"jobId"`
	Limit           int64    `json:"limit"`
	Progress        float64  `json:"progress"`
	PrimeCountSoFar int64    `json:"primeCountSoFar"`
	StartedAt       int64    `json:"startedAt"`
	UpdatedAt       int64    `json:"updatedAt"`
	ErrorMessage    string   `json:"errorMessage,omitempty"`
}

// JobResult is the immutable terminal artifact of a successful run. Created
// once on completion, never mutated, retained for a bounded cache window.
type JobResult struct {
	Status     JobState `json:"status"`
	JobID      string   `json:"jobId"`
	Limit      int64    `json:"limit"`
	PrimeCount int64    `json:"primeCount"`
	DurationMs int64    `json:"durationMs"`
	StartedAt  int64    `json:"startedAt"`
	FinishedAt int64    `json:"finishedAt"`
}

// JobRun is one archived terminal outcome, persisted past the cache window.
type JobRun struct {
	ID         uuid.UUID `json:"id"`
	JobID      string    `json:"jobId"`
	Limit      int64     `json:"limit"`
	Status     JobState  `json:"status"`
	PrimeCount int64     `json:"primeCount"`
	DurationMs int64     `json:"durationMs"`
	Error      *string   `json:"error,omitempty"`
	FinishedAt time.Time `json:"finishedAt"`
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prime-job-service/internal/entity"
	"prime-job-service/internal/primes"
)

// MaxLimit caps the accepted bound; requests above it are clamped.
const MaxLimit = int64(500_000_000_000_000_000)

// MinLimit is the smallest meaningful bound; below it there is nothing to do.
const MinLimit = int64(2)

var (
	ErrInvalidLimit = errors.New("limit must be >= 2")
	ErrJobNotFound  = errors.New("job not found")
)

// Port over the status/result store (implementation: redisstore.JobStore).
// Store failures are treated like absence by this service: the worst case of
// a missed read is a redundant recompute of a deterministic job.
type JobStore interface {
	GetStatus(ctx context.Context, jobID string) (*entity.JobStatus, error)
	SetStatus(ctx context.Context, st *entity.JobStatus, ttl time.Duration) error
	GetResult(ctx context.Context, jobID string) (*entity.JobResult, error)
}

// Port over the run archive (implementation: postgresql.RunRepository).
type RunArchive interface {
	ListRecent(ctx context.Context, n int) ([]entity.JobRun, error)
}

// JobService is the request-facing core: admission with dedup and result
// caching, the merged status view, and the synchronous baseline path.
type JobService struct {
	store     JobStore
	dispatch  Dispatcher
	runs      RunArchive
	statusTTL time.Duration
}

func NewJobService(store JobStore, dispatch Dispatcher, runs RunArchive) *JobService {
	return &JobService{
		store:     store,
		dispatch:  dispatch,
		runs:      runs,
		statusTTL: 10 * time.Minute,
	}
}

// EnqueueView is the outcome of an admission attempt.
type EnqueueView struct {
	JobID     string
	FromCache bool
	Status    entity.JobState
	Progress  float64
	Result    *entity.JobResult
}

// StatusView merges the status and result records into one client answer.
type StatusView struct {
	JobID           string
	Status          entity.JobState
	Progress        float64
	PrimeCountSoFar int64
	Result          *entity.JobResult
}

func normalizeLimit(limit int64) (int64, error) {
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if limit < MinLimit {
		return 0, ErrInvalidLimit
	}
	return limit, nil
}

// Enqueue admits a job or short-circuits on prior state. Ordered checks:
// cached terminal result wins, then a live non-error status (already queued
// or running: nothing is dispatched twice), then fresh admission — one
// queued-status write plus one dispatch. The read-then-write dedup is
// best-effort; a racing double admission converges through the idempotent
// worker. The queued status carries a TTL so an orphaned admission (dispatch
// lost, worker never ran) self-heals instead of blocking retries forever.
func (s *JobService) Enqueue(ctx context.Context, limit int64) (EnqueueView, error) {
	limit, err := normalizeLimit(limit)
	if err != nil {
		return EnqueueView{}, err
	}
	jobID := entity.MakeJobID(limit)

	if res, err := s.store.GetResult(ctx, jobID); err == nil && res != nil && res.Status == entity.StateFinished {
		return EnqueueView{
			JobID:     jobID,
			FromCache: true,
			Status:    entity.StateFinished,
			Progress:  1,
			Result:    res,
		}, nil
	}

	if st, err := s.store.GetStatus(ctx, jobID); err == nil && st != nil && st.Status != entity.StateError {
		return EnqueueView{
			JobID:    jobID,
			Status:   st.Status,
			Progress: st.Progress,
		}, nil
	}

	now := time.Now().UnixMilli()
	queued := &entity.JobStatus{
		Status:    entity.StateQueued,
		JobID:     jobID,
		Limit:     limit,
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SetStatus(ctx, queued, s.statusTTL); err != nil {
		return EnqueueView{}, fmt.Errorf("write queued status: %w", err)
	}

	if err := s.dispatch.Publish(ctx, Task{JobID: jobID, Limit: limit}); err != nil {
		// queued status stays behind and expires; the caller may retry
		return EnqueueView{}, fmt.Errorf("dispatch job %s: %w", jobID, err)
	}

	return EnqueueView{JobID: jobID, Status: entity.StateQueued}, nil
}

// Status reads both records independently and tolerates either one missing:
// a result without a status still reads as finished with progress 1, a
// status without a result reports live progress. Both absent is not found.
func (s *JobService) Status(ctx context.Context, jobID string) (StatusView, error) {
	st, _ := s.store.GetStatus(ctx, jobID)
	res, _ := s.store.GetResult(ctx, jobID)

	if st == nil && res == nil {
		return StatusView{}, ErrJobNotFound
	}

	view := StatusView{JobID: jobID, Result: res}
	if st != nil {
		view.Status = st.Status
		view.Progress = st.Progress
		view.PrimeCountSoFar = st.PrimeCountSoFar
		return view, nil
	}

	view.Status = res.Status
	if res.Status == entity.StateFinished {
		view.Progress = 1
	}
	view.PrimeCountSoFar = res.PrimeCount
	return view, nil
}

// Direct runs the computation inline and returns the full result. Baseline
// path: no store, no queue, no cache semantics.
func (s *JobService) Direct(ctx context.Context, limit int64) (primes.Result, error) {
	limit, err := normalizeLimit(limit)
	if err != nil {
		return primes.Result{}, err
	}
	return primes.CountPrimes(limit, nil)
}

func (s *JobService) RecentRuns(ctx context.Context, n int) ([]entity.JobRun, error) {
	if n <= 0 {
		n = 20
	}
	if n > 100 {
		n = 100
	}
	return s.runs.ListRecent(ctx, n)
}

package worker

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"prime-job-service/internal/entity"
	"prime-job-service/internal/primes"
	"prime-job-service/internal/service"
)

// Port over the status/result store (implementation: redisstore.JobStore).
type JobStore interface {
	GetResult(ctx context.Context, jobID string) (*entity.JobResult, error)
	SetStatus(ctx context.Context, st *entity.JobStatus, ttl time.Duration) error
	SetResult(ctx context.Context, res *entity.JobResult, ttl time.Duration) error
}

// Port over the run archive (implementation: postgresql.RunRepository).
// Archive writes are best-effort and never fail the job.
type RunArchive interface {
	Insert(ctx context.Context, run entity.JobRun) (uuid.UUID, error)
}

// Handler executes one dispatched job: runs the computation, streams status
// into the store, and leaves a terminal record behind. Safe under
// at-least-once delivery: the work is deterministic and every write is keyed
// by jobId, so a redelivered task overwrites with equivalent values — and a
// task whose result already exists is skipped outright.
type Handler struct {
	store JobStore
	runs  RunArchive

	count        func(limit int64, onProgress func(primes.Progress) error) (primes.Result, error)
	retentionTTL time.Duration
}

func NewHandler(store JobStore, runs RunArchive) *Handler {
	return &Handler{
		store:        store,
		runs:         runs,
		count:        primes.CountPrimes,
		retentionTTL: 10 * time.Minute,
	}
}

func (h *Handler) Handle(ctx context.Context, task service.Task) error {
	start := time.Now()

	// duplicate delivery with a finished result: nothing to redo
	if res, err := h.store.GetResult(ctx, task.JobID); err == nil && res != nil && res.Status == entity.StateFinished {
		log.Printf("[worker] job_id=%s limit=%d duplicate_delivery=skipped", task.JobID, task.Limit)
		return nil
	}

	startedAt := start.UnixMilli()
	running := &entity.JobStatus{
		Status:    entity.StateRunning,
		JobID:     task.JobID,
		Limit:     task.Limit,
		StartedAt: startedAt,
		UpdatedAt: startedAt,
	}
	// the running record carries a generous TTL refreshed on every progress
	// write, so a crashed worker can't block re-admission forever
	if err := h.store.SetStatus(ctx, running, h.retentionTTL); err != nil {
		log.Printf("[worker] job_id=%s set_status=running error=%v", task.JobID, err)
	}

	log.Printf("[worker] job_id=%s limit=%d status=running", task.JobID, task.Limit)

	result, countErr := h.count(task.Limit, func(p primes.Progress) error {
		st := &entity.JobStatus{
			Status:          entity.StateRunning,
			JobID:           task.JobID,
			Limit:           task.Limit,
			Progress:        p.Progress,
			PrimeCountSoFar: p.PrimeCountSoFar,
			StartedAt:       startedAt,
			UpdatedAt:       time.Now().UnixMilli(),
		}
		if err := h.store.SetStatus(ctx, st, h.retentionTTL); err != nil {
			// progress writes are best-effort; only the terminal write matters
			log.Printf("[worker] job_id=%s progress_write error=%v", task.JobID, err)
		}
		return nil
	})
	if countErr != nil {
		h.recordError(ctx, task, startedAt, countErr)

		log.Printf("[worker] job_id=%s limit=%d status=error duration_ms=%d error=%s",
			task.JobID, task.Limit, time.Since(start).Milliseconds(), countErr.Error(),
		)
		return countErr
	}

	finishedAt := time.Now().UnixMilli()
	jobResult := &entity.JobResult{
		Status:     entity.StateFinished,
		JobID:      task.JobID,
		Limit:      result.Limit,
		PrimeCount: result.PrimeCount,
		DurationMs: result.DurationMs,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
	}
	finalStatus := &entity.JobStatus{
		Status:          entity.StateFinished,
		JobID:           task.JobID,
		Limit:           task.Limit,
		Progress:        1,
		PrimeCountSoFar: result.PrimeCount,
		StartedAt:       startedAt,
		UpdatedAt:       finishedAt,
	}

	// both terminal writes are attempted even if one fails
	resultErr := h.store.SetResult(ctx, jobResult, h.retentionTTL)
	if resultErr != nil {
		log.Printf("[worker] job_id=%s set_result error=%v", task.JobID, resultErr)
	}
	if err := h.store.SetStatus(ctx, finalStatus, h.retentionTTL); err != nil {
		log.Printf("[worker] job_id=%s set_status=finished error=%v", task.JobID, err)
	}

	h.archive(ctx, entity.JobRun{
		JobID:      task.JobID,
		Limit:      task.Limit,
		Status:     entity.StateFinished,
		PrimeCount: result.PrimeCount,
		DurationMs: result.DurationMs,
	})

	log.Printf("[worker] job_id=%s limit=%d status=finished prime_count=%d duration_ms=%d",
		task.JobID, task.Limit, result.PrimeCount, result.DurationMs,
	)

	// a lost result write means no cache entry: let the dispatcher redeliver
	return resultErr
}

func (h *Handler) recordError(ctx context.Context, task service.Task, startedAt int64, cause error) {
	msg := cause.Error()
	errStatus := &entity.JobStatus{
		Status:       entity.StateError,
		JobID:        task.JobID,
		Limit:        task.Limit,
		StartedAt:    startedAt,
		UpdatedAt:    time.Now().UnixMilli(),
		ErrorMessage: msg,
	}
	if err := h.store.SetStatus(ctx, errStatus, h.retentionTTL); err != nil {
		log.Printf("[worker] job_id=%s set_status=error error=%v", task.JobID, err)
	}

	h.archive(ctx, entity.JobRun{
		JobID:  task.JobID,
		Limit:  task.Limit,
		Status: entity.StateError,
		Error:  &msg,
	})
}

func (h *Handler) archive(ctx context.Context, run entity.JobRun) {
	if h.runs == nil {
		return
	}
	if _, err := h.runs.Insert(ctx, run); err != nil {
		log.Printf("[worker] job_id=%s archive error=%v", run.JobID, err)
	}
}

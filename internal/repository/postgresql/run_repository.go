package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"prime-job-service/internal/entity"
)

var ErrNotFound = errors.New("not found")

func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// RunRepository archives terminal job outcomes. Live job state stays in
// Redis behind TTLs; this table is the durable record once those expire.
//
// Expected schema:
//
//	CREATE TABLE job_runs (
//	    id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
//	    job_id      text NOT NULL,
//	    job_limit   bigint NOT NULL,
//	    status      text NOT NULL,
//	    prime_count bigint NOT NULL DEFAULT 0,
//	    duration_ms bigint NOT NULL DEFAULT 0,
//	    error       text,
//	    finished_at timestamptz NOT NULL DEFAULT now()
//	);
type RunRepository struct {
	pool *pgxpool.Pool
}

func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

func (r *RunRepository) Insert(ctx context.Context, run entity.JobRun) (uuid.UUID, error) {
	const q = `
INSERT INTO job_runs (job_id, job_limit, status, prime_count, duration_ms, error, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id;
`
	finishedAt := run.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, q,
		run.JobID,
		run.Limit,
		string(run.Status),
		run.PrimeCount,
		run.DurationMs,
		run.Error, // NULL when nil
		finishedAt,
	).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *RunRepository) ListRecent(ctx context.Context, n int) ([]entity.JobRun, error) {
	const q = `
SELECT id, job_id, job_limit, status, prime_count, duration_ms, error, finished_at
FROM job_runs
ORDER BY finished_at DESC
LIMIT $1;
`
	rows, err := r.pool.Query(ctx, q, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []entity.JobRun
	for rows.Next() {
		var (
			run        entity.JobRun
			statusText string
			errText    *string
			finishedAt time.Time
		)
		if err := rows.Scan(
			&run.ID,
			&run.JobID,
			&run.Limit,
			&statusText,
			&run.PrimeCount,
			&run.DurationMs,
			&errText,
			&finishedAt,
		); err != nil {
			return nil, err
		}
		run.Status = entity.JobState(statusText)
		run.Error = errText
		run.FinishedAt = finishedAt
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

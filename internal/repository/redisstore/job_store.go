package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"prime-job-service/internal/entity"
)

var ErrNotFound = errors.New("not found")

// JobStore reads and writes the per-job status and result records in Redis.
// A ttl of zero means no expiry. Keys are owned by this store; nothing else
// writes them.
type JobStore struct {
	rdb *redis.Client
}

func NewJobStore(rdb *redis.Client) *JobStore {
	return &JobStore{rdb: rdb}
}

func (s *JobStore) GetStatus(ctx context.Context, jobID string) (*entity.JobStatus, error) {
	raw, err := s.rdb.Get(ctx, entity.StatusKey(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var st entity.JobStatus
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode status %s: %w", jobID, err)
	}
	return &st, nil
}

func (s *JobStore) SetStatus(ctx context.Context, st *entity.JobStatus, ttl time.Duration) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, entity.StatusKey(st.JobID), raw, ttl).Err()
}

func (s *JobStore) GetResult(ctx context.Context, jobID string) (*entity.JobResult, error) {
	raw, err := s.rdb.Get(ctx, entity.ResultKey(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var res entity.JobResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", jobID, err)
	}
	return &res, nil
}

func (s *JobStore) SetResult(ctx context.Context, res *entity.JobResult, ttl time.Duration) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, entity.ResultKey(res.JobID), raw, ttl).Err()
}

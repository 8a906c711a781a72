package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Task is the dispatch envelope handed to the worker.
type Task struct {
	JobID string `json:"jobId"`
	Limit int64  `json:"limit"`
}

// Dispatcher is the admission-side port: hand an admitted job to the
// delivery mechanism. (Implementation: RedisQueue)
type Dispatcher interface {
	Publish(ctx context.Context, task Task) error
}

// Queue is the worker-side port. Delivery is at-least-once: a claimed task
// that is never acked comes back via RequeueStale, and a failed task is
// redelivered until its attempt budget runs out.
type Queue interface {
	ClaimBlocking(ctx context.Context, timeout time.Duration) (Task, error)
	Ack(ctx context.Context, task Task) error
	Fail(ctx context.Context, task Task) (requeued bool, err error)
	RequeueStale(ctx context.Context, max int64) (int64, error)
}

const DefaultMaxAttempts = 3

// RedisQueue implements a reliable delivery queue over Redis lists.
// Publish: LPUSH queueKey
// Claim:   BRPOPLPUSH queueKey -> processingKey, attempt counted in a hash
// Ack:     LREM from processingKey, accounting cleared
// Fail:    back to queueKey while attempts < maxAttempts, dropped after
type RedisQueue struct {
	rdb           *redis.Client
	queueKey      string
	processingKey string
	attemptsKey   string
	maxAttempts   int64
}

func NewRedisQueue(rdb *redis.Client, queueKey, processingKey string, maxAttempts int64) *RedisQueue {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &RedisQueue{
		rdb:           rdb,
		queueKey:      queueKey,
		processingKey: processingKey,
		attemptsKey:   processingKey + ":attempts",
		maxAttempts:   maxAttempts,
	}
}

func encodeTask(task Task) ([]byte, error) {
	return json.Marshal(task)
}

func (q *RedisQueue) Publish(ctx context.Context, task Task) error {
	payload, err := encodeTask(task)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, q.queueKey, payload).Err()
}

// ClaimBlocking waits up to timeout for a task. Returns redis.Nil when
// nothing arrived in time.
func (q *RedisQueue) ClaimBlocking(ctx context.Context, timeout time.Duration) (Task, error) {
	raw, err := q.rdb.BRPopLPush(ctx, q.queueKey, q.processingKey, timeout).Result()
	if err != nil {
		return Task{}, err
	}

	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		// malformed envelope: drop it from processing so it doesn't loop
		_ = q.rdb.LRem(ctx, q.processingKey, 1, raw).Err()
		return Task{}, err
	}

	if err := q.rdb.HIncrBy(ctx, q.attemptsKey, task.JobID, 1).Err(); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (q *RedisQueue) Ack(ctx context.Context, task Task) error {
	payload, err := encodeTask(task)
	if err != nil {
		return err
	}
	if err := q.rdb.LRem(ctx, q.processingKey, 1, payload).Err(); err != nil {
		return err
	}
	_ = q.rdb.HDel(ctx, q.attemptsKey, task.JobID).Err()
	return nil
}

// Fail removes the task from processing and requeues it unless its attempt
// budget is spent. The error JobStatus already written by the worker is the
// user-visible surface once the budget runs out.
func (q *RedisQueue) Fail(ctx context.Context, task Task) (bool, error) {
	payload, err := encodeTask(task)
	if err != nil {
		return false, err
	}
	if err := q.rdb.LRem(ctx, q.processingKey, 1, payload).Err(); err != nil {
		return false, err
	}

	attempts, err := q.rdb.HGet(ctx, q.attemptsKey, task.JobID).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	if attempts >= q.maxAttempts {
		_ = q.rdb.HDel(ctx, q.attemptsKey, task.JobID).Err()
		return false, nil
	}

	if err := q.rdb.LPush(ctx, q.queueKey, payload).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// RequeueStale moves items from processing back to the queue, up to max.
// It's a simple reaper for tasks orphaned by a crashed worker; attempt
// accounting is left intact so redelivery stays bounded.
func (q *RedisQueue) RequeueStale(ctx context.Context, max int64) (int64, error) {
	var moved int64

	for i := int64(0); i < max; i++ {
		raw, err := q.rdb.RPopLPush(ctx, q.processingKey, q.queueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				break
			}
			return moved, err
		}
		if raw != "" {
			moved++
		}
	}

	return moved, nil
}

package worker

import (
	"context"
	"log"
	"time"

	"prime-job-service/internal/service"
)

type Pool struct {
	queue      service.Queue
	handler    *Handler
	workers    int
	claimDelay time.Duration
}

func NewPool(queue service.Queue, handler *Handler, workers int) *Pool {
	if workers <= 0 {
		workers = 4
	}
	return &Pool{
		queue:      queue,
		handler:    handler,
		workers:    workers,
		claimDelay: 5 * time.Second,
	}
}

func (p *Pool) Run(ctx context.Context) {
	log.Printf("worker pool started: workers=%d", p.workers)

	taskCh := make(chan service.Task)

	for i := 0; i < p.workers; i++ {
		go func(n int) {
			for task := range taskCh {
				err := p.handler.Handle(ctx, task)
				if err != nil {
					log.Printf("[worker-%d] job_id=%s handle error=%v", n, task.JobID, err)

					// the error status is already in the store; Fail decides
					// whether the attempt budget allows a redelivery
					requeued, failErr := p.queue.Fail(ctx, task)
					if failErr != nil {
						log.Printf("[worker-%d] job_id=%s fail error=%v", n, task.JobID, failErr)
					} else if requeued {
						log.Printf("[worker-%d] job_id=%s requeued for retry", n, task.JobID)
					} else {
						log.Printf("[worker-%d] job_id=%s dropped after retry budget", n, task.JobID)
					}
					continue
				}

				if ackErr := p.queue.Ack(ctx, task); ackErr != nil {
					log.Printf("[worker-%d] job_id=%s ack error=%v", n, task.JobID, ackErr)
				}
			}
		}(i + 1)
	}

	// listener: claim from queue -> processing, feed the workers
	for {
		select {
		case <-ctx.Done():
			close(taskCh)
			log.Println("worker pool stopped")
			return
		default:
			task, err := p.queue.ClaimBlocking(ctx, p.claimDelay)
			if err != nil {
				// timeout/redis.Nil/ctx cancel are all non-fatal here
				continue
			}
			select {
			case taskCh <- task:
			case <-ctx.Done():
				close(taskCh)
				return
			}
		}
	}
}

package jobqueue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/dripgate/dripgate/internal/pkg/cache"
	"github.com/redis/go-redis/v9"
)

const (
	queueKey    = "jobqueue:pending"
	popTimeout  = 5 * time.Second
	retryDelay  = 2 * time.Second
)

// Processor handles one job type.
type Processor func(job *Job) error

// Queue is a Redis-list backed background job queue. Producers enqueue,
// one worker goroutine drains.
type Queue struct {
	client     *redis.Client
	processors map[JobType]Processor
}

// NewQueue creates a queue on the shared Redis client.
func NewQueue() *Queue {
	return &Queue{
		client:     cache.GetClient(),
		processors: make(map[JobType]Processor),
	}
}

// Register attaches the processor for a job type. Must be called before
// StartWorker.
func (q *Queue) Register(jobType JobType, p Processor) {
	q.processors[jobType] = p
}

// Enqueue serializes the job onto the pending list.
func (q *Queue) Enqueue(job *Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.RPush(context.Background(), queueKey, raw).Err()
}

// StartWorker runs the drain loop until the context is cancelled.
func (q *Queue) StartWorker(ctx context.Context) {
	log.Printf("job queue worker started")
	for {
		select {
		case <-ctx.Done():
			log.Printf("job queue worker stopped: %v", ctx.Err())
			return
		default:
		}

		result, err := q.client.BLPop(ctx, popTimeout, queueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			log.Printf("job queue pop failed: %v", err)
			time.Sleep(retryDelay)
			continue
		}
		if len(result) < 2 {
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			log.Printf("job queue: dropping unreadable job: %v", err)
			continue
		}

		q.process(&job)
	}
}

func (q *Queue) process(job *Job) {
	processor, ok := q.processors[job.Type]
	if !ok {
		log.Printf("job %s: no processor for type %s", job.ID, job.Type)
		return
	}

	job.Status = JobStatusProcessing
	if err := processor(job); err != nil {
		job.RetryCount++
		if job.IsRetryable() {
			job.Status = JobStatusPending
			log.Printf("job %s (%s) failed, requeueing (%d/%d): %v",
				job.ID, job.Type, job.RetryCount, job.MaxRetries, err)
			if qerr := q.Enqueue(job); qerr != nil {
				log.Printf("job %s: requeue failed: %v", job.ID, qerr)
			}
			return
		}
		job.Status = JobStatusFailed
		log.Printf("job %s (%s) failed permanently: %v", job.ID, job.Type, err)
		return
	}

	job.Status = JobStatusCompleted
}

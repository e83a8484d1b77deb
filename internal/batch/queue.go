// Package batch runs invoice processing jobs on a bounded worker pool.
package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is the smallest useful unit: one invoice payload to process.
type Job struct {
	Path        string
	SubmittedAt time.Time
	TraceID     string
}

// Processor handles a single invoice payload file.
type Processor interface {
	Process(ctx context.Context, path string) error
}

type Queue struct {
	proc    Processor
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*Queue)

func WithWorkers(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithProcessTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewQueue(proc Processor, logger *slog.Logger, opts ...Option) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{
		proc:    proc,
		logger:  logger,
		workers: 4,
		timeout: 3 * time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *Queue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Debug("batch.worker.started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					err := q.proc.Process(ctx, job.Path)
					cancel()

					if err != nil {
						q.logger.Error("batch.job.failed", "worker_id", workerID, "path", job.Path, "error", err)
					} else {
						q.logger.Info("batch.job.ok", "worker_id", workerID, "path", job.Path)
					}
				}

				q.logger.Debug("batch.worker.stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *Queue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("batch.enqueue.rejected", "path", job.Path)
		return nil
	}
	select {
	case q.ch <- job:
		q.logger.Debug("batch.enqueue.ok", "path", job.Path)
	default:
		q.logger.Warn("batch.enqueue.backpressure", "path", job.Path)
		q.ch <- job
	}
	return nil
}

// Shutdown stops intake, drains the queue, and waits for the workers,
// giving up when ctx expires.
func (q *Queue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()
	select {
	case <-done:
	case <-ctx.Done():
		q.logger.Warn("batch.shutdown.timeout")
	}
}

package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Job is a deferred side effect: notification dispatch, badge
// evaluation. Jobs run after the primary request has been answered and
// must never surface their failures to the caller.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Outbox is an in-process side-effect queue consumed by a small worker
// pool. A failed job is retried once, then logged and dropped.
type Outbox struct {
	jobs    chan Job
	workers int
	logger  zerolog.Logger

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewOutbox creates an Outbox with the given queue size and worker count
func NewOutbox(queueSize, workers int, logger zerolog.Logger) *Outbox {
	if queueSize <= 0 {
		queueSize = 256
	}
	if workers <= 0 {
		workers = 2
	}
	return &Outbox{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		logger:  logger,
	}
}

// Start launches the worker pool
func (o *Outbox) Start() {
	o.startOnce.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		o.cancel = cancel
		for i := 0; i < o.workers; i++ {
			o.wg.Add(1)
			go o.work(ctx)
		}
	})
}

// Enqueue queues a job without blocking. A full queue drops the job,
// which is acceptable for best-effort side effects.
func (o *Outbox) Enqueue(job Job) bool {
	select {
	case o.jobs <- job:
		return true
	default:
		o.logger.Warn().Str("job", job.Name).Msg("outbox full, job dropped")
		return false
	}
}

// Stop cancels running jobs and waits for workers to exit
func (o *Outbox) Stop() {
	o.stopOnce.Do(func() {
		if o.cancel != nil {
			o.cancel()
		}
		close(o.jobs)
		o.wg.Wait()
	})
}

func (o *Outbox) work(ctx context.Context) {
	defer o.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-o.jobs:
			if !ok {
				return
			}
			o.execute(ctx, job)
		}
	}
}

// execute runs a job with one retry. Failures are logged once and
// dropped, never propagated.
func (o *Outbox) execute(ctx context.Context, job Job) {
	err := job.Run(ctx)
	if err == nil {
		return
	}
	if ctx.Err() != nil {
		return
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(500 * time.Millisecond):
	}

	if err := job.Run(ctx); err != nil {
		o.logger.Error().Err(err).Str("job", job.Name).Msg("side-effect job failed, dropping")
	}
}

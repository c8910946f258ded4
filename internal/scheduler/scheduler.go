package scheduler

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Task a registered periodic job
type Task struct {
	Name     string
	Interval time.Duration
	Handler  func() error
	LastRun  time.Time
	NextRun  time.Time
	RunCount int64
	LastErr  error
}

// Scheduler runs periodic maintenance jobs in-process: the featured
// expiry sweep, subscription expiry. Handlers must be idempotent.
type Scheduler struct {
	tasks  []*Task
	mu     sync.RWMutex
	logger zerolog.Logger
	tick   time.Duration
	stop   chan struct{}
	wg     sync.WaitGroup
}

// New creates a Scheduler polling at the given tick interval
func New(logger zerolog.Logger, tick time.Duration) *Scheduler {
	if tick <= 0 {
		tick = 30 * time.Second
	}
	return &Scheduler{
		tasks:  make([]*Task, 0),
		logger: logger,
		tick:   tick,
		stop:   make(chan struct{}),
	}
}

// Register adds a periodic task
func (s *Scheduler) Register(name string, interval time.Duration, handler func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, &Task{
		Name:     name,
		Interval: interval,
		Handler:  handler,
		NextRun:  time.Now().Add(interval),
	})

	s.logger.Info().Str("task", name).Dur("interval", interval).Msg("scheduled task registered")
}

// Start launches the background loop
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.tick)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case now := <-ticker.C:
				s.runDue(now)
			}
		}
	}()
}

// Stop halts the loop and waits for it to exit
func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()
}

func (s *Scheduler) runDue(now time.Time) {
	s.mu.Lock()
	var due []*Task
	for _, t := range s.tasks {
		if !now.Before(t.NextRun) {
			due = append(due, t)
			t.LastRun = now
			t.NextRun = now.Add(t.Interval)
			t.RunCount++
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		if err := t.Handler(); err != nil {
			s.mu.Lock()
			t.LastErr = err
			s.mu.Unlock()
			s.logger.Error().Err(err).Str("task", t.Name).Msg("scheduled task failed")
		}
	}
}

package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestOutbox_RunsEnqueuedJobs(t *testing.T) {
	outbox := NewOutbox(8, 2, zerolog.Nop())
	outbox.Start()

	var ran atomic.Int32
	done := make(chan struct{})
	outbox.Enqueue(Job{Name: "test", Run: func(ctx context.Context) error {
		ran.Add(1)
		close(done)
		return nil
	}})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
	assert.Equal(t, int32(1), ran.Load())
	outbox.Stop()
}

func TestOutbox_RetriesOnceThenDrops(t *testing.T) {
	outbox := NewOutbox(8, 1, zerolog.Nop())
	outbox.Start()
	defer outbox.Stop()

	var attempts atomic.Int32
	outbox.Enqueue(Job{Name: "flaky", Run: func(ctx context.Context) error {
		attempts.Add(1)
		return errors.New("boom")
	}})

	assert.Eventually(t, func() bool {
		return attempts.Load() == 2
	}, 3*time.Second, 20*time.Millisecond)

	// No third attempt after the retry.
	time.Sleep(700 * time.Millisecond)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestOutbox_SecondAttemptCanSucceed(t *testing.T) {
	outbox := NewOutbox(8, 1, zerolog.Nop())
	outbox.Start()
	defer outbox.Stop()

	var attempts atomic.Int32
	outbox.Enqueue(Job{Name: "recovers", Run: func(ctx context.Context) error {
		if attempts.Add(1) == 1 {
			return errors.New("transient")
		}
		return nil
	}})

	assert.Eventually(t, func() bool {
		return attempts.Load() == 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestOutbox_FullQueueDropsWithoutBlocking(t *testing.T) {
	outbox := NewOutbox(1, 1, zerolog.Nop())
	// Not started: the single slot fills and stays full.

	block := Job{Name: "filler", Run: func(ctx context.Context) error { return nil }}
	assert.True(t, outbox.Enqueue(block))
	assert.False(t, outbox.Enqueue(block))
}

func TestOutbox_StopWaitsForWorkers(t *testing.T) {
	outbox := NewOutbox(8, 2, zerolog.Nop())
	outbox.Start()

	started := make(chan struct{})
	outbox.Enqueue(Job{Name: "slow", Run: func(ctx context.Context) error {
		close(started)
		select {
		case <-ctx.Done():
		case <-time.After(100 * time.Millisecond):
		}
		return nil
	}})

	<-started
	outbox.Stop()
	// Stop is idempotent.
	outbox.Stop()
}

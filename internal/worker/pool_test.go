package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsSubmittedJobs(t *testing.T) {
	pool := NewPool(2)
	pool.Start(context.Background())

	var ran int64
	for i := 0; i < 8; i++ {
		pool.Submit(func(ctx context.Context) error {
			atomic.AddInt64(&ran, 1)
			return nil
		})
	}
	pool.Stop()

	assert.Equal(t, int64(8), atomic.LoadInt64(&ran))
}

func TestPoolDropsWhenQueueFull(t *testing.T) {
	// not started, so the buffer (size*4) fills and the overflow job is
	// dropped without blocking the caller
	pool := NewPool(1)

	var ran int64
	for i := 0; i < 6; i++ {
		pool.Submit(func(ctx context.Context) error {
			atomic.AddInt64(&ran, 1)
			return nil
		})
	}

	pool.Start(context.Background())
	pool.Stop()

	assert.Equal(t, int64(4), atomic.LoadInt64(&ran))
}

func TestPoolSurvivesJobErrors(t *testing.T) {
	pool := NewPool(1)
	pool.Start(context.Background())

	var ran int64
	pool.Submit(func(ctx context.Context) error {
		return errors.New("boom")
	})
	pool.Submit(func(ctx context.Context) error {
		atomic.AddInt64(&ran, 1)
		return nil
	})
	pool.Stop()

	assert.Equal(t, int64(1), atomic.LoadInt64(&ran))
}

// Package worker runs fire-and-forget tasks off the request path.
// Notification emails are handed here so a slow or failing mail broker
// can never block or fail the caller.
package worker

import (
	"context"
	"sync"

	"github.com/placementcell/placement_service/internal/logger"
	"github.com/rs/zerolog"
)

type Job func(ctx context.Context) error

type Pool struct {
	size int
	jobs chan Job
	wg   sync.WaitGroup
	log  zerolog.Logger
}

func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{
		size: size,
		jobs: make(chan Job, size*4),
		log:  logger.Get(),
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.log.Info().Int("workers", p.size).Msg("starting worker pool")
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
	p.log.Info().Msg("worker pool stopped")
}

// Submit enqueues a job. If the queue is full the job is dropped and
// logged; callers treat submission as best-effort.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		p.log.Warn().Msg("worker queue full, job dropped")
	}
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()

	log := p.log.With().Int("worker", id).Logger()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			if err := job(ctx); err != nil {
				log.Error().Err(err).Msg("background job failed")
			}
		}
	}
}

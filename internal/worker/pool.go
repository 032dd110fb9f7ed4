// Package worker backfills audio features for tracks whose features the
// provider could not supply, by analyzing their preview audio off the
// request path.
package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jeredson/Spoti-Finder/internal/core/ports"
)

// Job identifies one track whose preview should be analyzed.
type Job struct {
	TrackID    string
	PreviewURL string
}

// Pool manages background workers for preview analysis jobs.
type Pool struct {
	repo    ports.CatalogRepository
	analyze func(ctx context.Context, url string) (float64, error)
	jobs    chan Job
	wg      sync.WaitGroup
	log     zerolog.Logger
}

// NewPool creates a worker pool with the given queue size.
func NewPool(repo ports.CatalogRepository, queueSize int, log zerolog.Logger) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		repo:    repo,
		analyze: analyzePreviewEnergy,
		jobs:    make(chan Job, queueSize),
		log:     log,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking. A full queue drops the job; the
// backfill is best-effort and the next refresh resubmits.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		p.log.Warn().Str("track", job.TrackID).Msg("backfill queue full, dropping job")
	}
}

func (p *Pool) processJob(job Job) {
	if job.PreviewURL == "" {
		p.log.Debug().Str("track", job.TrackID).Msg("no preview url, skipping analysis")
		return
	}

	energy, err := p.analyze(context.Background(), job.PreviewURL)
	if err != nil {
		p.log.Warn().Err(err).Str("track", job.TrackID).Msg("preview analysis failed")
		return
	}

	if err := p.repo.UpdateTrackEnergy(context.Background(), job.TrackID, energy); err != nil {
		p.log.Warn().Err(err).Str("track", job.TrackID).Msg("failed to store analyzed energy")
		return
	}
	p.log.Info().Str("track", job.TrackID).Float64("energy", energy).Msg("backfilled track energy")
}

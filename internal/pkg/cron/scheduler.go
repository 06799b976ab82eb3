package cron

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrStop returned from a job's Fn ends that job for good. Other jobs keep
// running.
var ErrStop = errors.New("cron: stop job")

// Job represents a scheduled job
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewScheduler creates a new cron scheduler
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make([]Job, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob adds a job to the scheduler
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop gracefully stops all scheduled jobs
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// runJob runs a single job on its schedule
func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	// Run immediately on start
	if s.executeJob(job) {
		return
	}

	for {
		select {
		case <-s.ctx.Done():
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-ticker.C:
			if s.executeJob(job) {
				return
			}
		}
	}
}

// executeJob executes a job, logs results and reports whether the job
// asked to stop
func (s *Scheduler) executeJob(job Job) bool {
	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	err := job.Fn(s.ctx)
	switch {
	case errors.Is(err, ErrStop):
		slog.Info("Cron job finished", "name", job.Name, "duration", time.Since(start))
		return true
	case err != nil:
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	default:
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
	return false
}

package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/readiness"
)

// HealthProber checks whether the backend answers.
type HealthProber interface {
	Health(ctx context.Context) error
}

// ReadinessJobs polls the backend until it first answers, then stops.
type ReadinessJobs struct {
	gate    *readiness.Gate
	prober  HealthProber
	timeout time.Duration
	onReady func(readiness.Status)
}

func NewReadinessJobs(gate *readiness.Gate, prober HealthProber, timeout time.Duration, onReady func(readiness.Status)) *ReadinessJobs {
	return &ReadinessJobs{
		gate:    gate,
		prober:  prober,
		timeout: timeout,
		onReady: onReady,
	}
}

func (j *ReadinessJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("backend_readiness", interval, j.Probe)
}

// Probe makes one health check. A healthy answer marks the gate ready and
// ends the job.
func (j *ReadinessJobs) Probe(ctx context.Context) error {
	if j.gate.Ready() {
		return ErrStop
	}

	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	if err := j.prober.Health(ctx); err != nil {
		j.gate.Attempt()
		slog.Debug("Backend not ready yet", "error", err, "attempts", j.gate.Status().Attempts)
		return nil
	}

	if j.gate.MarkReady() {
		status := j.gate.Status()
		slog.Info("Backend ready", "attempts", status.Attempts)
		if j.onReady != nil {
			j.onReady(status)
		}
	}
	return ErrStop
}

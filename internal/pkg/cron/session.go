package cron

import (
	"context"
	"time"
)

// SessionSweeper evicts idle UI sessions.
type SessionSweeper interface {
	Sweep(ctx context.Context) error
}

type SessionJobs struct {
	store SessionSweeper
}

func NewSessionJobs(store SessionSweeper) *SessionJobs {
	return &SessionJobs{store: store}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("expire_sessions", interval, j.store.Sweep)
}

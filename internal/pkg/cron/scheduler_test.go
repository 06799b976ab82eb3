package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite-web/internal/pkg/readiness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	failures int32
	calls    atomic.Int32
}

func (f *fakeProber) Health(ctx context.Context) error {
	if f.calls.Add(1) <= f.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestScheduler_ErrStopEndsJob(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("stopper", 5*time.Millisecond, func(ctx context.Context) error {
		if runs.Add(1) == 2 {
			return ErrStop
		}
		return nil
	})

	s.Start()
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(2), runs.Load())
}

func TestReadinessJobs_PollsUntilHealthy(t *testing.T) {
	gate := readiness.NewGate()
	prober := &fakeProber{failures: 2}
	var announced atomic.Int32

	jobs := NewReadinessJobs(gate, prober, time.Second, func(readiness.Status) {
		announced.Add(1)
	})

	s := NewScheduler()
	jobs.RegisterJobs(s, 5*time.Millisecond)
	s.Start()
	defer s.Stop()

	select {
	case <-gate.Done():
	case <-time.After(time.Second):
		t.Fatal("gate never became ready")
	}

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(3), prober.calls.Load(), "polling stops after the first healthy probe")
	assert.Equal(t, int32(1), announced.Load())
	assert.Equal(t, 3, gate.Status().Attempts)
}

func TestReadinessJobs_ProbeAfterReady(t *testing.T) {
	gate := readiness.NewGate()
	require.True(t, gate.MarkReady())

	prober := &fakeProber{}
	jobs := NewReadinessJobs(gate, prober, 0, nil)

	assert.ErrorIs(t, jobs.Probe(context.Background()), ErrStop)
	assert.Equal(t, int32(0), prober.calls.Load())
}

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSchedulerRunsTaskImmediatelyAndPeriodically(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(zap.NewNop())
	s.Register(TaskFunc{
		TaskName: "tick",
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	}, time.Second)

	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop(context.Background()) }()

	assert.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestSchedulerKeepsRunningAfterTaskError(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler(zap.NewNop())
	s.Register(TaskFunc{
		TaskName: "flaky",
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return errors.New("boom")
		},
	}, time.Second)

	require.NoError(t, s.Start(context.Background()))
	defer func() { _ = s.Stop(context.Background()) }()

	assert.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	s.Register(TaskFunc{
		TaskName: "noop",
		Fn:       func(ctx context.Context) error { return nil },
	}, time.Second)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}

// Package scheduler runs periodic maintenance tasks such as the taxonomy
// company-count refresh.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNotRunning is returned when a task is added after Stop
var ErrNotRunning = errors.New("scheduler is not running")

// Task is one recurring unit of work
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// TaskFunc adapts a function to the Task interface
type TaskFunc struct {
	TaskName string
	Fn       func(ctx context.Context) error
}

func (t TaskFunc) Name() string                  { return t.TaskName }
func (t TaskFunc) Run(ctx context.Context) error { return t.Fn(ctx) }

type scheduled struct {
	task     Task
	interval time.Duration
}

// Scheduler runs registered tasks on fixed intervals. Each task gets its own
// goroutine, runs once immediately at Start, and logs failures without
// stopping the loop.
type Scheduler struct {
	logger *zap.Logger

	mu        sync.Mutex
	tasks     []scheduled
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool

	taskTimeout time.Duration
}

// NewScheduler creates an empty scheduler
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		logger:      logger,
		taskTimeout: 5 * time.Minute,
	}
}

// Register adds a task before Start. Intervals below one second are clamped.
func (s *Scheduler) Register(task Task, interval time.Duration) {
	if interval < time.Second {
		interval = time.Second
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, scheduled{task: task, interval: interval})
}

// Start launches one loop per registered task
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	ctx, s.cancel = context.WithCancel(ctx)
	tasks := s.tasks
	s.mu.Unlock()

	for _, st := range tasks {
		s.wg.Add(1)
		go s.loop(ctx, st)
	}

	s.logger.Info("Scheduler started", zap.Int("tasks", len(tasks)))
	return nil
}

// Stop cancels all task loops and waits for them, bounded by ctx
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *Scheduler) loop(ctx context.Context, st scheduled) {
	defer s.wg.Done()

	s.runTask(ctx, st.task)

	ticker := time.NewTicker(st.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runTask(ctx, st.task)
		}
	}
}

func (s *Scheduler) runTask(ctx context.Context, task Task) {
	taskCtx, cancel := context.WithTimeout(ctx, s.taskTimeout)
	defer cancel()

	start := time.Now()
	if err := task.Run(taskCtx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.Error("Scheduled task failed",
			zap.String("task", task.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("Scheduled task completed",
		zap.String("task", task.Name()),
		zap.Duration("elapsed", time.Since(start)),
	)
}

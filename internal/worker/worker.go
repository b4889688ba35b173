package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Task is a unit of periodic background work.
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// TaskFunc adapts a function to Task.
type TaskFunc struct {
	TaskName string
	Fn       func(ctx context.Context) error
}

func (f TaskFunc) Name() string                  { return f.TaskName }
func (f TaskFunc) Run(ctx context.Context) error { return f.Fn(ctx) }

// Worker runs each task immediately and then once per interval. A failing
// task is retried with exponential backoff, never waiting longer than the
// interval.
type Worker struct {
	tasks     []Task
	interval  time.Duration
	retryBase time.Duration
	logger    *zap.Logger
}

type Option func(*Worker)

func WithRetryBase(d time.Duration) Option {
	return func(w *Worker) {
		w.retryBase = d
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(w *Worker) {
		w.logger = l
	}
}

func New(interval time.Duration, tasks []Task, opts ...Option) *Worker {
	w := &Worker{
		tasks:     tasks,
		interval:  interval,
		retryBase: time.Second,
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Start spawns one goroutine per task. It blocks until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	for _, t := range w.tasks {
		go w.loop(ctx, t)
	}
	<-ctx.Done()
}

func (w *Worker) loop(ctx context.Context, t Task) {
	failures := 0
	for {
		delay := w.interval
		if w.runOnce(ctx, t) {
			failures = 0
		} else {
			failures++
			delay = w.backoff(failures)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func (w *Worker) runOnce(ctx context.Context, t Task) bool {
	start := time.Now()
	err := t.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		w.logger.Warn("task failed", zap.String("task", t.Name()), zap.Error(err))
		return false
	}
	w.logger.Debug("task completed", zap.String("task", t.Name()), zap.Duration("took", time.Since(start)))
	return true
}

func (w *Worker) backoff(failures int) time.Duration {
	d := time.Duration(int64(1)<<uint(failures-1)) * w.retryBase
	if d <= 0 || d > w.interval {
		return w.interval
	}
	return d
}

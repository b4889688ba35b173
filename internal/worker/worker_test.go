package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gsarma/algodojo/internal/worker"
)

// countingTask records how often it ran and fails while failFor > 0.
type countingTask struct {
	runs    atomic.Int32
	failFor atomic.Int32
}

func (c *countingTask) Name() string { return "counting" }
func (c *countingTask) Run(context.Context) error {
	c.runs.Add(1)
	if c.failFor.Load() > 0 {
		c.failFor.Add(-1)
		return errors.New("not yet")
	}
	return nil
}

// runWorkerUntil starts w and cancels once cond holds or the deadline passes.
func runWorkerUntil(t *testing.T, w *worker.Worker, cond func() bool) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			cancel()
			<-done
			t.Fatal("condition not met before deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}

func TestWorker_RunsImmediatelyAndPeriodically(t *testing.T) {
	task := &countingTask{}
	w := worker.New(20*time.Millisecond, []worker.Task{task})

	runWorkerUntil(t, w, func() bool { return task.runs.Load() >= 3 })
}

func TestWorker_RunsFirstPassBeforeInterval(t *testing.T) {
	task := &countingTask{}
	w := worker.New(time.Hour, []worker.Task{task})

	runWorkerUntil(t, w, func() bool { return task.runs.Load() >= 1 })
}

func TestWorker_RetriesFailuresWithBackoff(t *testing.T) {
	task := &countingTask{}
	task.failFor.Store(2)
	w := worker.New(time.Hour, []worker.Task{task}, worker.WithRetryBase(time.Millisecond))

	// Two failures, then one success, well before the hour-long interval.
	runWorkerUntil(t, w, func() bool { return task.runs.Load() >= 3 })
	if task.failFor.Load() != 0 {
		t.Errorf("expected all failures consumed, %d left", task.failFor.Load())
	}
}

func TestTaskFunc(t *testing.T) {
	called := false
	f := worker.TaskFunc{TaskName: "f", Fn: func(context.Context) error {
		called = true
		return nil
	}}
	if f.Name() != "f" || f.Run(context.Background()) != nil || !called {
		t.Error("TaskFunc should delegate to Fn")
	}
}

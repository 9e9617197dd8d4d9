package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sitecast/sitecast/app/feed"
)

type failingTask struct {
	Task
	executions atomic.Int32
}

func (t *failingTask) Execute(ctx context.Context) error {
	t.executions.Add(1)
	return errors.New("generation failed")
}

func newFailingTask(maxRetries int) *failingTask {
	task := NewTask(TaskTypeGenerateFeed, "test-feed")
	task.MaxRetries = maxRetries
	return &failingTask{Task: task}
}

func testScheduler(t *testing.T) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		configCache: feed.NewConfigCache(t.TempDir()),
		interval:    time.Hour,
		workerCount: 2,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 10),
	}
}

func TestSchedulerEnqueueAfterStop(t *testing.T) {
	scheduler := testScheduler(t)
	scheduler.Start()
	scheduler.Stop()

	if err := scheduler.EnqueueTask(newFailingTask(0)); err == nil {
		t.Error("Expected enqueue after stop to return an error")
	}
}

func TestSchedulerStopWaitsForPendingRetry(t *testing.T) {
	scheduler := testScheduler(t)
	scheduler.Start()

	task := newFailingTask(1)
	if err := scheduler.EnqueueTask(task); err != nil {
		t.Fatal(err)
	}

	// Let a worker execute the task and schedule its retry.
	deadline := time.Now().Add(2 * time.Second)
	for task.executions.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Task was never executed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Stop must wait out the retry goroutine; the cancelled context makes
	// it skip re-enqueueing instead of panicking on a closed queue.
	scheduler.Stop()

	if got := task.executions.Load(); got != 1 {
		t.Errorf("Expected 1 execution after stop, got %d", got)
	}
	if err := scheduler.EnqueueTask(task); err == nil {
		t.Error("Expected enqueue after stop to return an error")
	}
}

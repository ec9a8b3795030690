package tasks

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingTask struct {
	Task
	executed *atomic.Int32
}

func (t *countingTask) Execute(ctx context.Context) error {
	t.executed.Add(1)
	return nil
}

func TestSchedulerExecutesEnqueuedTasks(t *testing.T) {
	scheduler := NewScheduler(nil, nil, time.Hour, 2)
	scheduler.Start()

	var executed atomic.Int32
	for i := 0; i < 5; i++ {
		task := &countingTask{Task: NewTask(TaskTypeRunPipeline, "summarize"), executed: &executed}
		if err := scheduler.EnqueueTask(task); err != nil {
			t.Fatal(err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for executed.Load() != 5 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	scheduler.Stop()

	if executed.Load() != 5 {
		t.Errorf("Expected 5 executed tasks, got %d", executed.Load())
	}
}

func TestSchedulerStopIsIdempotentForEnqueue(t *testing.T) {
	scheduler := NewScheduler(nil, nil, time.Hour, 1)
	scheduler.Start()
	scheduler.Stop()

	var executed atomic.Int32
	task := &countingTask{Task: NewTask(TaskTypeRunPipeline, "summarize"), executed: &executed}
	if err := scheduler.EnqueueTask(task); err == nil {
		t.Error("Expected error when enqueueing after stop")
	}
}

func TestTaskDuration(t *testing.T) {
	task := NewTask(TaskTypeRunPipeline, "summarize")
	if task.GetDuration() != 0 {
		t.Error("Expected zero duration before start")
	}

	task.Start()
	time.Sleep(5 * time.Millisecond)
	if task.GetDuration() <= 0 {
		t.Error("Expected positive duration after start")
	}
}

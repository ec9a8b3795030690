package tasks

// TaskSchedulerInterface defines the interface for background task
// scheduling. The HTTP layer only ever enqueues; the scheduler owns the
// worker pool and the interval trigger.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

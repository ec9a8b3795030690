package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hyericho/backkeeper/app/database"
	"github.com/hyericho/backkeeper/app/pipeline"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Scheduler runs pipelines in the background. Each tick enqueues the
// summarize pipeline; the daily report is enqueued once per local date
// rollover. Pipeline tasks are never retried: a failed run surfaces in the
// run history and the next tick tries fresh.
type Scheduler struct {
	runner      *pipeline.Runner
	runRepo     database.RunRepository
	interval    time.Duration
	workerCount int

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	taskQueue chan TaskInterface

	lastReportDate string
}

func NewScheduler(runner *pipeline.Runner, runRepo database.RunRepository,
	interval time.Duration, workerCount int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		runner:      runner,
		runRepo:     runRepo,
		interval:    interval,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 32),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	// The report fires on date rollover, not at startup
	s.lastReportDate = time.Now().Format("2006-01-02")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	// Checked before the send; the queue channel is closed on Stop
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
	}

	select {
	case s.taskQueue <- task:
		return nil
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueTasks() {
	task := NewRunPipelineTask(pipeline.NameSummarize, s.runner, s.runRepo)
	if err := s.EnqueueTask(task); err != nil {
		slog.Warn("Failed to enqueue summarize task", "error", err)
	}

	today := time.Now().Format("2006-01-02")
	if today != s.lastReportDate {
		s.lastReportDate = today
		reportTask := NewRunPipelineTask(pipeline.NameDailyReport, s.runner, s.runRepo)
		if err := s.EnqueueTask(reportTask); err != nil {
			slog.Warn("Failed to enqueue daily report task", "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 10*time.Minute)
	defer cancel()

	if err := task.Execute(taskCtx); err != nil {
		slog.Error("Worker task execution failed",
			"worker_id", workerID,
			"type", string(task.GetType()),
			"pipeline", task.GetPipeline(),
			"id", task.GetID(),
			"error", err)
	}
}

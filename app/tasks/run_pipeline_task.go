package tasks

import (
	"context"
	"log/slog"

	"github.com/hyericho/backkeeper/app/database"
	"github.com/hyericho/backkeeper/app/pipeline"
)

type RunPipelineTask struct {
	Task
	runner  *pipeline.Runner
	runRepo database.RunRepository
}

func NewRunPipelineTask(name pipeline.Name, runner *pipeline.Runner, runRepo database.RunRepository) *RunPipelineTask {
	return &RunPipelineTask{
		Task:    NewTask(TaskTypeRunPipeline, string(name)),
		runner:  runner,
		runRepo: runRepo,
	}
}

func (t *RunPipelineTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	summary, err := t.runner.Run(ctx, pipeline.Name(t.Pipeline))
	RecordRun(t.runRepo, summary)

	if err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", "RunPipeline",
		"pipeline", t.Pipeline,
		"run_id", summary.RunID,
		"status", summary.Status,
		"duration", t.GetDuration())

	return nil
}

// RecordRun writes a run summary into the history. History is diagnostics,
// not bookkeeping the pipelines depend on; a failed insert is logged and
// dropped.
func RecordRun(runRepo database.RunRepository, summary pipeline.RunSummary) {
	if runRepo == nil {
		return
	}

	run := database.Run{
		ID:           summary.RunID,
		Pipeline:     summary.Pipeline,
		Status:       summary.Status,
		Message:      summary.Message,
		Matched:      summary.Matched,
		UpdatedPages: summary.UpdatedPages,
		CreatedPages: summary.CreatedPages,
		Skipped:      summary.Skipped,
		CreatedToday: summary.CreatedToday,
		UpdatedToday: summary.UpdatedToday,
		Notified:     summary.Notified,
		StartedAt:    summary.StartedAt,
		DurationMs:   summary.DurationMs,
	}

	if err := runRepo.InsertRun(run); err != nil {
		slog.Warn("Failed to record run", "pipeline", summary.Pipeline, "run_id", summary.RunID, "error", err)
	}
}

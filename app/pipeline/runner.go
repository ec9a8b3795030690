package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hyericho/backkeeper/app/cfg"
	"github.com/hyericho/backkeeper/app/config"
	"github.com/hyericho/backkeeper/app/notion"
)

// Runner orchestrates the five automations. Each run is a linear
// pull-transform-push pass: build the status filter, fetch the matching
// snapshot, transform each record, write back. A per-pipeline mutex keeps a
// timer-triggered run and a manually triggered run of the same pipeline from
// double-processing the same records; the loser gets a "busy" summary.
type Runner struct {
	appCfg     *cfg.Cfg
	props      config.PropertyNames
	store      Store
	copywriter Copywriter
	notifier   Notifier
	orderFeed  OrderFeed
	classifier *Classifier

	locks map[Name]*sync.Mutex
	now   func() time.Time
}

func NewRunner(appCfg *cfg.Cfg, pipelineCfg *config.Config, store Store,
	copywriter Copywriter, notifier Notifier, orderFeed OrderFeed) *Runner {
	locks := make(map[Name]*sync.Mutex, len(Names()))
	for _, name := range Names() {
		locks[name] = &sync.Mutex{}
	}

	return &Runner{
		appCfg:     appCfg,
		props:      pipelineCfg.Properties,
		store:      store,
		copywriter: copywriter,
		notifier:   notifier,
		orderFeed:  orderFeed,
		classifier: NewClassifier(pipelineCfg.Categories),
		locks:      locks,
		now:        time.Now,
	}
}

// Run executes the named pipeline to completion. Missing configuration and
// an already-running pipeline come back as a RunSummary with a non-ok
// status and a nil error; a remote failure mid-run returns the error
// alongside the partial summary.
func (r *Runner) Run(ctx context.Context, name Name) (RunSummary, error) {
	summary := RunSummary{
		RunID:    uuid.NewString(),
		Pipeline: string(name),
	}

	lock, ok := r.locks[name]
	if !ok {
		summary.Status = RunStatusError
		summary.Message = fmt.Sprintf("unknown pipeline %q", name)
		return summary, nil
	}

	if !lock.TryLock() {
		summary.Status = RunStatusBusy
		summary.Message = "pipeline is already running"
		slog.Warn("Pipeline trigger rejected, run in flight", "pipeline", name)
		return summary, nil
	}
	defer lock.Unlock()

	summary.StartedAt = r.now()

	if message := r.missingConfig(name); message != "" {
		summary.Status = RunStatusError
		summary.Message = message
		return summary, nil
	}

	var err error
	switch name {
	case NameSummarize:
		err = r.runSummarize(ctx, &summary)
	case NameOrderIngest:
		err = r.runOrderIngest(ctx, &summary)
	case NameDetailCopy:
		err = r.runDetailCopy(ctx, &summary)
	case NameImageSort:
		err = r.runImageSort(ctx, &summary)
	case NameDailyReport:
		err = r.runDailyReport(ctx, &summary)
	}

	summary.DurationMs = time.Since(summary.StartedAt).Milliseconds()

	if err != nil {
		summary.Status = RunStatusError
		summary.Message = err.Error()
		slog.Error("Pipeline run failed", "pipeline", name, "run_id", summary.RunID, "error", err)
		return summary, err
	}

	summary.Status = RunStatusOK
	slog.Info("Pipeline run completed",
		"pipeline", name,
		"run_id", summary.RunID,
		"duration_ms", summary.DurationMs,
		"matched", summary.Matched,
		"updated", summary.UpdatedPages,
		"created", summary.CreatedPages,
		"skipped", summary.Skipped)

	return summary, nil
}

// missingConfig names the first unset variable a pipeline needs. Checked
// before any network call so a half-configured deployment degrades to an
// error summary instead of a failed remote request.
func (r *Runner) missingConfig(name Name) string {
	// every pipeline talks to the store
	if r.appCfg.NotionToken == "" {
		return "NOTION_TOKEN is not configured"
	}
	if r.appCfg.NotionDB == "" {
		return "NOTION_DB is not configured"
	}

	switch name {
	case NameSummarize, NameDetailCopy:
		if r.appCfg.GeminiAPIKey == "" || r.copywriter == nil {
			return "GEMINI_API_KEY is not configured"
		}
	case NameOrderIngest:
		if r.appCfg.OrderFeedURL == "" {
			return "ORDER_FEED_URL is not configured"
		}
	}

	return ""
}

// eachMatching queries the pipeline's entry-gate status and walks the
// snapshot. A record whose status value is outside the known set is logged
// and skipped. The per-record fn aborts the remainder of the batch on error.
func (r *Runner) eachMatching(ctx context.Context, name Name, summary *RunSummary,
	fn func(page notion.Page) error) error {
	gate := transitions[name]

	filter := &notion.Filter{Property: r.props.Status, Equals: string(gate.from)}
	pages, err := r.store.QueryDatabase(ctx, r.appCfg.NotionDB, filter)
	if err != nil {
		return fmt.Errorf("failed to query records: %w", err)
	}

	summary.Matched = len(pages)

	for _, page := range pages {
		value := page.Properties[r.props.Status].Select
		if _, parseErr := ParseStatus(value); parseErr != nil {
			slog.Warn("Record carries unknown status, skipping", "pipeline", name, "page", page.ID, "status", value)
			summary.Skipped++
			continue
		}

		if err := fn(page); err != nil {
			return err
		}
	}

	return nil
}

// advance writes the pipeline's payload plus its exit status in a single
// partial update.
func (r *Runner) advance(ctx context.Context, name Name, pageID string, payload notion.Properties) error {
	payload[r.props.Status] = notion.SelectProperty(string(transitions[name].to))

	if _, err := r.store.UpdatePage(ctx, pageID, payload); err != nil {
		return fmt.Errorf("failed to update record %s: %w", pageID, err)
	}
	return nil
}

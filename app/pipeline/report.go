package pipeline

import (
	"context"
	"fmt"
	"log/slog"
)

const dateLayout = "2006-01-02"

// runDailyReport counts the records created or edited today and sends one
// notifier message. Read-only against the store; the notification is best
// effort and its failure never fails the run. Date comparison is on the
// YYYY-MM-DD prefix of the server timestamps against the local run date,
// without timezone normalization.
func (r *Runner) runDailyReport(ctx context.Context, summary *RunSummary) error {
	pages, err := r.store.QueryDatabase(ctx, r.appCfg.NotionDB, nil)
	if err != nil {
		return fmt.Errorf("failed to query records: %w", err)
	}

	summary.Matched = len(pages)
	today := r.now().Format(dateLayout)

	for _, page := range pages {
		if datePrefix(page.CreatedTime) == today {
			summary.CreatedToday++
		}
		if datePrefix(page.LastEditedTime) == today {
			summary.UpdatedToday++
		}
	}

	message := fmt.Sprintf("📊 일일 리포트 (%s)\n신규 레코드: %d건\n수정 레코드: %d건",
		today, summary.CreatedToday, summary.UpdatedToday)

	result := r.notifier.SendSelfMessage(ctx, message)
	summary.Notified = result.OK
	if !result.OK {
		summary.Message = result.Detail
		slog.Warn("Daily report notification not delivered", "detail", result.Detail, "status", result.Status)
	}

	return nil
}

func datePrefix(timestamp string) string {
	if len(timestamp) < len(dateLayout) {
		return ""
	}
	return timestamp[:len(dateLayout)]
}

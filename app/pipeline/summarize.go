package pipeline

import (
	"context"
	"log/slog"

	"github.com/hyericho/backkeeper/app/notion"
)

// runSummarize summarizes the body text of every record gated at
// needsSummary and moves it to done. A record whose body yields no text is
// skipped untouched; writing an empty summary while flipping the status
// would lose the record from the queue with nothing to show for it.
func (r *Runner) runSummarize(ctx context.Context, summary *RunSummary) error {
	return r.eachMatching(ctx, NameSummarize, summary, func(page notion.Page) error {
		text := r.store.PagePlainText(ctx, page.ID)

		generated, err := r.copywriter.Summarize(ctx, text)
		if err != nil {
			return err
		}

		if generated == "" {
			slog.Debug("Record has no body text, skipping", "page", page.ID)
			summary.Skipped++
			return nil
		}

		err = r.advance(ctx, NameSummarize, page.ID, notion.Properties{
			r.props.Summary: notion.RichTextProperty(generated),
		})
		if err != nil {
			return err
		}

		summary.UpdatedPages++
		return nil
	})
}

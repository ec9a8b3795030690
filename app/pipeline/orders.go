package pipeline

import (
	"context"
	"fmt"

	"github.com/hyericho/backkeeper/app/notion"
)

// runOrderIngest turns every row of the order feed into one new record with
// status new. The feed is re-imported wholesale on every run; there is no
// deduplication against existing records.
func (r *Runner) runOrderIngest(ctx context.Context, summary *RunSummary) error {
	rows, err := r.orderFeed.Fetch(ctx, r.appCfg.OrderFeedURL)
	if err != nil {
		return fmt.Errorf("failed to fetch order feed: %w", err)
	}

	summary.Matched = len(rows)

	for _, row := range rows {
		properties := notion.Properties{
			r.props.Name:     notion.TitleProperty(row.Name),
			r.props.Quantity: notion.NumberProperty(float64(row.Quantity)),
			r.props.Price:    notion.NumberProperty(float64(row.Price)),
			r.props.Status:   notion.SelectProperty(string(StatusNew)),
		}

		if _, err := r.store.CreatePage(ctx, r.appCfg.NotionDB, properties); err != nil {
			return fmt.Errorf("failed to create order record: %w", err)
		}

		summary.CreatedPages++
	}

	return nil
}

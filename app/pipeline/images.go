package pipeline

import (
	"context"

	"github.com/hyericho/backkeeper/app/notion"
)

// runImageSort classifies every image URL of records gated at imagesToSort
// and moves them to sorted. A record without image URLs still gets the
// catch-all category; an untagged record would be invisible to every
// category view.
func (r *Runner) runImageSort(ctx context.Context, summary *RunSummary) error {
	return r.eachMatching(ctx, NameImageSort, summary, func(page notion.Page) error {
		urls := page.Properties[r.props.Images].Files
		labels := r.classifier.ClassifyAll(urls)

		err := r.advance(ctx, NameImageSort, page.ID, notion.Properties{
			r.props.Category: notion.MultiSelectProperty(labels),
		})
		if err != nil {
			return err
		}

		summary.UpdatedPages++
		return nil
	})
}

package pipeline

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/hyericho/backkeeper/app/notion"
)

// runDetailCopy generates product-detail page copy for every record gated at
// needsDetail and moves it to detailDone.
func (r *Runner) runDetailCopy(ctx context.Context, summary *RunSummary) error {
	return r.eachMatching(ctx, NameDetailCopy, summary, func(page notion.Page) error {
		name := page.Properties[r.props.Name].Text
		attributes := r.collectAttributes(page)

		copyText, err := r.copywriter.GenerateDetailCopy(ctx, name, attributes)
		if err != nil {
			return err
		}

		if copyText == "" {
			slog.Debug("Copywriter produced no copy, skipping", "page", page.ID)
			summary.Skipped++
			return nil
		}

		err = r.advance(ctx, NameDetailCopy, page.ID, notion.Properties{
			r.props.Detail: notion.RichTextProperty(copyText),
		})
		if err != nil {
			return err
		}

		summary.UpdatedPages++
		return nil
	})
}

// collectAttributes gathers the record's number and select properties as
// prompt material. The status property is workflow state, not product data,
// and stays out.
func (r *Runner) collectAttributes(page notion.Page) map[string]string {
	attributes := make(map[string]string)

	for name, prop := range page.Properties {
		if name == r.props.Status || name == r.props.Name {
			continue
		}

		switch prop.Type {
		case "number":
			if prop.Number != nil {
				attributes[name] = strconv.FormatFloat(*prop.Number, 'f', -1, 64)
			}
		case "select":
			if prop.Select != "" {
				attributes[name] = prop.Select
			}
		}
	}

	return attributes
}

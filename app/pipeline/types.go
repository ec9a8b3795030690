package pipeline

import (
	"context"
	"time"

	"github.com/hyericho/backkeeper/app/ai"
	"github.com/hyericho/backkeeper/app/feed"
	"github.com/hyericho/backkeeper/app/kakao"
	"github.com/hyericho/backkeeper/app/notion"
)

// RunSummary is the aggregate result of one pipeline invocation. It is
// returned to the HTTP caller and recorded in the run history; it is never
// the source of truth for any record.
type RunSummary struct {
	RunID    string `json:"run_id"`
	Pipeline string `json:"pipeline"`
	Status   string `json:"status"` // ok | error | busy
	Message  string `json:"message,omitempty"`

	Matched      int `json:"matched"`
	UpdatedPages int `json:"updated_pages"`
	CreatedPages int `json:"created_pages"`
	Skipped      int `json:"skipped"`

	// Daily report counters
	CreatedToday int  `json:"created_today"`
	UpdatedToday int  `json:"updated_today"`
	Notified     bool `json:"notified"`

	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
}

const (
	RunStatusOK    = "ok"
	RunStatusError = "error"
	RunStatusBusy  = "busy"
)

// Store is the slice of the Notion client the pipelines use.
type Store interface {
	QueryDatabase(ctx context.Context, databaseID string, filter *notion.Filter) ([]notion.Page, error)
	CreatePage(ctx context.Context, databaseID string, properties notion.Properties) (*notion.Page, error)
	UpdatePage(ctx context.Context, pageID string, properties notion.Properties) (*notion.Page, error)
	PagePlainText(ctx context.Context, pageID string) string
}

var _ Store = (*notion.Client)(nil)

// Copywriter produces summaries and product-detail copy.
type Copywriter interface {
	Summarize(ctx context.Context, text string) (string, error)
	GenerateDetailCopy(ctx context.Context, name string, attributes map[string]string) (string, error)
}

var _ Copywriter = (*ai.Client)(nil)

// Notifier delivers the daily report message.
type Notifier interface {
	SendSelfMessage(ctx context.Context, text string) kakao.Result
}

var _ Notifier = (*kakao.Notifier)(nil)

// OrderFeed pulls and parses the external order feed.
type OrderFeed interface {
	Fetch(ctx context.Context, url string) ([]feed.Row, error)
}

var _ OrderFeed = (*feed.Fetcher)(nil)

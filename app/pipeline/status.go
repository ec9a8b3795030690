package pipeline

import "fmt"

// Status is the closed set of workflow states a record's status property may
// hold. The value lives in Notion as a select option; anything outside this
// set is treated as corrupt and skipped, never silently processed.
type Status string

const (
	StatusNew          Status = "new"
	StatusNeedsSummary Status = "needsSummary"
	StatusDone         Status = "done"
	StatusNeedsDetail  Status = "needsDetail"
	StatusDetailDone   Status = "detailDone"
	StatusImagesToSort Status = "imagesToSort"
	StatusSorted       Status = "sorted"
)

var knownStatuses = map[Status]bool{
	StatusNew:          true,
	StatusNeedsSummary: true,
	StatusDone:         true,
	StatusNeedsDetail:  true,
	StatusDetailDone:   true,
	StatusImagesToSort: true,
	StatusSorted:       true,
}

func ParseStatus(value string) (Status, error) {
	status := Status(value)
	if !knownStatuses[status] {
		return "", fmt.Errorf("unknown status value %q", value)
	}
	return status, nil
}

// Name identifies one of the five automations.
type Name string

const (
	NameSummarize   Name = "summarize"
	NameOrderIngest Name = "order_ingest"
	NameDetailCopy  Name = "detail_copy"
	NameImageSort   Name = "image_sort"
	NameDailyReport Name = "daily_report"
)

func Names() []Name {
	return []Name{NameSummarize, NameOrderIngest, NameDetailCopy, NameImageSort, NameDailyReport}
}

// transition is the single status edge a pipeline owns. Each status-gated
// pipeline only ever reads records at `from` and only ever writes `to`;
// nothing moves a record backward.
type transition struct {
	from Status
	to   Status
}

var transitions = map[Name]transition{
	NameSummarize:  {from: StatusNeedsSummary, to: StatusDone},
	NameDetailCopy: {from: StatusNeedsDetail, to: StatusDetailDone},
	NameImageSort:  {from: StatusImagesToSort, to: StatusSorted},
}

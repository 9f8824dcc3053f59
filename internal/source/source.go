package source

import (
	"context"
)

// SubmissionRow is one raw row from the external collection sheet, untouched
// except for column mapping. All validation happens in the engine.
type SubmissionRow struct {
	Timestamp    string
	MemberName   string
	ReadingDate  string
	CommonBook   string // duration, H:M[:S]
	OtherBook    string // duration, H:M[:S]
	Quotes       string // multi-select, raw labels
	Achievements string // multi-select, raw labels
}

// SubmissionSource fetches the full raw submission table. A fetch error
// aborts the whole engine cycle.
type SubmissionSource interface {
	Fetch(ctx context.Context) ([]SubmissionRow, error)
}

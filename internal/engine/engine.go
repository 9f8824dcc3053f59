package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/readmarathon/reading-marathon-api/internal/source"
	"gorm.io/gorm"
)

// ErrSetupIncomplete is returned when recalculation would run without the
// global settings row or without any challenge period. Producing all-zero
// stats in that state would be indistinguishable from "no activity".
var ErrSetupIncomplete = errors.New("setup incomplete: missing global settings or challenge periods")

// Engine runs the two-stage update cycle: ingest new submissions from the
// external source, then rebuild all derived statistics from scratch.
type Engine struct {
	db     *gorm.DB
	source source.SubmissionSource
	now    func() time.Time
}

func New(db *gorm.DB, src source.SubmissionSource) *Engine {
	return &Engine{db: db, source: src, now: time.Now}
}

// CycleReport summarizes one completed update cycle.
type CycleReport struct {
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	RowsSeen          int       `json:"rows_seen"`
	LogsAdded         int       `json:"logs_added"`
	AchievementsAdded int       `json:"achievements_added"`
	RowsSkipped       int       `json:"rows_skipped"`
	Diagnostics       []string  `json:"diagnostics"`
}

func (r *CycleReport) warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Diagnostics = append(r.Diagnostics, msg)
	log.Printf("[Engine] %s", msg)
}

// RunCycle fetches the raw submission table, ingests whatever is new, then
// recalculates all statistics. A source fetch failure aborts the cycle before
// any state is touched; row-level problems only skip the offending row.
func (e *Engine) RunCycle(ctx context.Context) (*CycleReport, error) {
	report := &CycleReport{StartedAt: e.now()}

	rows, err := e.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch submissions: %w", err)
	}

	if err := e.ingest(ctx, rows, report); err != nil {
		return report, err
	}

	if err := e.Recalculate(ctx); err != nil {
		return report, err
	}

	report.FinishedAt = e.now()
	return report, nil
}

package engine

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// SummaryNotifier receives the report of a completed cycle.
type SummaryNotifier interface {
	NotifyCycleSummary(report *CycleReport) error
}

// StartSyncScheduler runs the update cycle on a fixed interval. The returned
// scheduler can be shut down by the caller on exit.
func (e *Engine) StartSyncScheduler(intervalMinutes int, notifier SummaryNotifier) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(time.Duration(intervalMinutes)*time.Minute),
		gocron.NewTask(func() {
			report, err := e.RunCycle(context.Background())
			if err != nil {
				log.Printf("[Scheduler] Sync cycle failed: %v", err)
				return
			}
			log.Printf("[Scheduler] Sync cycle done: %d rows seen, %d new logs, %d new achievements",
				report.RowsSeen, report.LogsAdded, report.AchievementsAdded)
			if notifier != nil {
				if err := notifier.NotifyCycleSummary(report); err != nil {
					log.Printf("[Scheduler] Failed to send cycle summary: %v", err)
				}
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}

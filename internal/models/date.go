package models

import (
	"time"
)

// DateOnly normalizes a time to UTC midnight. All calendar dates in the
// database (submission dates, period bounds, achievement dates) are stored
// this way so equality and range checks work without truncation surprises.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

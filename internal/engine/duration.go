package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/readmarathon/reading-marathon-api/internal/models"
)

// ParseDurationMinutes converts a form duration answer ("H:M" or "H:M:S")
// to whole minutes. Seconds are dropped. Anything malformed counts as zero
// reading time rather than failing the row.
func ParseDurationMinutes(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0
		}
		nums[i] = n
	}
	return nums[0]*60 + nums[1]
}

var submissionDateLayouts = []string{"02/01/2006", "2006-01-02"}

// ParseSubmissionDate parses the declared reading date. The form's dropdown
// appends the weekday in parentheses ("2026-08-28 (الجمعة)"), which is
// stripped before parsing.
func ParseSubmissionDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, " ("); i >= 0 {
		s = s[:i]
	}
	for _, layout := range submissionDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.DateOnly(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

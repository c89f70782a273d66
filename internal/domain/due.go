package domain

import (
	"fmt"
	"math"
	"time"
)

// DueInfo is the human-facing rendering of a due date.
type DueInfo struct {
	Text      string `json:"text"`
	IsOverdue bool   `json:"is_overdue"`
}

// DueDays renders a due timestamp relative to now. The day difference is
// the ceiling of the raw time difference, so anything due within the next
// 24h reads "Due today". Returns nil for a zero due time: no due date is
// not an error, it just has no rendering.
func DueDays(dueAt time.Time, now time.Time) *DueInfo {
	if dueAt.IsZero() {
		return nil
	}

	diff := dueAt.Sub(now)
	days := int(math.Ceil(diff.Hours() / 24))

	overdue := days < 0
	abs := days
	if abs < 0 {
		abs = -abs
	}

	var text string
	switch {
	case days == 0:
		text = "Due today"
	case days == 1:
		text = "Due tomorrow"
	case days == -1:
		text = "1 day overdue"
	case overdue:
		text = fmt.Sprintf("%d days overdue", abs)
	default:
		text = fmt.Sprintf("Due in %d days", days)
	}

	return &DueInfo{Text: text, IsOverdue: overdue}
}

// DaysSince renders how long ago a past timestamp was. Future timestamps
// have no "since" representation and yield an empty string.
func DaysSince(t time.Time, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	diff := now.Sub(t)
	days := int(math.Floor(diff.Hours() / 24))
	switch {
	case days == 0 && diff >= 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	case days > 1:
		return fmt.Sprintf("%d days ago", days)
	}
	return ""
}

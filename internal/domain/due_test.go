package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDueDays(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dueAt   time.Time
		text    string
		overdue bool
	}{
		{"due in a few hours", now.Add(6 * time.Hour), "Due today", false},
		{"due exactly now", now, "Due today", false},
		{"due in 24h", now.Add(24 * time.Hour), "Due tomorrow", false},
		{"due in 30h", now.Add(30 * time.Hour), "Due in 2 days", false},
		{"due in a week", now.Add(7 * 24 * time.Hour), "Due in 7 days", false},
		{"slightly past due", now.Add(-2 * time.Hour), "Due today", false},
		{"one day overdue", now.Add(-24 * time.Hour), "1 day overdue", true},
		{"three days overdue", now.Add(-3 * 24 * time.Hour), "3 days overdue", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := DueDays(tc.dueAt, now)
			require.NotNil(t, info)
			assert.Equal(t, tc.text, info.Text)
			assert.Equal(t, tc.overdue, info.IsOverdue)
		})
	}
}

func TestDueDaysZeroTime(t *testing.T) {
	assert.Nil(t, DueDays(time.Time{}, time.Now()))
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"moments ago", now.Add(-5 * time.Minute), "Today"},
		{"same instant", now, "Today"},
		{"yesterday", now.Add(-26 * time.Hour), "1 day ago"},
		{"last week", now.Add(-7 * 24 * time.Hour), "7 days ago"},
		{"future has no rendering", now.Add(48 * time.Hour), ""},
		{"zero time", time.Time{}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysSince(tc.at, now))
		})
	}
}

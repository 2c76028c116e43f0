package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSignedPercent(t *testing.T) {
	tests := []struct {
		name string
		pct  int
		want string
	}{
		{"positive gets explicit plus", 12, "+12%"},
		{"negative keeps its own sign", -8, "-8%"},
		{"zero counts as non-negative", 0, "+0%"},
		{"large positive", 250, "+250%"},
		{"large negative", -100, "-100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSignedPercent(tt.pct))
		})
	}
}

func TestParseDay(t *testing.T) {
	t.Run("calendar date", func(t *testing.T) {
		got, err := ParseDay("2026-08-20")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("full timestamp fallback", func(t *testing.T) {
		got, err := ParseDay("2026-08-20T10:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, 10, got.Hour())
	})

	t.Run("unparsable", func(t *testing.T) {
		_, err := ParseDay("not-a-date")
		assert.Error(t, err)
	})
}

func TestWeekdayLabel(t *testing.T) {
	// 2026-08-20 is a Thursday.
	assert.Equal(t, "Thu", WeekdayLabel("2026-08-20"))

	// Bad dates degrade to the raw string instead of an error.
	assert.Equal(t, "someday", WeekdayLabel("someday"))
}

func TestLastN(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{4, 5}, LastN(s, 2))
	assert.Equal(t, s, LastN(s, 5))
	assert.Equal(t, s, LastN(s, 10))
	assert.Empty(t, LastN(s, 0))
	assert.Nil(t, LastN[int](nil, 3))
}

func TestGoalDurationDays(t *testing.T) {
	goal := GoalTimelineEntry{StartDay: 3, EndDay: 7}
	assert.Equal(t, 5, goal.DurationDays())

	single := GoalTimelineEntry{StartDay: 4, EndDay: 4}
	assert.Equal(t, 1, single.DurationDays())

	doc := TimecapsuleDocument{StartDay: 1, EndDay: 10}
	assert.Equal(t, 10, doc.DurationDays())
}

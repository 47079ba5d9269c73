package tool_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/humate-ai/lisa-agent/internal/tool"
)

func fixedClock(t time.Time) tool.Clock {
	return func() time.Time { return t }
}

func TestCurrentTime(t *testing.T) {
	// 18:45 UTC on a fixed day.
	now := time.Date(2024, 3, 21, 18, 45, 0, 0, time.UTC)
	td := tool.NewTimeDate(fixedClock(now), time.UTC)

	cases := []struct {
		name     string
		timezone string

		expectedKind   tool.Kind
		expectedSpoken string
	}{
		{
			name:           "explicit UTC",
			timezone:       "UTC",
			expectedKind:   tool.KindOK,
			expectedSpoken: "The current time is 06:45 PM UTC",
		},
		{
			name:           "unknown zone",
			timezone:       "Mars/Olympus_Mons",
			expectedKind:   tool.KindBadInput,
			expectedSpoken: "Sorry, I couldn't get the current time.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := td.CurrentTime(tc.timezone)

			assert.Equal(t, tc.expectedKind, out.Kind)
			assert.Equal(t, tc.expectedSpoken, out.Spoken)
		})
	}
}

func TestSpokenDate(t *testing.T) {
	assert.Equal(t, "21st March, 2024",
		tool.SpokenDate(time.Date(2024, 3, 21, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2nd September, 2025",
		tool.SpokenDate(time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)))
}

func TestSpokenDateSuffixes(t *testing.T) {
	suffix := map[int]string{
		1: "st", 21: "st", 31: "st",
		2: "nd", 22: "nd",
		3: "rd", 23: "rd",
	}

	for day := 1; day <= 31; day++ {
		want, ok := suffix[day]
		if !ok {
			want = "th"
		}

		spoken := tool.SpokenDate(time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC))
		assert.Equalf(t, fmt.Sprintf("%d%s January, 2024", day, want), spoken, "day %d", day)
	}
}

package tool_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"

	"github.com/humate-ai/lisa-agent/internal/tool"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func TestDateRange(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, ist)

	cases := []struct {
		query string

		expectedStart time.Time
		expectedEnd   time.Time
		resolved      bool
	}{
		{
			query:         "today",
			expectedStart: time.Date(2024, 3, 10, 0, 0, 0, 0, ist),
			expectedEnd:   time.Date(2024, 3, 11, 0, 0, 0, 0, ist),
			resolved:      true,
		},
		{
			query:         "Tomorrow",
			expectedStart: time.Date(2024, 3, 11, 0, 0, 0, 0, ist),
			expectedEnd:   time.Date(2024, 3, 12, 0, 0, 0, 0, ist),
			resolved:      true,
		},
		{
			query:         "2024-03-25",
			expectedStart: time.Date(2024, 3, 25, 0, 0, 0, 0, ist),
			expectedEnd:   time.Date(2024, 3, 26, 0, 0, 0, 0, ist),
			resolved:      true,
		},
		{
			query:         "25-03-2024",
			expectedStart: time.Date(2024, 3, 25, 0, 0, 0, 0, ist),
			expectedEnd:   time.Date(2024, 3, 26, 0, 0, 0, 0, ist),
			resolved:      true,
		},
		{
			query:    "sometime next week",
			resolved: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			start, end, resolved := tool.DateRange(tc.query, now, ist)

			require.Equal(t, tc.resolved, resolved)
			if !tc.resolved {
				return
			}
			assert.True(t, tc.expectedStart.Equal(start), "start %v", start)
			assert.True(t, tc.expectedEnd.Equal(end), "end %v", end)
		})
	}
}

func TestFetchCalendarEvents(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, ist)

	cases := []struct {
		name   string
		query  string
		events []*calendar.Event
		err    error

		expectedKind    tool.Kind
		expectedPhrases []string
	}{
		{
			name:  "timed and all day events",
			query: "today",
			events: []*calendar.Event{
				{
					Summary: "Standup",
					Start:   &calendar.EventDateTime{DateTime: time.Date(2024, 3, 10, 14, 30, 0, 0, ist).Format(time.RFC3339)},
				},
				{
					Summary: "Holi",
					Start:   &calendar.EventDateTime{Date: "2024-03-10"},
				},
			},
			expectedKind: tool.KindOK,
			expectedPhrases: []string{
				"Here's what's scheduled for today:",
				"Standup at 2:30 PM",
				"Holi all day",
			},
		},
		{
			name:         "empty day",
			query:        "tomorrow",
			events:       nil,
			expectedKind: tool.KindOK,
			expectedPhrases: []string{
				"You have no events scheduled for tomorrow.",
			},
		},
		{
			name:         "unparseable date asks for clarification",
			query:        "whenever",
			expectedKind: tool.KindBadInput,
			expectedPhrases: []string{
				"I couldn't understand that date.",
			},
		},
		{
			name:         "calendar outage",
			query:        "today",
			err:          fmt.Errorf("status 503"),
			expectedKind: tool.KindRemoteFailure,
			expectedPhrases: []string{
				"I'm having trouble accessing your calendar right now.",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &calendarSvcMock{
				ListEventsFunc: func(_ context.Context, _, _ time.Time) (*calendar.Events, error) {
					if tc.err != nil {
						return nil, tc.err
					}
					return &calendar.Events{Items: tc.events}, nil
				},
			}

			out := tool.NewCalendarTools(svc, fixedClock(now), ist).Fetch(context.Background(), tc.query)

			assert.Equal(t, tc.expectedKind, out.Kind)
			for _, phrase := range tc.expectedPhrases {
				assert.Contains(t, out.Spoken, phrase)
			}
		})
	}
}

func TestCreateCalendarEvent(t *testing.T) {
	now := time.Date(2024, 3, 10, 10, 0, 0, 0, ist)

	cases := []struct {
		name  string
		input tool.CreateCalendarEventRequest
		err   error

		expectedKind   tool.Kind
		expectedSpoken string
		expectedStart  time.Time
		expectedEnd    time.Time
	}{
		{
			name: "afternoon meeting today",
			input: tool.CreateCalendarEventRequest{
				Summary:   "Team meeting",
				StartTime: "2:30 PM",
				EndTime:   "3:30 PM",
				Date:      "today",
			},
			expectedKind:   tool.KindOK,
			expectedSpoken: "I've scheduled Team meeting for 2:30 PM today.",
			expectedStart:  time.Date(2024, 3, 10, 14, 30, 0, 0, ist),
			expectedEnd:    time.Date(2024, 3, 10, 15, 30, 0, 0, ist),
		},
		{
			name: "event crossing midnight ends next day",
			input: tool.CreateCalendarEventRequest{
				Summary:   "Night drive",
				StartTime: "11:30 PM",
				EndTime:   "12:30 AM",
				Date:      "today",
			},
			expectedKind:   tool.KindOK,
			expectedSpoken: "I've scheduled Night drive for 11:30 PM today.",
			expectedStart:  time.Date(2024, 3, 10, 23, 30, 0, 0, ist),
			expectedEnd:    time.Date(2024, 3, 11, 0, 30, 0, 0, ist),
		},
		{
			name: "past start rejected",
			input: tool.CreateCalendarEventRequest{
				Summary:   "Morning run",
				StartTime: "7:00 AM",
				EndTime:   "8:00 AM",
				Date:      "today",
			},
			expectedKind:   tool.KindRejected,
			expectedSpoken: "Sorry, I cannot schedule events in the past.",
		},
		{
			name: "bad time format",
			input: tool.CreateCalendarEventRequest{
				Summary:   "Lunch",
				StartTime: "13h30",
				EndTime:   "14h30",
				Date:      "today",
			},
			expectedKind:   tool.KindBadInput,
			expectedSpoken: "Please provide the time in 12-hour format, like 2:30 PM",
		},
		{
			name: "bad date format",
			input: tool.CreateCalendarEventRequest{
				Summary:   "Review",
				StartTime: "2:30 PM",
				EndTime:   "3:30 PM",
				Date:      "someday",
			},
			expectedKind:   tool.KindBadInput,
			expectedSpoken: "Please provide the date in YYYY-MM-DD or DD-MM-YYYY format",
		},
		{
			name: "insert failure",
			input: tool.CreateCalendarEventRequest{
				Summary:   "Planning",
				StartTime: "4:00 PM",
				EndTime:   "5:00 PM",
				Date:      "25-03-2024",
			},
			err:            fmt.Errorf("status 500"),
			expectedKind:   tool.KindRemoteFailure,
			expectedSpoken: "I couldn't create that event. Please try again with a different time.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &calendarSvcMock{
				InsertEventFunc: func(_ context.Context, ev *calendar.Event) (*calendar.Event, error) {
					return ev, tc.err
				},
			}

			out := tool.NewCalendarTools(svc, fixedClock(now), ist).Create(context.Background(), tc.input)

			assert.Equal(t, tc.expectedKind, out.Kind)
			assert.Equal(t, tc.expectedSpoken, out.Spoken)

			if tc.expectedKind != tool.KindOK {
				if tc.err == nil {
					assert.Empty(t, svc.Inserted, "nothing should be inserted")
				}
				return
			}

			require.Len(t, svc.Inserted, 1)
			ev := svc.Inserted[0]
			assert.Equal(t, tc.input.Summary, ev.Summary)
			assert.Equal(t, tc.expectedStart.Format(time.RFC3339), ev.Start.DateTime)
			assert.Equal(t, tc.expectedEnd.Format(time.RFC3339), ev.End.DateTime)
			assert.Equal(t, "IST", ev.Start.TimeZone)
		})
	}
}

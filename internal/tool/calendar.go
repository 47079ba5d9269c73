package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/calendar/v3"
)

// FetchCalendarEventsRequest names the day to list.
type FetchCalendarEventsRequest struct {
	DateQuery string `json:"date_query,omitempty" jsonschema:"date query (today/tomorrow/specific date), defaults to today"`
}

// CreateCalendarEventRequest describes the event to insert.
type CreateCalendarEventRequest struct {
	Summary   string `json:"summary" jsonschema:"the title of the event"`
	StartTime string `json:"start_time" jsonschema:"start time in 12-hour format, e.g. 2:30 PM"`
	EndTime   string `json:"end_time" jsonschema:"end time in 12-hour format, e.g. 3:30 PM"`
	Date      string `json:"date,omitempty" jsonschema:"date for the event (today, tomorrow, 2024-03-25 or 25-03-2024), defaults to today"`
}

type calendarSvc interface {
	ListEvents(ctx context.Context, start, end time.Time) (*calendar.Events, error)
	InsertEvent(ctx context.Context, ev *calendar.Event) (*calendar.Event, error)
}

// NewCalendarTools creates the calendar tools.
func NewCalendarTools(svc calendarSvc, clock Clock, zone *time.Location) *CalendarTools {
	return &CalendarTools{svc: svc, clock: clock, zone: zone}
}

// CalendarTools lists and creates events on the primary calendar.
type CalendarTools struct {
	svc   calendarSvc
	clock Clock
	zone  *time.Location
}

// FetchCalendarEvents handles the tool call.
func (t *CalendarTools) FetchCalendarEvents(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FetchCalendarEventsRequest,
) (*mcp.CallToolResult, SpokenResponse, error) {
	query := input.DateQuery
	if query == "" {
		query = "today"
	}

	return respond("fetch_calendar_events", t.Fetch(ctx, query))
}

// Fetch lists the day's events and renders them for speech.
func (t *CalendarTools) Fetch(ctx context.Context, dateQuery string) Outcome {
	now := t.clock().In(t.zone)

	start, end, resolved := DateRange(dateQuery, now, t.zone)
	if !resolved {
		return fail(KindBadInput,
			"I couldn't understand that date. You can ask about today, tomorrow, or a specific date.", nil)
	}

	events, err := t.svc.ListEvents(ctx, start, end)
	if err != nil {
		return fail(KindRemoteFailure, "I'm having trouble accessing your calendar right now.", err)
	}

	dateStr := formatDateForSpeech(start, now, t.zone)

	if len(events.Items) == 0 {
		return ok(fmt.Sprintf("You have no events scheduled for %s.", dateStr))
	}

	parts := []string{fmt.Sprintf("Here's what's scheduled for %s:", dateStr)}
	for _, ev := range events.Items {
		parts = append(parts, renderEvent(ev, t.zone))
	}

	return ok(strings.Join(parts, " "))
}

func renderEvent(ev *calendar.Event, zone *time.Location) string {
	summary := ev.Summary
	if summary == "" {
		summary = "Unnamed Event"
	}

	if ev.Start != nil && ev.Start.DateTime != "" {
		if start, err := time.Parse(time.RFC3339, ev.Start.DateTime); err == nil {
			return fmt.Sprintf("%s at %s", summary, formatEventTime(start, zone))
		}
	}

	return summary + " all day"
}

// CreateCalendarEvent handles the tool call.
func (t *CalendarTools) CreateCalendarEvent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateCalendarEventRequest,
) (*mcp.CallToolResult, SpokenResponse, error) {
	if input.Date == "" {
		input.Date = "today"
	}

	return respond("create_calendar_event", t.Create(ctx, input))
}

// Create inserts a new event after validating date, times and the
// no-past-events rule.
func (t *CalendarTools) Create(ctx context.Context, input CreateCalendarEventRequest) Outcome {
	now := t.clock().In(t.zone)

	day, _, resolved := DateRange(input.Date, now, t.zone)
	if !resolved {
		return fail(KindBadInput, "Please provide the date in YYYY-MM-DD or DD-MM-YYYY format", nil)
	}

	startClock, errStart := parseClock(input.StartTime)
	endClock, errEnd := parseClock(input.EndTime)
	if errStart != nil || errEnd != nil {
		return fail(KindBadInput, "Please provide the time in 12-hour format, like 2:30 PM",
			errors.Join(errStart, errEnd))
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), startClock.Hour(), startClock.Minute(), 0, 0, t.zone)
	end := time.Date(day.Year(), day.Month(), day.Day(), endClock.Hour(), endClock.Minute(), 0, 0, t.zone)

	// An end numerically earlier than the start means the event crosses
	// midnight.
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}

	if start.Before(now) {
		return fail(KindRejected, "Sorry, I cannot schedule events in the past.", nil)
	}

	ev := &calendar.Event{
		Summary: input.Summary,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: t.zone.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: t.zone.String(),
		},
	}

	if _, err := t.svc.InsertEvent(ctx, ev); err != nil {
		return fail(KindRemoteFailure, "I couldn't create that event. Please try again with a different time.", err)
	}

	return ok(fmt.Sprintf("I've scheduled %s for %s %s.",
		input.Summary, formatEventTime(start, t.zone), formatDateForSpeech(start, now, t.zone)))
}

func parseClock(s string) (time.Time, error) {
	t, err := time.Parse("3:04 PM", strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return time.Time{}, fmt.Errorf("time.Parse failed: %w", err)
	}

	return t, nil
}

// DateRange resolves a spoken date query ("today", "tomorrow", an ISO
// date or a day-month-year date) to a half-open 24-hour window in loc.
// resolved is false when the query is not understandable; callers turn
// that into a clarification request.
func DateRange(query string, now time.Time, loc *time.Location) (start, end time.Time, resolved bool) {
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch strings.ToLower(strings.TrimSpace(query)) {
	case "today":
		return today, today.AddDate(0, 0, 1), true
	case "tomorrow":
		start = today.AddDate(0, 0, 1)
		return start, start.AddDate(0, 0, 1), true
	}

	day, err := time.ParseInLocation("2006-01-02", query, loc)
	if err != nil {
		day, err = time.ParseInLocation("02-01-2006", query, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
	}

	start = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	return start, start.AddDate(0, 0, 1), true
}

// formatEventTime renders "2:30 PM", dropping ":00" for on-the-hour
// times.
func formatEventTime(t time.Time, loc *time.Location) string {
	t = t.In(loc)

	hour := t.Format("3")
	minute := t.Format("04")
	ampm := t.Format("PM")

	if minute == "00" {
		return hour + " " + ampm
	}

	return hour + ":" + minute + " " + ampm
}

// formatDateForSpeech says "today" or "tomorrow" when it can, otherwise
// the spoken day and month.
func formatDateForSpeech(t, now time.Time, loc *time.Location) string {
	t = t.In(loc)
	now = now.In(loc)

	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch {
	case day.Equal(today):
		return "today"
	case day.Equal(today.AddDate(0, 0, 1)):
		return "tomorrow"
	}

	return fmt.Sprintf("%d%s %s", t.Day(), ordinalSuffix(t.Day()), t.Month().String())
}

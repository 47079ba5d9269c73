package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultTimezone is the zone the assistant lives in unless asked
// otherwise.
const DefaultTimezone = "Asia/Kolkata"

// GetCurrentTimeRequest optionally names a zone.
type GetCurrentTimeRequest struct {
	Timezone string `json:"timezone,omitempty" jsonschema:"the timezone to get time for (e.g. Asia/Kolkata for IST), defaults to Asia/Kolkata"`
}

// GetCurrentDateRequest takes no arguments.
type GetCurrentDateRequest struct{}

// NewTimeDate creates the time and date tools.
func NewTimeDate(clock Clock, zone *time.Location) *TimeDate {
	return &TimeDate{clock: clock, zone: zone}
}

// TimeDate speaks wall-clock time and calendar dates.
type TimeDate struct {
	clock Clock
	zone  *time.Location
}

// GetCurrentTime handles the tool call.
func (t *TimeDate) GetCurrentTime(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetCurrentTimeRequest,
) (*mcp.CallToolResult, SpokenResponse, error) {
	return respond("get_current_time", t.CurrentTime(input.Timezone))
}

// CurrentTime renders the wall-clock time in the named zone.
func (t *TimeDate) CurrentTime(timezone string) Outcome {
	if timezone == "" {
		timezone = DefaultTimezone
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fail(KindBadInput, "Sorry, I couldn't get the current time.",
			fmt.Errorf("time.LoadLocation failed: %w", err))
	}

	now := t.clock().In(loc)

	return ok(fmt.Sprintf("The current time is %s %s", now.Format("03:04 PM"), timezone))
}

// GetCurrentDate handles the tool call.
func (t *TimeDate) GetCurrentDate(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ GetCurrentDateRequest,
) (*mcp.CallToolResult, SpokenResponse, error) {
	return respond("get_current_date", ok(SpokenDate(t.clock().In(t.zone))))
}

// SpokenDate renders a date the way it should be read aloud, e.g.
// "21st March, 2024".
func SpokenDate(t time.Time) string {
	return fmt.Sprintf("%d%s %s, %d", t.Day(), ordinalSuffix(t.Day()), t.Month().String(), t.Year())
}

// ordinalSuffix picks the English suffix for a day of month. The teens
// range is checked before the mod-10 rule so 11th/12th/13th come out
// right.
func ordinalSuffix(day int) string {
	if (day >= 4 && day <= 20) || (day >= 24 && day <= 30) {
		return "th"
	}

	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}

	return "th"
}

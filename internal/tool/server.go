package tool

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/humate-ai/lisa-agent/internal/session"
)

// Deps collects everything the tool set needs. Clock and Zone default to
// time.Now and the IST default zone when unset.
type Deps struct {
	Weather  weatherSvc
	Calendar calendarSvc
	Gmail    emailSvc
	Session  *session.Session
	Clock    Clock
	Zone     *time.Location
}

// NewServer builds the server the reasoning runtime dispatches against:
// every adapter is described by name, purpose and typed parameters, and
// answers with a single spoken string.
func NewServer(d Deps) *mcp.Server {
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Zone == nil {
		if zone, err := time.LoadLocation(DefaultTimezone); err == nil {
			d.Zone = zone
		} else {
			d.Zone = time.Local
		}
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "lisa-assistant", Version: "v1.0.0"}, nil)

	timeDate := NewTimeDate(d.Clock, d.Zone)
	calendarTools := NewCalendarTools(d.Calendar, d.Clock, d.Zone)
	emailTools := NewEmailTools(d.Gmail, d.Session)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_weather",
		Description: "Get real weather information for a location using the OpenWeather API",
	}, NewGetWeather(d.Weather).GetWeather)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_current_time",
		Description: "Get the current time in Indian Standard Time (IST) or a specified timezone",
	}, timeDate.GetCurrentTime)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_current_date",
		Description: "Get the current date in a natural spoken format",
	}, timeDate.GetCurrentDate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "fetch_calendar_events",
		Description: "Fetch Google Calendar events for a specific date",
	}, calendarTools.FetchCalendarEvents)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_calendar_event",
		Description: "Create a new event in Google Calendar",
	}, calendarTools.CreateCalendarEvent)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_email_summary",
		Description: "Get a summary of recent emails including unread and searched messages",
	}, emailTools.GetEmailSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_email_details",
		Description: "Read out a specific email from the last summary and mark it as discussed",
	}, emailTools.GetEmailDetails)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_draft",
		Description: "Create a new draft email in Gmail",
	}, emailTools.CreateDraft)

	return server
}

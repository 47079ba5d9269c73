package gservice

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/humate-ai/lisa-agent/internal/auth"
)

const calendarID = "primary"

func NewCalendar(cfg *oauth2.Config, tok *auth.Token) *Calendar {
	return &Calendar{
		cfg: cfg,
		tok: tok,
	}
}

type Calendar struct {
	cfg *oauth2.Config
	tok *auth.Token
}

// ListEvents lists single events starting in [start, end), in the remote
// API's native start-time order.
func (c *Calendar) ListEvents(ctx context.Context, start, end time.Time) (*calendar.Events, error) {
	svc, err := c.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	events, err := svc.Events.List(calendarID).
		TimeMin(windowFormat(start)).
		TimeMax(windowFormat(end)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("events.List failed: %w", err)
	}

	return events, nil
}

func (c *Calendar) InsertEvent(ctx context.Context, ev *calendar.Event) (*calendar.Event, error) {
	svc, err := c.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	created, err := svc.Events.Insert(calendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("events.Insert failed: %w", err)
	}

	return created, nil
}

func (c *Calendar) newSvc(ctx context.Context) (*calendar.Service, error) {
	clt, err := newHTTPClient(ctx, c.cfg, c.tok)
	if err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(clt))
	if err != nil {
		return nil, fmt.Errorf("calendar.NewService failed: %w", err)
	}

	return svc, nil
}

// windowFormat renders a window endpoint for the list call.
func windowFormat(t time.Time) string {
	return t.Format(time.RFC3339)
}

func newHTTPClient(ctx context.Context, cfg *oauth2.Config, tok *auth.Token) (*http.Client, error) {
	t, err := tok.OAuthToken()
	if err != nil {
		return nil, fmt.Errorf("tok.OAuthToken failed: %w", err)
	}

	return cfg.Client(ctx, t), nil
}

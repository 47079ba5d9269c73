package tool_test

import (
	"context"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"

	"github.com/humate-ai/lisa-agent/internal/weather"
)

type weatherSvcMock struct {
	CurrentByCityFunc func(ctx context.Context, city string) (*weather.Report, error)

	Calls int
}

func (m *weatherSvcMock) CurrentByCity(ctx context.Context, city string) (*weather.Report, error) {
	m.Calls++
	return m.CurrentByCityFunc(ctx, city)
}

type calendarSvcMock struct {
	ListEventsFunc  func(ctx context.Context, start, end time.Time) (*calendar.Events, error)
	InsertEventFunc func(ctx context.Context, ev *calendar.Event) (*calendar.Event, error)

	Inserted []*calendar.Event
}

func (m *calendarSvcMock) ListEvents(ctx context.Context, start, end time.Time) (*calendar.Events, error) {
	return m.ListEventsFunc(ctx, start, end)
}

func (m *calendarSvcMock) InsertEvent(ctx context.Context, ev *calendar.Event) (*calendar.Event, error) {
	m.Inserted = append(m.Inserted, ev)
	return m.InsertEventFunc(ctx, ev)
}

type gmailSvcMock struct {
	ListMessagesFunc func(ctx context.Context, query string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessageFunc   func(ctx context.Context, msgID string) (*gmail.Message, error)
	ListLabelsFunc   func(ctx context.Context) (*gmail.ListLabelsResponse, error)
	AddLabelFunc     func(ctx context.Context, msgID, labelID string) error
	CreateDraftFunc  func(ctx context.Context, raw string) (*gmail.Draft, error)

	ListLabelsCalls int
	AddedLabels     map[string]string
	Drafts          []string
}

func (m *gmailSvcMock) ListMessages(ctx context.Context, query string, maxResults int64) (*gmail.ListMessagesResponse, error) {
	return m.ListMessagesFunc(ctx, query, maxResults)
}

func (m *gmailSvcMock) GetMessage(ctx context.Context, msgID string) (*gmail.Message, error) {
	return m.GetMessageFunc(ctx, msgID)
}

func (m *gmailSvcMock) ListLabels(ctx context.Context) (*gmail.ListLabelsResponse, error) {
	m.ListLabelsCalls++
	return m.ListLabelsFunc(ctx)
}

func (m *gmailSvcMock) AddLabel(ctx context.Context, msgID, labelID string) error {
	if m.AddedLabels == nil {
		m.AddedLabels = map[string]string{}
	}
	m.AddedLabels[msgID] = labelID
	return m.AddLabelFunc(ctx, msgID, labelID)
}

func (m *gmailSvcMock) CreateDraft(ctx context.Context, raw string) (*gmail.Draft, error) {
	m.Drafts = append(m.Drafts, raw)
	return m.CreateDraftFunc(ctx, raw)
}

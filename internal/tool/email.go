package tool

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/humate-ai/lisa-agent/internal/session"
)

const (
	// prefetchLimit is how many messages a summary fetches and caches;
	// ordinals spoken to the user address this full set, not just the
	// displayed subset.
	prefetchLimit = 25
	// defaultDisplay is how many entries a summary reads out.
	defaultDisplay = 5
	// seenLabelName marks messages whose content was actually discussed.
	// The label is never created here; an absent label skips tagging.
	seenLabelName = "seen-by-lisa"
)

const gmailTrouble = "I'm having trouble accessing your Gmail right now. Please make sure I have the correct permissions."

// GetEmailSummaryRequest configures a summary fetch.
type GetEmailSummaryRequest struct {
	MaxResults  int    `json:"max_results,omitempty" jsonschema:"maximum number of emails to read out, defaults to 5"`
	SearchQuery string `json:"search_query,omitempty" jsonschema:"optional search query to filter emails"`
}

// GetEmailDetailsRequest references an email by its summary ordinal.
type GetEmailDetailsRequest struct {
	EmailNumber int `json:"email_number" jsonschema:"the number of the email to read, as given in the last summary"`
}

// CreateDraftRequest describes the draft to save.
type CreateDraftRequest struct {
	To      string `json:"to" jsonschema:"email address of the recipient, or the number/name of a sender from the last summary"`
	Subject string `json:"subject" jsonschema:"subject of the email"`
	Body    string `json:"body" jsonschema:"content of the email"`
}

type emailSvc interface {
	ListMessages(ctx context.Context, query string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessage(ctx context.Context, msgID string) (*gmail.Message, error)
	ListLabels(ctx context.Context) (*gmail.ListLabelsResponse, error)
	AddLabel(ctx context.Context, msgID, labelID string) error
	CreateDraft(ctx context.Context, raw string) (*gmail.Draft, error)
}

// NewEmailTools creates the Gmail tools bound to one conversation's
// session state.
func NewEmailTools(svc emailSvc, sess *session.Session) *EmailTools {
	return &EmailTools{svc: svc, sess: sess}
}

// EmailTools summarizes, reads and drafts mail.
type EmailTools struct {
	svc  emailSvc
	sess *session.Session
}

// GetEmailSummary handles the tool call.
func (t *EmailTools) GetEmailSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetEmailSummaryRequest,
) (*mcp.CallToolResult, SpokenResponse, error) {
	return respond("get_email_summary", t.Summarize(ctx, input.MaxResults, input.SearchQuery))
}

// Summarize resets the reference cache, prefetches the listing and reads
// out the first maxResults entries.
func (t *EmailTools) Summarize(ctx context.Context, maxResults int, searchQuery string) Outcome {
	if maxResults <= 0 {
		maxResults = defaultDisplay
	}

	// The summary call is the sole reset point for the reference cache
	// and the discussed-set.
	t.sess.Reset()

	// Bounded probe, for color in the closing sentence only.
	unread, err := t.svc.ListMessages(ctx, "is:unread", 1)
	if err != nil {
		return fail(KindRemoteFailure, gmailTrouble, err)
	}
	unreadCount := len(unread.Messages)

	listing, err := t.svc.ListMessages(ctx, searchQuery, prefetchLimit)
	if err != nil {
		return fail(KindRemoteFailure, gmailTrouble, err)
	}
	if len(listing.Messages) == 0 {
		return fail(KindNotFound, "No emails found matching your criteria.", nil)
	}

	// Every listed message is fetched and cached so later ordinal
	// references can address the full set, not only the spoken subset.
	displayed := 0
	var lines []string
	for i, m := range listing.Messages {
		msg, err := t.svc.GetMessage(ctx, m.Id)
		if err != nil {
			log.Printf("get_email_summary: fetch %s failed: %v", m.Id, err)
			continue
		}

		ref := referenceFromMessage(m.Id, msg)
		t.sess.Store(i+1, ref)

		if displayed < maxResults {
			displayed++
			lines = append(lines, fmt.Sprintf("%d. From %s about '%s'", i+1, ref.SenderName, ref.Subject))
		}
	}

	if displayed == 0 {
		return fail(KindRemoteFailure, "I can see your emails but couldn't read their details. Please try again.", nil)
	}

	var b strings.Builder
	if searchQuery != "" {
		fmt.Fprintf(&b, "Found %d emails matching your search. Here are the most recent %d:\n",
			len(listing.Messages), displayed)
	} else {
		fmt.Fprintf(&b, "You have %d unread emails. Here are your %d most recent messages:\n",
			unreadCount, displayed)
	}

	for _, line := range lines {
		b.WriteString("\n" + line)
	}

	b.WriteString("\n\nYou can ask me to read any email by saying 'read email number [1-5]'")
	if searchQuery != "" {
		b.WriteString("\nI've actually searched through your last 25 emails to find these results.")
	}

	return ok(b.String())
}

// GetEmailDetails handles the tool call.
func (t *EmailTools) GetEmailDetails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetEmailDetailsRequest,
) (*mcp.CallToolResult, SpokenResponse, error) {
	return respond("get_email_details", t.Detail(ctx, input.EmailNumber))
}

// Detail reads out one cached email, marks it discussed and best-effort
// tags it with the seen label.
func (t *EmailTools) Detail(ctx context.Context, emailNumber int) Outcome {
	ref, found := t.sess.Lookup(emailNumber)
	if !found {
		return fail(KindNotFound, "Email not found in current conversation.", nil)
	}

	t.sess.MarkDiscussed(ref.ID)

	labels, err := t.svc.ListLabels(ctx)
	if err != nil {
		return fail(KindRemoteFailure, "Failed to get email details.", err)
	}

	for _, label := range labels.Labels {
		if label.Name != seenLabelName {
			continue
		}
		if err := t.svc.AddLabel(ctx, ref.ID, label.Id); err != nil {
			return fail(KindRemoteFailure, "Failed to get email details.", err)
		}
		break
	}

	return ok(fmt.Sprintf("Email from %s with subject '%s'\n\nContent:\n%s",
		ref.SenderName, ref.Subject, ref.Body))
}

// CreateDraft handles the tool call.
func (t *EmailTools) CreateDraft(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateDraftRequest,
) (*mcp.CallToolResult, SpokenResponse, error) {
	return respond("create_draft", t.Draft(ctx, input))
}

// Draft resolves the recipient against the session cache and saves a
// plain-text draft.
func (t *EmailTools) Draft(ctx context.Context, input CreateDraftRequest) Outcome {
	to := t.sess.ResolveRecipient(input.To)
	if !strings.Contains(to, "@") {
		return fail(KindBadInput, "Please provide a valid email address with @ symbol.", nil)
	}

	if _, err := t.svc.CreateDraft(ctx, encodeDraft(to, input.Subject, input.Body)); err != nil {
		if strings.Contains(err.Error(), "Invalid To header") {
			return fail(KindBadInput,
				fmt.Sprintf("The email address '%s' appears to be invalid. Please provide a valid email address.", to), err)
		}
		return fail(KindRemoteFailure,
			"I couldn't create the draft email. Please try again with a valid email address.", err)
	}

	recipient := to[:strings.Index(to, "@")]

	return ok(fmt.Sprintf("I've saved your email to %s as a draft. You can review and send it from your Gmail.", recipient))
}

// encodeDraft builds the raw RFC 2822 message the drafts API expects,
// base64url encoded.
func encodeDraft(to, subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("From: me\r\n")
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}

func referenceFromMessage(id string, msg *gmail.Message) session.EmailRef {
	ref := session.EmailRef{
		ID:         id,
		Subject:    "No subject",
		SenderName: "Unknown sender",
	}

	if msg.Payload == nil {
		return ref
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "Subject":
			ref.Subject = header.Value
		case "From":
			name, email := parseEmailAddress(header.Value)
			ref.SenderEmail = email
			ref.SenderName = name
			if ref.SenderName == "" {
				ref.SenderName = email
			}
		}
	}

	ref.Body = extractPlainBody(msg.Payload)

	return ref
}

// extractPlainBody returns the first text/plain part, or the top-level
// body when the message has no parts.
func extractPlainBody(payload *gmail.MessagePart) string {
	for _, part := range payload.Parts {
		if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
			return decodeBase64URL(part.Body.Data)
		}
	}

	if len(payload.Parts) == 0 && payload.Body != nil && payload.Body.Data != "" {
		return decodeBase64URL(payload.Body.Data)
	}

	return ""
}

// parseEmailAddress splits a From header into display name and address.
func parseEmailAddress(from string) (name, email string) {
	if idx := strings.Index(from, "<"); idx != -1 {
		name = strings.TrimSpace(from[:idx])
		if endIdx := strings.Index(from[idx:], ">"); endIdx != -1 {
			email = strings.TrimSpace(from[idx+1 : idx+endIdx])
		}
	} else {
		email = strings.TrimSpace(from)
	}

	name = strings.Trim(name, "\"")

	return name, email
}

func decodeBase64URL(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return data
		}
	}
	return string(decoded)
}

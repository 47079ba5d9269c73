// Package session holds the mutable state of one voice conversation: the
// email reference cache and the set of messages already read out loud.
package session

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// EmailRef is one message surfaced to the user, addressed by the 1-based
// position it had in the last summary listing. Ordinals are reassigned on
// every summary fetch and mean nothing across fetches or sessions.
type EmailRef struct {
	ID          string
	SenderName  string
	SenderEmail string
	Subject     string
	Body        string
}

// Session is exclusively owned by a single conversation. The host runtime
// invokes tools one at a time within a session, so there is no locking
// here; never share a Session across concurrent conversations.
type Session struct {
	id        string
	emails    map[int]EmailRef
	discussed map[string]struct{}
}

// New creates an empty Session with a fresh identity.
func New() *Session {
	return &Session{
		id:        uuid.NewString(),
		emails:    make(map[int]EmailRef),
		discussed: make(map[string]struct{}),
	}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Reset drops every cached reference and the discussed-set. The summary
// tool is the sole caller; nothing survives a fresh summary fetch.
func (s *Session) Reset() {
	s.emails = make(map[int]EmailRef)
	s.discussed = make(map[string]struct{})
}

// Store caches one message under its listing ordinal.
func (s *Session) Store(ordinal int, ref EmailRef) {
	s.emails[ordinal] = ref
}

// Lookup resolves an ordinal from the last summary fetch.
func (s *Session) Lookup(ordinal int) (EmailRef, bool) {
	ref, ok := s.emails[ordinal]
	return ref, ok
}

// Size reports how many references are cached.
func (s *Session) Size() int {
	return len(s.emails)
}

// MarkDiscussed records that a message's detail view was returned to the
// user. Listing alone never marks a message.
func (s *Session) MarkDiscussed(msgID string) {
	s.discussed[msgID] = struct{}{}
}

// WasDiscussed reports whether a message has been detailed this session.
func (s *Session) WasDiscussed(msgID string) bool {
	_, ok := s.discussed[msgID]
	return ok
}

// ResolveRecipient maps a spoken recipient reference to an address: a
// cached ordinal first, then a case-insensitive sender-name substring in
// listing order, then the input verbatim. Callers still validate the
// result looks like an address.
func (s *Session) ResolveRecipient(to string) string {
	trimmed := strings.TrimSpace(to)

	if n, err := strconv.Atoi(trimmed); err == nil {
		if ref, ok := s.emails[n]; ok {
			return ref.SenderEmail
		}
	}

	if !strings.Contains(trimmed, "@") {
		needle := strings.ToLower(trimmed)
		for _, ordinal := range s.ordinals() {
			ref := s.emails[ordinal]
			if strings.Contains(strings.ToLower(ref.SenderName), needle) {
				return ref.SenderEmail
			}
		}
	}

	return to
}

// ordinals returns cached keys in listing order. Gaps are possible when a
// per-message fetch failed during the summary.
func (s *Session) ordinals() []int {
	keys := make([]int, 0, len(s.emails))
	for k := range s.emails {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

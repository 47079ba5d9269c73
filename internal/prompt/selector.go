// Package prompt assembles the instruction text for the next
// language-model turn.
package prompt

import "strings"

// Rule pairs trigger keywords with the instruction block they unlock.
type Rule struct {
	Keywords []string
	Block    string
}

// Selector augments a base instruction block with the capability block of
// the first matching rule. Rules are evaluated in declaration order, so
// precedence between overlapping keyword sets is explicit.
type Selector struct {
	rules []Rule
}

// NewSelector creates a Selector over an ordered rule list.
func NewSelector(rules ...Rule) *Selector {
	return &Selector{rules: rules}
}

// Augment returns base plus the first rule block whose keywords appear in
// the utterance. Matching is case-insensitive substring containment; no
// rule matching returns base unchanged. Pure function of its inputs.
func (s *Selector) Augment(base, utterance string) string {
	lowered := strings.ToLower(utterance)

	for _, rule := range s.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lowered, kw) {
				return base + "\n" + rule.Block
			}
		}
	}

	return base
}

// DefaultRules wires the email and calendar capability blocks. The email
// rule comes first so email wording wins when an utterance matches both.
func DefaultRules() []Rule {
	return []Rule{
		{
			Keywords: []string{"email", "mail", "inbox", "draft", "send", "write to", "message"},
			Block:    EmailCapabilities,
		},
		{
			Keywords: []string{"calendar", "schedule", "meeting", "event", "appointment"},
			Block:    CalendarCapabilities,
		},
	}
}

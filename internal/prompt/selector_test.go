package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/humate-ai/lisa-agent/internal/prompt"
)

func TestAugment(t *testing.T) {
	sel := prompt.NewSelector(prompt.DefaultRules()...)
	base := "base instructions"

	cases := []struct {
		name         string
		utterance    string
		wantEmail    bool
		wantCalendar bool
	}{
		{name: "inbox picks email", utterance: "can you check my inbox", wantEmail: true},
		{name: "case-insensitive", utterance: "Check My EMAILS please", wantEmail: true},
		{name: "calendar picks calendar", utterance: "what's on my calendar tomorrow", wantCalendar: true},
		{name: "appointment picks calendar", utterance: "book an appointment", wantCalendar: true},
		{name: "both sets match, email wins", utterance: "send an email about the meeting", wantEmail: true},
		{name: "no match leaves base alone", utterance: "how is the weather", wantEmail: false, wantCalendar: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sel.Augment(base, tc.utterance)

			assert.True(t, strings.HasPrefix(got, base))
			assert.Equal(t, tc.wantEmail, strings.Contains(got, prompt.EmailCapabilities))
			assert.Equal(t, tc.wantCalendar, strings.Contains(got, prompt.CalendarCapabilities))
			if !tc.wantEmail && !tc.wantCalendar {
				assert.Equal(t, base, got)
			}
		})
	}
}

func TestAugmentFirstRuleWins(t *testing.T) {
	sel := prompt.NewSelector(
		prompt.Rule{Keywords: []string{"ping"}, Block: "first"},
		prompt.Rule{Keywords: []string{"ping"}, Block: "second"},
	)

	got := sel.Augment("base", "ping")
	assert.Contains(t, got, "first")
	assert.NotContains(t, got, "second")
}

func TestBaseInstructionsCarryDate(t *testing.T) {
	got := prompt.BaseInstructions("21st March, 2024")
	assert.Contains(t, got, "Today's date is 21st March, 2024.")
}

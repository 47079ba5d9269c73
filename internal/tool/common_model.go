package tool

import "time"

// SpokenResponse is the single result channel every tool shares: one
// natural-language string ready for the TTS stage. Failures arrive here
// too; there is no structured error channel back to the model.
type SpokenResponse struct {
	Speech string `json:"speech" jsonschema:"the sentence to speak to the user"`
}

// Clock supplies the current instant. Injected so date math is testable.
type Clock func() time.Time

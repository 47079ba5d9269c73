package roomio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/humate-ai/lisa-agent/internal/roomio"
)

func TestDecodeChatPayload(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    string
	}{
		{name: "chat JSON format", payload: `{"message": "check my inbox"}`, want: "check my inbox"},
		{name: "JSON without message field falls back to raw", payload: `{"text": "hello"}`, want: `{"text": "hello"}`},
		{name: "raw text", payload: "what's the weather", want: "what's the weather"},
		{name: "invalid JSON treated as raw", payload: `{"message": `, want: `{"message": `},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, roomio.DecodeChatPayload([]byte(tc.payload)))
		})
	}
}

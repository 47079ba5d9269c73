package tool

import (
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Kind classifies how an adapter call ended, independent of the wording
// spoken to the user.
type Kind int

const (
	KindOK Kind = iota
	// KindConfigMissing: a required credential is absent; detected before
	// any remote call.
	KindConfigMissing
	// KindBadInput: unparseable date/time/ordinal/address, caught before
	// any remote mutation.
	KindBadInput
	// KindNotFound: the remote side or the session cache does not know
	// the referenced thing.
	KindNotFound
	// KindRemoteFailure: network, auth, quota or unexpected provider
	// error; detail is logged, never spoken.
	KindRemoteFailure
	// KindRejected: a business rule said no, e.g. a past-dated event.
	KindRejected
)

// Outcome is the internal result of one adapter call. Spoken is what the
// user hears; Err carries the cause for the server log and never reaches
// the spoken channel.
type Outcome struct {
	Kind   Kind
	Spoken string
	Err    error
}

func ok(spoken string) Outcome {
	return Outcome{Kind: KindOK, Spoken: spoken}
}

func fail(kind Kind, spoken string, err error) Outcome {
	return Outcome{Kind: kind, Spoken: spoken, Err: err}
}

// respond renders an Outcome at the dispatch boundary: detail goes to the
// log, the spoken string goes back to the model. Adapters never surface
// an error through the tool result.
func respond(name string, out Outcome) (*mcp.CallToolResult, SpokenResponse, error) {
	if out.Err != nil {
		log.Printf("%s: %v", name, out.Err)
	}

	return nil, SpokenResponse{Speech: out.Spoken}, nil
}

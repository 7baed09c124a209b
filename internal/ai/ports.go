package ai

import (
	"context"

	"github.com/bizwise/maya/internal/business"
)

// Completer produces one reply for one inbound message. The webhook handler
// depends on this interface so tests can stub the model out.
type Completer interface {
	Respond(ctx context.Context, req Request) (string, error)
}

// Request is the single calling convention for a completion. Either System
// carries a pre-assembled prompt, or Business is set and the grounded prompt
// is assembled from the record. When both are set, System wins.
type Request struct {
	System      string
	UserMessage string
	Business    *business.Business

	// BotID selects the locally stored credential tier; APIKeyOverride beats
	// every other tier.
	BotID          string
	APIKeyOverride string
}

// KeyStore is the locally persisted credential tier. A lookup miss is an
// error; the client falls through to the next tier.
type KeyStore interface {
	GetAPIKey(botID string) (string, error)
}

package mcpchat

import "context"

// ChatProvider defines the interface for chat completion providers.
type ChatProvider interface {
	// Chat sends a conversation and returns a complete response.
	// The call blocks until the provider has produced the full response.
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}

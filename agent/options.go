package agent

import ai "github.com/swingAnt/mcpchat"

// DefaultSystemPrompt is the role-defining instruction used when no custom
// prompt is configured.
const DefaultSystemPrompt = "You are a helpful assistant. Use the available tools when they are relevant to the user's question, and answer in plain language."

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSystemPrompt sets the system message that seeds every query's
// transcript.
func WithSystemPrompt(prompt string) Option {
	return func(o *Orchestrator) {
		o.systemPrompt = prompt
	}
}

// WithChatOptions sets chat request options (model, sampling parameters)
// applied to every completion round.
func WithChatOptions(opts ...ai.Option) Option {
	return func(o *Orchestrator) {
		o.chatOpts = opts
	}
}

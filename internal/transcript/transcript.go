// Package transcript manages the ordered message list submitted to the chat
// API during one query's processing. A transcript is created fresh per query
// and discarded once the final answer is extracted; nothing is carried
// across queries.
package transcript

import ai "github.com/swingAnt/mcpchat"

// Transcript is an append-only list of conversation messages.
// It is confined to a single query and is not safe for concurrent use.
type Transcript struct {
	messages []ai.Message
}

// New creates a Transcript seeded with the given messages.
func New(seed ...ai.Message) *Transcript {
	t := &Transcript{}
	t.Append(seed...)
	return t
}

// Append adds messages to the end of the transcript.
func (t *Transcript) Append(msgs ...ai.Message) {
	t.messages = append(t.messages, msgs...)
}

// AppendPair appends one assistant message carrying exactly the given tool
// call, immediately followed by one tool message carrying its result. The
// orchestrator calls this once per dispatched call, in dispatch order.
func (t *Transcript) AppendPair(call ai.ToolCall, result ai.ToolResult) {
	t.Append(ai.NewToolCallMessage(call), ai.NewToolResultMessage(result))
}

// Messages returns a copy of the transcript in order.
func (t *Transcript) Messages() []ai.Message {
	result := make([]ai.Message, len(t.messages))
	copy(result, t.messages)
	return result
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Package agent drives tool-calling conversations over a chat provider and
// a tool backend connector.
//
// One query runs through at most two completion rounds: the first round
// declares the registry's tools; if the model requests tool calls they are
// dispatched strictly sequentially and the extended transcript is submitted
// a second time, without tool declarations, to produce the final answer.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	ai "github.com/swingAnt/mcpchat"
	"github.com/swingAnt/mcpchat/internal/transcript"
	"github.com/swingAnt/mcpchat/tool"
)

// Invoker executes tool calls against the connected backend.
// [github.com/swingAnt/mcpchat/mcp.Connector] implements this interface.
type Invoker interface {
	Invoke(ctx context.Context, call ai.ToolCall) (ai.ToolResult, error)
}

// Orchestrator drives the full request/tool-call/response cycle for one
// query at a time. It is synchronous: HandleQuery does not return until the
// exchange, including all tool dispatches, has completed.
type Orchestrator struct {
	provider     ai.ChatProvider
	registry     *tool.Registry
	invoker      Invoker
	systemPrompt string
	chatOpts     []ai.Option
}

// New creates an Orchestrator over the given provider, registry, and
// backend invoker.
func New(provider ai.ChatProvider, registry *tool.Registry, invoker Invoker, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider:     provider,
		registry:     registry,
		invoker:      invoker,
		systemPrompt: DefaultSystemPrompt,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// HandleQuery runs one user query to completion and returns the model's
// final answer text. The answer is the empty string when the model returned
// no text content.
//
// Failed tool invocations do not abort the query: each failure is recorded
// in the transcript as an error-flagged result so the model can react to it
// in the second round. Chat API failures abort the query and propagate.
func (o *Orchestrator) HandleQuery(ctx context.Context, query string) (string, error) {
	tr := transcript.New(
		ai.Message{ID: ai.GenerateMessageID(), Role: ai.RoleSystem, Content: o.systemPrompt},
		ai.Message{ID: ai.GenerateMessageID(), Role: ai.RoleUser, Content: query},
	)

	firstOpts := o.chatOpts
	if tools := o.registry.Snapshot(); len(tools) > 0 {
		firstOpts = append(append([]ai.Option{}, o.chatOpts...), ai.WithTools(tools))
	}

	resp, err := o.provider.Chat(ctx, tr.Messages(), firstOpts...)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.ToolCalls) == 0 {
		return resp.Content, nil
	}

	// Dispatch sequentially, in the order the model emitted the calls. Each
	// call gets its own (assistant-call, tool-result) transcript pair.
	for _, call := range resp.ToolCalls {
		tr.AppendPair(call, o.dispatch(ctx, call))
	}

	// Second round synthesizes the answer from the tool results; no tool
	// declarations are sent, and any tool calls the model returns anyway
	// are not dispatched. Only the text content is used.
	final, err := o.provider.Chat(ctx, tr.Messages(), o.chatOpts...)
	if err != nil {
		return "", fmt.Errorf("chat completion after tool calls: %w", err)
	}
	if len(final.ToolCalls) > 0 {
		slog.Warn("ignoring tool calls requested after tool results", "count", len(final.ToolCalls))
	}

	return final.Content, nil
}

// dispatch executes one tool call and always produces a result for the
// transcript. Invocation failures, including unparseable arguments and
// unknown tools, become error-flagged results.
func (o *Orchestrator) dispatch(ctx context.Context, call ai.ToolCall) ai.ToolResult {
	if !o.registry.Has(call.Name) {
		slog.Warn("model requested unknown tool", "tool", call.Name, "callId", call.ID)
		return ai.ToolResult{
			ToolCallID: call.ID,
			Content:    fmt.Sprintf("tool %q is not available", call.Name),
			IsError:    true,
		}
	}

	result, err := o.invoker.Invoke(ctx, call)
	if err != nil {
		slog.Warn("tool invocation failed", "tool", call.Name, "callId", call.ID, "error", err)
		return ai.ToolResult{
			ToolCallID: call.ID,
			Content:    err.Error(),
			IsError:    true,
		}
	}
	if result.IsError {
		slog.Warn("tool reported an error result", "tool", call.Name, "callId", call.ID)
	}
	return result
}

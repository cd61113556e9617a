package agent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ai "github.com/swingAnt/mcpchat"
	"github.com/swingAnt/mcpchat/tool"
)

type chatCall struct {
	messages []ai.Message
	options  *ai.Options
}

// fakeProvider returns scripted responses in order and records every call.
type fakeProvider struct {
	calls     []chatCall
	responses []*ai.Response
	errs      []error
}

func (f *fakeProvider) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	i := len(f.calls)
	f.calls = append(f.calls, chatCall{messages: messages, options: ai.ApplyOptions(opts...)})
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return &ai.Response{}, nil
}

// fakeInvoker records invocation order and returns scripted results per call ID.
type fakeInvoker struct {
	invoked []ai.ToolCall
	results map[string]ai.ToolResult
	errs    map[string]error
}

func (f *fakeInvoker) Invoke(ctx context.Context, call ai.ToolCall) (ai.ToolResult, error) {
	f.invoked = append(f.invoked, call)
	if err := f.errs[call.ID]; err != nil {
		return ai.ToolResult{}, err
	}
	if r, ok := f.results[call.ID]; ok {
		return r, nil
	}
	return ai.ToolResult{ToolCallID: call.ID, Content: "ok"}, nil
}

func forecastRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	r := tool.NewRegistry()
	r.Populate([]ai.Tool{
		{
			Name:        "get_forecast",
			Description: "Get weather forecast for coordinates",
			Parameters:  json.RawMessage(`{"type":"object","properties":{"latitude":{"type":"number"},"longitude":{"type":"number"}},"required":["latitude","longitude"]}`),
		},
		{
			Name:        "get_alerts",
			Description: "Get weather alerts for a state",
			Parameters:  json.RawMessage(`{"type":"object","properties":{"state":{"type":"string"}},"required":["state"]}`),
		},
	})
	return r
}

func TestHandleQueryNoToolCalls(t *testing.T) {
	provider := &fakeProvider{
		responses: []*ai.Response{{Content: "Paris is the capital of France."}},
	}
	invoker := &fakeInvoker{}
	o := New(provider, forecastRegistry(t), invoker)

	answer, err := o.HandleQuery(context.Background(), "What is the capital of France?")

	require.NoError(t, err)
	assert.Equal(t, "Paris is the capital of France.", answer)

	t.Run("second round is never invoked", func(t *testing.T) {
		assert.Len(t, provider.calls, 1)
		assert.Empty(t, invoker.invoked)
	})

	t.Run("first round declares the registry tools", func(t *testing.T) {
		require.Len(t, provider.calls[0].options.Tools, 2)
		assert.Equal(t, "get_forecast", provider.calls[0].options.Tools[0].Name)
	})

	t.Run("transcript is seeded with system and user messages", func(t *testing.T) {
		msgs := provider.calls[0].messages
		require.Len(t, msgs, 2)
		assert.Equal(t, ai.RoleSystem, msgs[0].Role)
		assert.Equal(t, DefaultSystemPrompt, msgs[0].Content)
		assert.Equal(t, ai.RoleUser, msgs[1].Role)
		assert.Equal(t, "What is the capital of France?", msgs[1].Content)
	})
}

func TestHandleQueryEmptyContent(t *testing.T) {
	provider := &fakeProvider{responses: []*ai.Response{{Content: ""}}}
	o := New(provider, forecastRegistry(t), &fakeInvoker{})

	answer, err := o.HandleQuery(context.Background(), "anything")

	require.NoError(t, err)
	assert.Equal(t, "", answer)
}

func TestHandleQuerySingleToolCall(t *testing.T) {
	call := ai.ToolCall{
		ID:        "call_1",
		Name:      "get_forecast",
		Arguments: `{"latitude": 40.7, "longitude": -74.0}`,
	}
	provider := &fakeProvider{
		responses: []*ai.Response{
			{ToolCalls: []ai.ToolCall{call}},
			{Content: "It's sunny and 22°C."},
		},
	}
	invoker := &fakeInvoker{
		results: map[string]ai.ToolResult{
			"call_1": {ToolCallID: "call_1", Content: "Sunny, 22C"},
		},
	}
	o := New(provider, forecastRegistry(t), invoker)

	answer, err := o.HandleQuery(context.Background(), "What's the weather at latitude 40.7, longitude -74.0?")

	require.NoError(t, err)
	assert.NotEmpty(t, answer)
	assert.Equal(t, "It's sunny and 22°C.", answer)

	t.Run("arguments are forwarded verbatim", func(t *testing.T) {
		require.Len(t, invoker.invoked, 1)
		assert.Equal(t, `{"latitude": 40.7, "longitude": -74.0}`, invoker.invoked[0].Arguments)
	})

	t.Run("transcript has exactly one call/result pair", func(t *testing.T) {
		require.Len(t, provider.calls, 2)
		msgs := provider.calls[1].messages
		require.Len(t, msgs, 4) // system, user, assistant-call, tool-result

		assert.Equal(t, ai.RoleAssistant, msgs[2].Role)
		require.Len(t, msgs[2].ToolCalls, 1)
		assert.Equal(t, "call_1", msgs[2].ToolCalls[0].ID)

		assert.Equal(t, ai.RoleTool, msgs[3].Role)
		require.Len(t, msgs[3].ToolResults, 1)
		assert.Equal(t, "call_1", msgs[3].ToolResults[0].ToolCallID)
		assert.Equal(t, "Sunny, 22C", msgs[3].ToolResults[0].Content)
	})

	t.Run("second round carries no tool declarations", func(t *testing.T) {
		assert.Empty(t, provider.calls[1].options.Tools)
	})
}

func TestHandleQuerySequentialDispatch(t *testing.T) {
	callA := ai.ToolCall{ID: "call_a", Name: "get_forecast", Arguments: `{"latitude": 1, "longitude": 2}`}
	callB := ai.ToolCall{ID: "call_b", Name: "get_alerts", Arguments: `{"state": "NY"}`}
	provider := &fakeProvider{
		responses: []*ai.Response{
			{ToolCalls: []ai.ToolCall{callA, callB}},
			{Content: "done"},
		},
	}
	invoker := &fakeInvoker{
		results: map[string]ai.ToolResult{
			"call_a": {ToolCallID: "call_a", Content: "forecast"},
			"call_b": {ToolCallID: "call_b", Content: "alerts"},
		},
	}
	o := New(provider, forecastRegistry(t), invoker)

	_, err := o.HandleQuery(context.Background(), "weather and alerts please")
	require.NoError(t, err)

	t.Run("invoked in emitted order", func(t *testing.T) {
		require.Len(t, invoker.invoked, 2)
		assert.Equal(t, "call_a", invoker.invoked[0].ID)
		assert.Equal(t, "call_b", invoker.invoked[1].ID)
	})

	t.Run("pairs are appended in call order, never interleaved", func(t *testing.T) {
		msgs := provider.calls[1].messages
		require.Len(t, msgs, 6) // system, user, then two pairs

		assert.Equal(t, "call_a", msgs[2].ToolCalls[0].ID)
		assert.Equal(t, "call_a", msgs[3].ToolResults[0].ToolCallID)
		assert.Equal(t, "call_b", msgs[4].ToolCalls[0].ID)
		assert.Equal(t, "call_b", msgs[5].ToolResults[0].ToolCallID)
	})

	t.Run("every pair carries exactly one call", func(t *testing.T) {
		msgs := provider.calls[1].messages
		assert.Len(t, msgs[2].ToolCalls, 1)
		assert.Len(t, msgs[4].ToolCalls, 1)
	})
}

func TestHandleQueryToolFailureContainment(t *testing.T) {
	callA := ai.ToolCall{ID: "call_a", Name: "get_forecast", Arguments: `{"latitude": 1, "longitude": 2}`}
	callB := ai.ToolCall{ID: "call_b", Name: "get_alerts", Arguments: `{"state": "NY"}`}
	provider := &fakeProvider{
		responses: []*ai.Response{
			{ToolCalls: []ai.ToolCall{callA, callB}},
			{Content: "partial answer"},
		},
	}
	invoker := &fakeInvoker{
		errs: map[string]error{
			"call_a": &ai.ToolExecutionError{Name: "get_forecast", Err: errors.New("upstream timed out")},
		},
		results: map[string]ai.ToolResult{
			"call_b": {ToolCallID: "call_b", Content: "no alerts"},
		},
	}
	o := New(provider, forecastRegistry(t), invoker)

	answer, err := o.HandleQuery(context.Background(), "weather and alerts please")

	require.NoError(t, err)
	assert.Equal(t, "partial answer", answer)

	t.Run("failed call still gets its transcript pair", func(t *testing.T) {
		require.Len(t, provider.calls, 2)
		msgs := provider.calls[1].messages
		require.Len(t, msgs, 6)

		failed := msgs[3].ToolResults[0]
		assert.Equal(t, "call_a", failed.ToolCallID)
		assert.True(t, failed.IsError)
		assert.Contains(t, failed.Content, "get_forecast")
	})

	t.Run("remaining calls are still dispatched", func(t *testing.T) {
		require.Len(t, invoker.invoked, 2)
		assert.Equal(t, "call_b", invoker.invoked[1].ID)
		assert.False(t, provider.calls[1].messages[5].ToolResults[0].IsError)
	})
}

func TestHandleQueryMalformedArguments(t *testing.T) {
	call := ai.ToolCall{ID: "call_1", Name: "get_forecast", Arguments: `{not json`}
	provider := &fakeProvider{
		responses: []*ai.Response{
			{ToolCalls: []ai.ToolCall{call}},
			{Content: "sorry, could not run the tool"},
		},
	}
	invoker := &fakeInvoker{
		errs: map[string]error{
			"call_1": &ai.MalformedToolArgumentsError{Name: "get_forecast", Arguments: `{not json`, Err: errors.New("invalid character 'n'")},
		},
	}
	o := New(provider, forecastRegistry(t), invoker)

	answer, err := o.HandleQuery(context.Background(), "weather please")

	require.NoError(t, err)
	assert.Equal(t, "sorry, could not run the tool", answer)

	result := provider.calls[1].messages[3].ToolResults[0]
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content, "malformed arguments")
}

func TestHandleQueryUnknownTool(t *testing.T) {
	call := ai.ToolCall{ID: "call_1", Name: "not_a_tool", Arguments: `{}`}
	provider := &fakeProvider{
		responses: []*ai.Response{
			{ToolCalls: []ai.ToolCall{call}},
			{Content: "that tool does not exist"},
		},
	}
	invoker := &fakeInvoker{}
	o := New(provider, forecastRegistry(t), invoker)

	_, err := o.HandleQuery(context.Background(), "use the secret tool")
	require.NoError(t, err)

	t.Run("backend is never invoked", func(t *testing.T) {
		assert.Empty(t, invoker.invoked)
	})

	t.Run("error result is paired anyway", func(t *testing.T) {
		result := provider.calls[1].messages[3].ToolResults[0]
		assert.Equal(t, "call_1", result.ToolCallID)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "not_a_tool")
	})
}

func TestHandleQueryChatAPIErrors(t *testing.T) {
	t.Run("first round failure propagates without dispatch", func(t *testing.T) {
		apiErr := ai.NewChatAPIError("rate limited", 429, nil)
		provider := &fakeProvider{errs: []error{apiErr}}
		invoker := &fakeInvoker{}
		o := New(provider, forecastRegistry(t), invoker)

		_, err := o.HandleQuery(context.Background(), "anything")

		require.Error(t, err)
		assert.True(t, errors.Is(err, apiErr))
		assert.Empty(t, invoker.invoked)
	})

	t.Run("second round failure propagates after dispatch", func(t *testing.T) {
		apiErr := ai.NewChatAPIError("server error", 500, nil)
		provider := &fakeProvider{
			responses: []*ai.Response{
				{ToolCalls: []ai.ToolCall{{ID: "call_1", Name: "get_forecast", Arguments: `{}`}}},
			},
			errs: []error{nil, apiErr},
		}
		invoker := &fakeInvoker{}
		o := New(provider, forecastRegistry(t), invoker)

		_, err := o.HandleQuery(context.Background(), "anything")

		require.Error(t, err)
		assert.True(t, errors.Is(err, apiErr))
		assert.Len(t, invoker.invoked, 1)
	})
}

func TestHandleQuerySecondRoundToolCallsIgnored(t *testing.T) {
	provider := &fakeProvider{
		responses: []*ai.Response{
			{ToolCalls: []ai.ToolCall{{ID: "call_1", Name: "get_forecast", Arguments: `{}`}}},
			{
				Content:   "here is what I found",
				ToolCalls: []ai.ToolCall{{ID: "call_2", Name: "get_alerts", Arguments: `{}`}},
			},
		},
	}
	invoker := &fakeInvoker{}
	o := New(provider, forecastRegistry(t), invoker)

	answer, err := o.HandleQuery(context.Background(), "weather please")

	require.NoError(t, err)
	assert.Equal(t, "here is what I found", answer)

	// Only the first-round call was dispatched; no third round happens.
	assert.Len(t, provider.calls, 2)
	require.Len(t, invoker.invoked, 1)
	assert.Equal(t, "call_1", invoker.invoked[0].ID)
}

func TestHandleQueryFreshTranscriptPerQuery(t *testing.T) {
	provider := &fakeProvider{
		responses: []*ai.Response{{Content: "first"}, {Content: "second"}},
	}
	o := New(provider, forecastRegistry(t), &fakeInvoker{})

	_, err := o.HandleQuery(context.Background(), "query one")
	require.NoError(t, err)
	_, err = o.HandleQuery(context.Background(), "query two")
	require.NoError(t, err)

	// The second query's transcript starts over: system + its own user turn.
	msgs := provider.calls[1].messages
	require.Len(t, msgs, 2)
	assert.Equal(t, "query two", msgs[1].Content)
}

func TestOrchestratorOptions(t *testing.T) {
	t.Run("custom system prompt", func(t *testing.T) {
		provider := &fakeProvider{responses: []*ai.Response{{Content: "ok"}}}
		o := New(provider, forecastRegistry(t), &fakeInvoker{},
			WithSystemPrompt("You only talk about weather."))

		_, err := o.HandleQuery(context.Background(), "hi")
		require.NoError(t, err)
		assert.Equal(t, "You only talk about weather.", provider.calls[0].messages[0].Content)
	})

	t.Run("chat options are applied to both rounds", func(t *testing.T) {
		provider := &fakeProvider{
			responses: []*ai.Response{
				{ToolCalls: []ai.ToolCall{{ID: "c", Name: "get_forecast", Arguments: `{}`}}},
				{Content: "done"},
			},
		}
		o := New(provider, forecastRegistry(t), &fakeInvoker{},
			WithChatOptions(ai.WithModel("gpt-4o-mini"), ai.WithMaxTokens(512), ai.WithTemperature(0.7)))

		_, err := o.HandleQuery(context.Background(), "hi")
		require.NoError(t, err)

		for i, c := range provider.calls {
			assert.Equal(t, "gpt-4o-mini", c.options.Model, "round %d", i+1)
			assert.Equal(t, 512, c.options.MaxTokens, "round %d", i+1)
			require.NotNil(t, c.options.Temperature, "round %d", i+1)
			assert.Equal(t, 0.7, *c.options.Temperature, "round %d", i+1)
		}
	})
}

package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ai "github.com/swingAnt/mcpchat"
)

func TestNew(t *testing.T) {
	tr := New(
		ai.Message{Role: ai.RoleSystem, Content: "You are a helpful assistant."},
		ai.Message{Role: ai.RoleUser, Content: "What's the weather?"},
	)

	require.Equal(t, 2, tr.Len())
	msgs := tr.Messages()
	assert.Equal(t, ai.RoleSystem, msgs[0].Role)
	assert.Equal(t, ai.RoleUser, msgs[1].Role)
}

func TestAppendPair(t *testing.T) {
	tr := New(ai.Message{Role: ai.RoleUser, Content: "query"})

	call := ai.ToolCall{ID: "call_1", Name: "get_forecast", Arguments: `{"latitude":40.7}`}
	result := ai.ToolResult{ToolCallID: "call_1", Content: "Sunny, 22C"}
	tr.AppendPair(call, result)

	msgs := tr.Messages()
	require.Len(t, msgs, 3)

	assert.Equal(t, ai.RoleAssistant, msgs[1].Role)
	require.Len(t, msgs[1].ToolCalls, 1)
	assert.Equal(t, "call_1", msgs[1].ToolCalls[0].ID)

	assert.Equal(t, ai.RoleTool, msgs[2].Role)
	require.Len(t, msgs[2].ToolResults, 1)
	assert.Equal(t, "call_1", msgs[2].ToolResults[0].ToolCallID)
}

func TestMessagesReturnsCopy(t *testing.T) {
	tr := New(ai.Message{Role: ai.RoleUser, Content: "original"})

	msgs := tr.Messages()
	msgs[0].Content = "mutated"

	assert.Equal(t, "original", tr.Messages()[0].Content)
}

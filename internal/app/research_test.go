package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentpilot/internal/ai"
)

func TestResearchDirectAnswer(t *testing.T) {
	fake := &fakeChat{chatResults: []*ai.ChatResult{{Content: "Insight: direct"}}}
	search := &fakeSearch{}
	research := NewResearch(fake, ai.ChatConfig{}, search)

	got, err := research.Generate(context.Background(), "research our niche")
	require.NoError(t, err)
	assert.Equal(t, "Insight: direct", got)
	assert.Empty(t, search.queries)

	require.Len(t, fake.chatCalls, 1)
	require.Len(t, fake.chatCalls[0].opts.Tools, 1)
	assert.Equal(t, "web_search", fake.chatCalls[0].opts.Tools[0].Function.Name)
}

func TestResearchToolRoundTrip(t *testing.T) {
	toolCall := ai.ToolCall{
		ID:   "call_1",
		Type: "function",
		Function: ai.ToolCallFunc{
			Name:      "web_search",
			Arguments: `{"query":"2026 fitness trends"}`,
		},
	}
	fake := &fakeChat{chatResults: []*ai.ChatResult{
		{ToolCalls: []ai.ToolCall{toolCall}},
		{Content: "Insight: grounded"},
	}}
	search := &fakeSearch{result: "snippet one snippet two"}
	research := NewResearch(fake, ai.ChatConfig{}, search)

	got, err := research.Generate(context.Background(), "research fitness trends")
	require.NoError(t, err)
	assert.Equal(t, "Insight: grounded", got)

	require.Equal(t, []string{"2026 fitness trends"}, search.queries)
	require.Len(t, fake.chatCalls, 2)

	// The second call replays the invocation and the tool result.
	replay := fake.chatCalls[1].messages
	require.Len(t, replay, 3)
	assert.Equal(t, "assistant", replay[1].Role)
	require.Len(t, replay[1].ToolCalls, 1)
	assert.Equal(t, "tool", replay[2].Role)
	assert.Equal(t, "call_1", replay[2].ToolCallID)
	assert.Equal(t, "web_search", replay[2].Name)
	assert.Equal(t, "snippet one snippet two", replay[2].Content)
	assert.Empty(t, fake.chatCalls[1].opts.Tools)
}

func TestResearchEmptyDirectAnswer(t *testing.T) {
	fake := &fakeChat{chatResults: []*ai.ChatResult{{Content: "  "}}}
	research := NewResearch(fake, ai.ChatConfig{}, &fakeSearch{})

	_, err := research.Generate(context.Background(), "research x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "awaiting tool decision")
}

func TestResearchSearchFailure(t *testing.T) {
	toolCall := ai.ToolCall{
		ID:       "call_1",
		Function: ai.ToolCallFunc{Name: "web_search", Arguments: `{"query":"q"}`},
	}
	fake := &fakeChat{chatResults: []*ai.ChatResult{{ToolCalls: []ai.ToolCall{toolCall}}}}
	research := NewResearch(fake, ai.ChatConfig{}, &fakeSearch{err: errors.New("api down")})

	_, err := research.Generate(context.Background(), "research x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "web search failed")
}

func TestResearchUnknownTool(t *testing.T) {
	toolCall := ai.ToolCall{
		ID:       "call_1",
		Function: ai.ToolCallFunc{Name: "delete_everything", Arguments: `{}`},
	}
	fake := &fakeChat{chatResults: []*ai.ChatResult{{ToolCalls: []ai.ToolCall{toolCall}}}}
	research := NewResearch(fake, ai.ChatConfig{}, &fakeSearch{})

	_, err := research.Generate(context.Background(), "research x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

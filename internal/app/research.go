package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"contentpilot/internal/ai"
)

// researchState tracks the tool-augmented conversation:
//
//	awaitingToolDecision -> toolInvoked -> awaitingFinalAnswer -> done
//	awaitingToolDecision -> done (model answered directly)
//
// The direct transition is deliberate: a model is free to answer
// without searching, and a non-empty direct answer is a valid outcome.
type researchState int

const (
	stateAwaitingToolDecision researchState = iota
	stateToolInvoked
	stateAwaitingFinalAnswer
	stateDone
)

func (s researchState) String() string {
	switch s {
	case stateAwaitingToolDecision:
		return "awaiting tool decision"
	case stateToolInvoked:
		return "tool invoked"
	case stateAwaitingFinalAnswer:
		return "awaiting final answer"
	case stateDone:
		return "done"
	}
	return "unknown"
}

const webSearchToolName = "web_search"

var webSearchTool = ai.Tool{
	Type: "function",
	Function: ai.ToolFunction{
		Name:        webSearchToolName,
		Description: "Getting updated info from web",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The topic or question to search",
				},
			},
			"required":             []string{"query"},
			"additionalProperties": false,
		},
		Strict: true,
	},
}

// Research gathers marketing insights with an optional web-search
// round trip: the model may invoke the search tool, in which case the
// search result is replayed back for a grounded final answer.
type Research struct {
	llm    ChatClient
	cfg    ai.ChatConfig
	search SearchClient
}

func NewResearch(llm ChatClient, cfg ai.ChatConfig, search SearchClient) *Research {
	return &Research{llm: llm, cfg: cfg, search: search}
}

func (r *Research) Generate(ctx context.Context, userInput string) (string, error) {
	prompt := fmt.Sprintf(`You are a marketing research assistant.

Given the product or service description below, identify up to 5 relevant insights to inform marketing strategy or content planning.

USER INPUT:
%s

For each insight, provide:
- Insight: [short title or key point]
- Category: [e.g., audience pain point, trending topic, competitor angle, content gap]
- Why it matters: [1-2 lines]

Return in plain text, formatted like this:

Insight: [title]
Category: [type]
Why it matters: [explanation]`, userInput)

	state := stateAwaitingToolDecision
	messages := []ai.ChatMessage{{Role: "user", Content: prompt}}

	result, err := r.llm.Chat(ctx, r.cfg, messages, ai.ChatOptions{Tools: []ai.Tool{webSearchTool}})
	if err != nil {
		return "", fmt.Errorf("research (%s): model call failed: %w", state, err)
	}

	if len(result.ToolCalls) == 0 {
		// Direct-answer terminal transition.
		if strings.TrimSpace(result.Content) == "" {
			return "", fmt.Errorf("research (%s): model neither invoked %s nor answered", state, webSearchToolName)
		}
		return result.Content, nil
	}

	call := result.ToolCalls[0]
	if call.Function.Name != webSearchToolName {
		return "", fmt.Errorf("research (%s): model invoked unknown tool %q", state, call.Function.Name)
	}
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return "", fmt.Errorf("research (%s): decode tool arguments failed: %w", state, err)
	}

	state = stateToolInvoked
	searchResult, err := r.search.Search(ctx, args.Query)
	if err != nil {
		return "", fmt.Errorf("research (%s): web search failed: %w", state, err)
	}

	// Replay the full conversation: the original prompt, the model's
	// invocation record, and the tool result.
	state = stateAwaitingFinalAnswer
	messages = append(messages,
		ai.ChatMessage{Role: "assistant", ToolCalls: result.ToolCalls},
		ai.ChatMessage{
			Role:       "tool",
			ToolCallID: call.ID,
			Name:       call.Function.Name,
			Content:    searchResult,
		},
	)

	final, err := r.llm.Chat(ctx, r.cfg, messages, ai.ChatOptions{})
	if err != nil {
		return "", fmt.Errorf("research (%s): final call failed: %w", state, err)
	}
	if strings.TrimSpace(final.Content) == "" {
		return "", fmt.Errorf("research (%s): %w", state, ErrEmptyResponse)
	}
	return final.Content, nil
}

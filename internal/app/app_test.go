package app

import (
	"context"

	"contentpilot/internal/ai"
)

// Shared fakes for the router, responder and pipeline tests. Scripted
// replies are consumed in order; every call is recorded for
// assertions.

type chatCall struct {
	messages []ai.ChatMessage
	opts     ai.ChatOptions
}

type fakeChat struct {
	completions []string
	completeErr error
	chatResults []*ai.ChatResult
	chatErr     error

	completeCalls [][]ai.ChatMessage
	chatCalls     []chatCall
}

func (f *fakeChat) Complete(_ context.Context, _ ai.ChatConfig, messages []ai.ChatMessage) (string, error) {
	f.completeCalls = append(f.completeCalls, messages)
	if f.completeErr != nil {
		return "", f.completeErr
	}
	if len(f.completions) == 0 {
		return "", nil
	}
	out := f.completions[0]
	f.completions = f.completions[1:]
	return out, nil
}

func (f *fakeChat) Chat(_ context.Context, _ ai.ChatConfig, messages []ai.ChatMessage, opts ai.ChatOptions) (*ai.ChatResult, error) {
	f.chatCalls = append(f.chatCalls, chatCall{messages: messages, opts: opts})
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	if len(f.chatResults) == 0 {
		return &ai.ChatResult{}, nil
	}
	out := f.chatResults[0]
	f.chatResults = f.chatResults[1:]
	return out, nil
}

type fakeEmbedder struct {
	vec   []float32
	err   error
	calls []string
}

func (f *fakeEmbedder) Embed(_ context.Context, _ ai.EmbeddingConfig, text string) ([]float32, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.vec, nil
}

type fakeSearch struct {
	result  string
	err     error
	queries []string
}

func (f *fakeSearch) Search(_ context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return "", f.err
	}
	return f.result, nil
}

// Package app holds the request pipeline: routing a free-text request
// to one of four responders, document ingestion and retrieval, and
// conversation-history bookkeeping.
package app

import (
	"context"
	"errors"

	"contentpilot/internal/ai"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// ChatClient is the language-model dependency of routers and
// responders. Satisfied by *ai.OpenAICompatibleClient.
type ChatClient interface {
	Complete(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage) (string, error)
	Chat(ctx context.Context, cfg ai.ChatConfig, messages []ai.ChatMessage, opts ai.ChatOptions) (*ai.ChatResult, error)
}

// EmbeddingClient converts text into a fixed-dimension vector.
type EmbeddingClient interface {
	Embed(ctx context.Context, cfg ai.EmbeddingConfig, text string) ([]float32, error)
}

// SearchClient runs an external web search and returns the result
// snippets as one string. Satisfied by *ai.TavilyClient.
type SearchClient interface {
	Search(ctx context.Context, query string) (string, error)
}

// DocumentRef identifies an uploaded document selected for retrieval.
// The Name is the display name; storage identifiers are derived from
// it on every use.
type DocumentRef struct {
	Name string `json:"name"`
}

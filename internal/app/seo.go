package app

import (
	"context"
	"fmt"
	"strings"

	"contentpilot/internal/ai"
)

// Seo answers SEO requests with a single bounded-scope call.
type Seo struct {
	llm ChatClient
	cfg ai.ChatConfig
}

func NewSeo(llm ChatClient, cfg ai.ChatConfig) *Seo {
	return &Seo{llm: llm, cfg: cfg}
}

func (s *Seo) Generate(ctx context.Context, userInput string) (string, error) {
	prompt := fmt.Sprintf(`You are an expert SEO assistant.

Task: %s

Provide a concise, actionable SEO response. Focus your answer on:
- Primary keyword(s) and search intent
- Top 5 keyword suggestions OR a step-by-step strategy (as needed)
- One practical recommendation to improve SEO for the query
- 5 suitable hashtags relevant to the topic

Use a clear bullet or numbered list. Do not add extra explanations or sections.`, userInput)

	out, err := s.llm.Complete(ctx, s.cfg, []ai.ChatMessage{
		{Role: "system", Content: "You are a SEO specialist. Create a comprehensive SEO plan based on the user's requirements."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("seo generation failed: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

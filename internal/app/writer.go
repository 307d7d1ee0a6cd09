package app

import (
	"context"
	"fmt"
	"strings"

	"contentpilot/internal/ai"
)

// RagWriter writes a post, grounded in retrieved document context when
// any documents are attached and retrieval produced something. The
// grounded and ungrounded paths use distinct prompt templates; the
// grounded one is never issued with an empty context block.
type RagWriter struct {
	llm       ChatClient
	cfg       ai.ChatConfig
	retriever *Retriever
}

func NewRagWriter(llm ChatClient, cfg ai.ChatConfig, retriever *Retriever) *RagWriter {
	return &RagWriter{llm: llm, cfg: cfg, retriever: retriever}
}

func (w *RagWriter) Generate(ctx context.Context, userInput string, refs []DocumentRef) (string, error) {
	if len(refs) > 0 {
		if contextBlock := w.retriever.Retrieve(ctx, userInput, refs); contextBlock != "" {
			return w.generateGrounded(ctx, userInput, contextBlock)
		}
	}
	return w.generatePlain(ctx, userInput)
}

func (w *RagWriter) generateGrounded(ctx context.Context, userInput, contextBlock string) (string, error) {
	prompt := fmt.Sprintf(`You are an expert content writer. Using the following reference material: %s

Write a compelling post about: %s

**Guidelines:**
- Leverage insights from the provided context
- Create engaging, original content
- Use a conversational yet professional tone
- Include relevant examples from the context
- Structure with clear headings and formatting
- Deliver actionable value to readers

Write a complete, ready-to-publish post.`, contextBlock, userInput)

	out, err := w.llm.Complete(ctx, w.cfg, []ai.ChatMessage{{Role: "user", Content: prompt}})
	if err != nil {
		return "", fmt.Errorf("grounded writing failed: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

func (w *RagWriter) generatePlain(ctx context.Context, userInput string) (string, error) {
	prompt := fmt.Sprintf(`You are an expert content writer who creates engaging, high-quality posts on any topic.

**Your Task:** Write a compelling post about: %s

**Writing Guidelines:**
- Create original, engaging content that captures the reader's attention
- Use a conversational yet professional tone
- Include actionable insights when relevant
- Structure with clear headings and bullet points for readability
- Add relevant examples or case studies if applicable
- Keep content informative and value-driven
- Optimize for engagement with compelling hooks and conclusions

**Output:** Provide a complete, ready-to-publish post that delivers real value to readers.`, userInput)

	out, err := w.llm.Complete(ctx, w.cfg, []ai.ChatMessage{{Role: "user", Content: prompt}})
	if err != nil {
		return "", fmt.Errorf("writing failed: %w", err)
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}

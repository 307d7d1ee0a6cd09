package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode"

	"contentpilot/internal/ai"
)

// Agent is the closed set of responder categories a request can be
// routed to.
type Agent string

const (
	AgentPlanner   Agent = "PlannerAgent"
	AgentRagWriter Agent = "RagWriterAgent"
	AgentSeo       Agent = "SeoAgent"
	AgentResearch  Agent = "ResearchAgent"
)

// ParseAgent translates a raw model label into the closed set. This is
// the single point where model free text becomes a typed decision;
// anything unrecognized sends the caller to the keyword fallback.
func ParseAgent(raw string) (Agent, bool) {
	switch strings.TrimSpace(raw) {
	case string(AgentPlanner):
		return AgentPlanner, true
	case string(AgentRagWriter):
		return AgentRagWriter, true
	case string(AgentSeo):
		return AgentSeo, true
	case string(AgentResearch):
		return AgentResearch, true
	}
	return "", false
}

const routingPrompt = `You are a strict routing assistant.

GOAL: Given the raw user prompt, select EXACTLY ONE best-matching agent from the fixed list below.

AVAILABLE AGENTS (DO NOT RENAME, DO NOT ADD):
 - PlannerAgent     (For planning, schedules, calendars, content plans, timelines)
 - RagWriterAgent   (For writing, drafting, content generation)
 - SeoAgent         (For SEO optimization, keyword strategy, SERP/ranking related questions)
 - ResearchAgent    (For researching, looking up, fact finding, gathering information)

IMPORTANT:
- Focus on what the user wants to DO (the action or intention), not just the keywords or topics.
- If the prompt asks to PLAN something, always choose PlannerAgent, even if other agent names or their topics are mentioned.
- Do NOT select RagWriterAgent unless the user clearly asks you to WRITE, GENERATE, or DRAFT content, or if the main action is writing, not planning.
- DO NOT select an agent based solely on the mention of its name or related topic.
- Only respond with the agent name from the list above. NO extra text, NO explanations.

EXAMPLES:
1. User: "Plan 3 days of content about widgets"  -> PlannerAgent
2. User: "Write a blog post about widgets"       -> RagWriterAgent
3. User: "Best keywords for a travel blog"       -> SeoAgent
4. User: "Research top AI tools in 2024"         -> ResearchAgent

User prompt: %s`

// Router classifies a request into exactly one Agent: a constrained
// model call first, a deterministic keyword scan when the model is
// unavailable or answers outside the label set.
type Router struct {
	llm ChatClient
	cfg ai.ChatConfig
}

func NewRouter(llm ChatClient, cfg ai.ChatConfig) *Router {
	return &Router{llm: llm, cfg: cfg}
}

// Route is total: it always returns a member of the closed set.
func (r *Router) Route(ctx context.Context, userInput string) Agent {
	temperature := 0.0
	result, err := r.llm.Chat(ctx, r.cfg,
		[]ai.ChatMessage{{Role: "user", Content: fmt.Sprintf(routingPrompt, userInput)}},
		ai.ChatOptions{Temperature: &temperature, MaxTokens: 10},
	)
	if err != nil {
		log.Printf("router: model call failed, using keyword fallback: %v", err)
		return keywordRoute(userInput)
	}

	agent, ok := ParseAgent(result.Content)
	if !ok {
		log.Printf("router: model answered outside the label set (%q), using keyword fallback", result.Content)
		return keywordRoute(userInput)
	}
	return agent
}

// Keyword lists scanned in priority order. "content" is deliberately
// absent from the writing list: planning requests routinely mention
// content ("plan 3 days of content") and must still reach the planner.
var (
	writingWords  = []string{"write", "draft", "copy", "post", "tweet", "rewrite", "improve"}
	planningWords = []string{"plan", "calendar", "schedule", "campaign", "strategy", "days"}
	seoWords      = []string{"seo", "keyword", "search", "ranking", "meta", "title", "description"}
	researchWords = []string{"research", "trend", "competitor", "topic", "insight", "data"}
)

// keywordRoute is the pure, total fallback. Writing verbs win over
// planning words, which win over SEO, which win over research; the
// default is research. Matching is by token prefix, not substring, so
// "research" never trips the SEO word "search".
func keywordRoute(userInput string) Agent {
	tokens := strings.FieldsFunc(strings.ToLower(userInput), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	switch {
	case matchesAny(tokens, writingWords):
		return AgentRagWriter
	case matchesAny(tokens, planningWords):
		return AgentPlanner
	case matchesAny(tokens, seoWords):
		return AgentSeo
	case matchesAny(tokens, researchWords):
		return AgentResearch
	default:
		return AgentResearch
	}
}

func matchesAny(tokens, words []string) bool {
	for _, tok := range tokens {
		for _, w := range words {
			if strings.HasPrefix(tok, w) {
				return true
			}
		}
	}
	return false
}

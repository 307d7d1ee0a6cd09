package app

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"contentpilot/internal/ai"
)

const plannerTemplate = `Day 1:
- [Topic 1]: [Brief description]
- [Topic 2]: [Brief description]
- [Topic 3]: [Brief description]

Day 2:
- [Topic 1]: [Brief description]
- [Topic 2]: [Brief description]
- [Topic 3]: [Brief description]

[Add more days only if the user specifically asks for more.]`

// Planner produces a day-by-day topic outline in two model passes: a
// draft, then a critique-and-rewrite over the draft. Only the second
// pass's text is returned.
type Planner struct {
	llm         ChatClient
	cfg         ai.ChatConfig
	defaultDays int
}

func NewPlanner(llm ChatClient, cfg ai.ChatConfig, defaultDays int) *Planner {
	if defaultDays <= 0 {
		defaultDays = 2
	}
	return &Planner{llm: llm, cfg: cfg, defaultDays: defaultDays}
}

var daysPattern = regexp.MustCompile(`(\d+)[\s-]*day`)

// PlanDays returns the day count the request asks for, or the default
// when none is stated.
func (p *Planner) PlanDays(userInput string) int {
	m := daysPattern.FindStringSubmatch(strings.ToLower(userInput))
	if m == nil {
		return p.defaultDays
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return p.defaultDays
	}
	return n
}

func (p *Planner) Generate(ctx context.Context, userInput string) (string, error) {
	days := p.PlanDays(userInput)

	draftPrompt := fmt.Sprintf(`You are a strategic content planning specialist. Based on the user's requirements, list only day-wise content topics with a brief description for each.
- Cover exactly %d day(s).
- For each day, provide a maximum of 3 topics.
- For each topic, include a brief description.
- Do not include any other sections (no schedule, KPIs, audience, etc.).

User Request: %s

Format your response STRICTLY as follows:
%s`, days, userInput, plannerTemplate)

	draft, err := p.llm.Complete(ctx, p.cfg, []ai.ChatMessage{
		{Role: "system", Content: "You are a strategic content planning specialist. Create a comprehensive content plan based on the user's requirements."},
		{Role: "user", Content: draftPrompt},
	})
	if err != nil {
		return "", fmt.Errorf("planner draft failed: %w", err)
	}

	criticPrompt := fmt.Sprintf(`You are a critic and clarity expert.

Review the following content plan and improve its clarity, focus, and usefulness.
Make sure each day's entry is:
- Clear and easy to understand
- Free from jargon or vague language
- Aligned with the product's core value
- Distinct from other days (no repetition)

If a day's theme or objective is unclear, rewrite it.
If the message is too generic, make it more specific and value-driven.
Keep the output structure unchanged.

CONTENT PLAN:
%s
------------------------------------------------------------
Format your response STRICTLY as follows:
%s`, draft, plannerTemplate)

	final, err := p.llm.Complete(ctx, p.cfg, []ai.ChatMessage{
		{Role: "system", Content: "You are a critic and clarity expert. Review the following content plan and improve its clarity, focus, and usefulness."},
		{Role: "user", Content: criticPrompt},
	})
	if err != nil {
		return "", fmt.Errorf("planner critique failed: %w", err)
	}
	if strings.TrimSpace(final) == "" {
		return "", ErrEmptyResponse
	}
	return final, nil
}

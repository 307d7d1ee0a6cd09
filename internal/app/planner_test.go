package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentpilot/internal/ai"
)

func TestPlanDays(t *testing.T) {
	planner := NewPlanner(&fakeChat{}, ai.ChatConfig{}, 2)

	tests := []struct {
		input string
		want  int
	}{
		{"Plan 3 days of content about our app", 3},
		{"give me a 7-day calendar", 7},
		{"A 5 Day campaign please", 5},
		{"plan content for our launch", 2},
		{"0 days of content", 2},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, planner.PlanDays(tc.input), tc.input)
	}
}

func TestPlannerTwoPass(t *testing.T) {
	fake := &fakeChat{completions: []string{"THE DRAFT PLAN", "THE FINAL PLAN"}}
	planner := NewPlanner(fake, ai.ChatConfig{}, 2)

	got, err := planner.Generate(context.Background(), "Plan 3 days of content about widgets")
	require.NoError(t, err)
	assert.Equal(t, "THE FINAL PLAN", got)

	require.Len(t, fake.completeCalls, 2)
	draftPrompt := fake.completeCalls[0][1].Content
	assert.Contains(t, draftPrompt, "Cover exactly 3 day(s)")
	assert.Contains(t, draftPrompt, "Plan 3 days of content about widgets")

	// The critique pass sees the draft verbatim.
	criticPrompt := fake.completeCalls[1][1].Content
	assert.Contains(t, criticPrompt, "THE DRAFT PLAN")
}

func TestPlannerDraftFailure(t *testing.T) {
	fake := &fakeChat{completeErr: errors.New("model down")}
	planner := NewPlanner(fake, ai.ChatConfig{}, 2)

	_, err := planner.Generate(context.Background(), "plan something")
	require.Error(t, err)
	assert.Len(t, fake.completeCalls, 1)
}

func TestPlannerEmptyFinal(t *testing.T) {
	fake := &fakeChat{completions: []string{"draft", "   "}}
	planner := NewPlanner(fake, ai.ChatConfig{}, 2)

	_, err := planner.Generate(context.Background(), "plan something")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

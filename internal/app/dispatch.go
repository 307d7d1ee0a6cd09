package app

import (
	"context"
	"fmt"
)

// Dispatcher routes a classified request to the matching responder.
type Dispatcher struct {
	planner   *Planner
	ragWriter *RagWriter
	seo       *Seo
	research  *Research
}

func NewDispatcher(planner *Planner, ragWriter *RagWriter, seo *Seo, research *Research) *Dispatcher {
	return &Dispatcher{
		planner:   planner,
		ragWriter: ragWriter,
		seo:       seo,
		research:  research,
	}
}

// Dispatch invokes the responder selected by agent. Document
// references only affect the RAG writer; the other responders ignore
// them.
func (d *Dispatcher) Dispatch(ctx context.Context, agent Agent, userInput string, refs []DocumentRef) (string, error) {
	switch agent {
	case AgentPlanner:
		return d.planner.Generate(ctx, userInput)
	case AgentRagWriter:
		return d.ragWriter.Generate(ctx, userInput, refs)
	case AgentSeo:
		return d.seo.Generate(ctx, userInput)
	case AgentResearch:
		return d.research.Generate(ctx, userInput)
	}
	return "", fmt.Errorf("dispatch: unknown agent %q", agent)
}

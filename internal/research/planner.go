package research

import (
	"context"

	"github.com/ppiankov/briefly/internal/llm"
	"github.com/ppiankov/briefly/internal/model"
)

// Planner turns a research question into a structured plan
type Planner struct {
	llm llm.Provider
}

// NewPlanner creates a planner backed by the given provider
func NewPlanner(provider llm.Provider) *Planner {
	return &Planner{llm: provider}
}

// planPayload is the shape expected back from the model. Pointer fields
// distinguish absent from zero so defaults only fill real gaps.
type planPayload struct {
	SubQuestions        []model.SubQuestion        `json:"sub_questions"`
	SuccessCriteria     []string                   `json:"success_criteria"`
	MaxIterations       *int                       `json:"max_iterations"`
	ConfidenceThreshold *float64                   `json:"confidence_threshold"`
	Constraints         *model.EvidenceConstraints `json:"evidence_constraints"`
}

// Plan calls the model once and parses its response into a Plan. A
// malformed response, a response without sub-questions, or a failed
// call all degrade to a single-sub-question plan equal to the original
// question; an empty plan would deadlock the loop, so the fallback is
// mandatory. The model call is never retried.
func (p *Planner) Plan(ctx context.Context, question, history string, seed *model.EvidenceConstraints) *model.Plan {
	plan := &model.Plan{
		SubQuestions:        []model.SubQuestion{{Text: question, Priority: 1}},
		MaxIterations:       model.DefaultMaxIterations,
		ConfidenceThreshold: model.DefaultConfidenceThreshold,
		Constraints:         seed,
	}

	response, err := p.llm.Complete(ctx, fillPrompt(planPrompt, map[string]string{
		"question": question,
		"history":  history,
	}))
	if err != nil {
		return plan
	}

	payload, ok := decodeJSON[planPayload](response)
	if !ok || len(payload.SubQuestions) == 0 {
		return plan
	}

	plan.SubQuestions = payload.SubQuestions
	plan.SuccessCriteria = payload.SuccessCriteria
	if payload.MaxIterations != nil && *payload.MaxIterations >= 1 {
		plan.MaxIterations = *payload.MaxIterations
	}
	if payload.ConfidenceThreshold != nil {
		plan.ConfidenceThreshold = *payload.ConfidenceThreshold
	}
	if payload.Constraints != nil {
		plan.Constraints = payload.Constraints
	}
	return plan
}

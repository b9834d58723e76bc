package research

import (
	"context"
	"errors"
	"testing"

	"github.com/ppiankov/briefly/internal/model"
)

// stubLLM scripts completions for tests across this package
type stubLLM struct {
	complete func(prompt string) (string, error)
	calls    int
}

func (s *stubLLM) Name() string { return "stub" }

func (s *stubLLM) Complete(_ context.Context, prompt string) (string, error) {
	s.calls++
	if s.complete == nil {
		return "", errors.New("no completion scripted")
	}
	return s.complete(prompt)
}

func (s *stubLLM) IsAvailable(_ context.Context) bool { return true }

func errLLM() *stubLLM {
	return &stubLLM{complete: func(string) (string, error) {
		return "", errors.New("provider unavailable")
	}}
}

func fixedLLM(response string) *stubLLM {
	return &stubLLM{complete: func(string) (string, error) {
		return response, nil
	}}
}

func TestPlan_FallbackOnProviderError(t *testing.T) {
	seed := &model.EvidenceConstraints{SourceTypes: []model.SourceType{model.SourcePeerReviewed}}
	planner := NewPlanner(errLLM())

	plan := planner.Plan(context.Background(), "does caffeine affect sleep", "", seed)

	if len(plan.SubQuestions) != 1 || plan.SubQuestions[0].Text != "does caffeine affect sleep" {
		t.Fatalf("Expected single fallback sub-question, got %+v", plan.SubQuestions)
	}
	if plan.MaxIterations != model.DefaultMaxIterations {
		t.Errorf("Expected default max iterations %d, got %d", model.DefaultMaxIterations, plan.MaxIterations)
	}
	if plan.ConfidenceThreshold != model.DefaultConfidenceThreshold {
		t.Errorf("Expected default confidence threshold, got %v", plan.ConfidenceThreshold)
	}
	if plan.Constraints != seed {
		t.Errorf("Expected seed constraints carried onto fallback plan")
	}
}

func TestPlan_FallbackOnGarbageOutput(t *testing.T) {
	planner := NewPlanner(fixedLLM("I cannot answer in JSON, sorry."))

	plan := planner.Plan(context.Background(), "question", "", nil)

	if len(plan.SubQuestions) != 1 || plan.SubQuestions[0].Text != "question" {
		t.Errorf("Expected fallback plan on unparseable output, got %+v", plan.SubQuestions)
	}
}

func TestPlan_FallbackOnEmptySubQuestions(t *testing.T) {
	planner := NewPlanner(fixedLLM(`{"sub_questions": [], "max_iterations": 5}`))

	plan := planner.Plan(context.Background(), "question", "", nil)

	if len(plan.SubQuestions) != 1 {
		t.Fatalf("Expected fallback sub-question, got %d", len(plan.SubQuestions))
	}
	if plan.MaxIterations != model.DefaultMaxIterations {
		t.Errorf("Empty plan must fall back entirely, got max iterations %d", plan.MaxIterations)
	}
}

func TestPlan_ParsesPayload(t *testing.T) {
	planner := NewPlanner(fixedLLM("```json\n" + `{
		"sub_questions": [
			{"text": "mechanism", "priority": 2, "tactics": ["meta-analysis"]},
			{"text": "dose response", "priority": 1}
		],
		"success_criteria": ["quantified effect size"],
		"max_iterations": 3,
		"confidence_threshold": 0.8,
		"evidence_constraints": {"source_types": ["peer_reviewed"]}
	}` + "\n```"))

	plan := planner.Plan(context.Background(), "question", "", nil)

	if len(plan.SubQuestions) != 2 {
		t.Fatalf("Expected 2 sub-questions, got %d", len(plan.SubQuestions))
	}
	if plan.MaxIterations != 3 || plan.ConfidenceThreshold != 0.8 {
		t.Errorf("Expected parsed loop parameters, got %d / %v", plan.MaxIterations, plan.ConfidenceThreshold)
	}
	if plan.Constraints == nil || len(plan.Constraints.SourceTypes) != 1 {
		t.Errorf("Expected parsed constraints, got %+v", plan.Constraints)
	}

	ordered := plan.OrderedSubQuestions()
	if ordered[0].Text != "dose response" {
		t.Errorf("Expected priority ordering, got %q first", ordered[0].Text)
	}
}

func TestPlan_RejectsNonPositiveMaxIterations(t *testing.T) {
	planner := NewPlanner(fixedLLM(`{"sub_questions": [{"text": "q", "priority": 1}], "max_iterations": 0}`))

	plan := planner.Plan(context.Background(), "question", "", nil)

	if plan.MaxIterations != model.DefaultMaxIterations {
		t.Errorf("Non-positive max_iterations must keep the default, got %d", plan.MaxIterations)
	}
}

func TestPlan_PayloadConstraintsOverrideSeed(t *testing.T) {
	seed := &model.EvidenceConstraints{SourceTypes: []model.SourceType{model.SourceBlog}}
	planner := NewPlanner(fixedLLM(`{
		"sub_questions": [{"text": "q", "priority": 1}],
		"evidence_constraints": {"source_types": ["preprint"]}
	}`))

	plan := planner.Plan(context.Background(), "question", "", seed)

	if plan.Constraints == nil || plan.Constraints.SourceTypes[0] != model.SourcePreprint {
		t.Errorf("Expected model constraints to win over seed, got %+v", plan.Constraints)
	}
}

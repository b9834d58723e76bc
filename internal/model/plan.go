package model

import "sort"

// SubQuestion is one decomposed piece of the research question
type SubQuestion struct {
	Text          string   `json:"text"`
	Priority      int      `json:"priority"`                // Ascending = executed first
	Tactics       []string `json:"tactics,omitempty"`       // Query-modifier strings
	QueryVariants []string `json:"query_variants,omitempty"` // Explicit queries, override generation
}

// Plan is the structured research plan produced once per run.
// It is immutable after creation; constraint refinements go through
// MergeConstraints and never write back into the plan.
type Plan struct {
	SubQuestions        []SubQuestion        `json:"sub_questions"`
	SuccessCriteria     []string             `json:"success_criteria,omitempty"`
	MaxIterations       int                  `json:"max_iterations"`
	ConfidenceThreshold float64              `json:"confidence_threshold"`
	Constraints         *EvidenceConstraints `json:"evidence_constraints,omitempty"`
}

// Default plan parameters applied when the planner's model output omits them.
const (
	DefaultMaxIterations       = 2
	DefaultConfidenceThreshold = 0.65
)

// OrderedSubQuestions returns the sub-questions sorted by ascending
// priority. The sort is stable so equal priorities keep plan order.
func (p *Plan) OrderedSubQuestions() []SubQuestion {
	ordered := make([]SubQuestion, len(p.SubQuestions))
	copy(ordered, p.SubQuestions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})
	return ordered
}

// Notes maps a sub-question's text to the evidence gathered for it so far.
// It is the single mutable aggregate carried across loop iterations.
type Notes map[string][]Evidence

// Merge appends extra evidence under key and re-deduplicates that entry,
// preserving the no-duplicate-URL invariant.
func (n Notes) Merge(key string, extra []Evidence) {
	n[key] = Dedupe(append(n[key], extra...))
}

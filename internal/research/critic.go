package research

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ppiankov/briefly/internal/llm"
	"github.com/ppiankov/briefly/internal/model"
)

// Feedback is what the critic produces from a draft briefing: follow-up
// queries per sub-question and optionally inferred constraints.
type Feedback struct {
	FollowUpQueries map[string][]string  `json:"follow_up_queries"`
	Constraints     *InferredConstraints `json:"evidence_constraints"`
}

// InferredConstraints carries a global constraint override plus
// per-sub-question refinements.
type InferredConstraints struct {
	Global        *model.EvidenceConstraints            `json:"global"`
	BySubQuestion map[string]*model.EvidenceConstraints `json:"by_sub_question"`
}

// HasFollowUps reports whether any sub-question has pending queries
func (f *Feedback) HasFollowUps() bool {
	for _, queries := range f.FollowUpQueries {
		if len(queries) > 0 {
			return true
		}
	}
	return false
}

// Critic reviews a draft briefing and proposes revision work
type Critic struct {
	llm llm.Provider
}

// NewCritic creates a critic backed by the given provider
func NewCritic(provider llm.Provider) *Critic {
	return &Critic{llm: provider}
}

// Reflect summarizes the briefing for the model and parses its
// feedback. A failed call or unparseable output yields empty feedback,
// which reads as "stop revising".
func (c *Critic) Reflect(ctx context.Context, plan *model.Plan, briefing *model.Briefing) *Feedback {
	empty := &Feedback{}

	response, err := c.llm.Complete(ctx, fillPrompt(criticPrompt, map[string]string{
		"sub_questions": joinSubQuestions(plan.SubQuestions),
		"overview":      briefing.Overview,
		"findings":      joinClaims(briefing.Findings),
		"uncertainties": strings.Join(briefing.Uncertainties, "; "),
		"sources":       joinSourceURLs(briefing.Sources),
		"constraints":   renderConstraints(plan.Constraints),
	}))
	if err != nil {
		return empty
	}

	feedback, ok := decodeJSON[Feedback](response)
	if !ok {
		return empty
	}
	return feedback
}

func joinSubQuestions(subs []model.SubQuestion) string {
	texts := make([]string, len(subs))
	for i, sub := range subs {
		texts[i] = sub.Text
	}
	return strings.Join(texts, "; ")
}

func joinClaims(findings []model.Finding) string {
	texts := make([]string, len(findings))
	for i, f := range findings {
		texts[i] = f.Claim.Text
	}
	return strings.Join(texts, "; ")
}

func joinSourceURLs(sources []model.Evidence) string {
	urls := make([]string, len(sources))
	for i, ev := range sources {
		urls[i] = ev.URL
	}
	return strings.Join(urls, "; ")
}

func renderConstraints(c *model.EvidenceConstraints) string {
	if c == nil {
		return "(none)"
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return "(none)"
	}
	return string(raw)
}

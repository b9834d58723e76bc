package research

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/briefly/internal/llm"
	"github.com/ppiankov/briefly/internal/model"
)

// Synthesizer turns gathered notes into a Briefing
type Synthesizer struct {
	llm llm.Provider
}

// NewSynthesizer creates a synthesizer backed by the given provider
func NewSynthesizer(provider llm.Provider) *Synthesizer {
	return &Synthesizer{llm: provider}
}

// Synthesis defaults when the model's output is unusable
const (
	defaultClaimText  = "Insufficient evidence."
	defaultConfidence = 0.3
	supportLimit      = 5
)

type claimPayload struct {
	Claim       string   `json:"claim"`
	Uncertainty string   `json:"uncertainty"`
	Confidence  *float64 `json:"confidence"`
}

// Synthesize rebuilds the Briefing in full from the current notes. One
// model call per sub-question over its top-scored evidence; unusable
// output degrades to the default claim, never an error.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, plan *model.Plan, notes model.Notes) *model.Briefing {
	var findings []model.Finding
	var sources []model.Evidence
	var uncertainties []string

	for _, sub := range plan.SubQuestions {
		support := topByScore(notes[sub.Text], supportLimit)
		sources = append(sources, support...)

		claim := s.synthesizeClaim(ctx, sub.Text, support)
		findings = append(findings, model.Finding{SubQuestion: sub.Text, Claim: claim})
		if claim.Uncertainty != "" {
			uncertainties = append(uncertainties, fmt.Sprintf("%s: %s", sub.Text, claim.Uncertainty))
		}
	}

	return &model.Briefing{
		Title:         "Briefing: " + question,
		Overview:      "This briefing addresses: " + question,
		Findings:      findings,
		Uncertainties: uncertainties,
		Sources:       model.Dedupe(sources),
		Metrics:       model.ComputeMetrics(findings, plan.ConfidenceThreshold),
	}
}

// synthesizeClaim asks the model for one claim over the evidence set
func (s *Synthesizer) synthesizeClaim(ctx context.Context, subQuestion string, support []model.Evidence) model.Claim {
	claim := model.Claim{
		Text:       defaultClaimText,
		Support:    support,
		Confidence: defaultConfidence,
	}

	response, err := s.llm.Complete(ctx, fillPrompt(synthesisPrompt, map[string]string{
		"sub_question": subQuestion,
		"evidence":     renderEvidencePayload(support),
	}))
	if err != nil {
		return claim
	}

	payload, ok := decodeJSON[claimPayload](response)
	if !ok {
		return claim
	}

	if payload.Claim != "" {
		claim.Text = payload.Claim
	}
	claim.Uncertainty = payload.Uncertainty
	if payload.Confidence != nil {
		claim.Confidence = *payload.Confidence
	}
	return claim
}

// topByScore returns up to limit items sorted by score descending.
// The sort is stable so equal scores keep gather order.
func topByScore(items []model.Evidence, limit int) []model.Evidence {
	sorted := make([]model.Evidence, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// renderEvidencePayload formats evidence for the synthesis prompt
func renderEvidencePayload(items []model.Evidence) string {
	if len(items) == 0 {
		return "(no evidence gathered)"
	}
	var sb strings.Builder
	for _, ev := range items {
		fmt.Fprintf(&sb, "- url: %s\n  title: %s\n  snippet: %s\n", ev.URL, ev.Title, ev.Snippet)
	}
	return sb.String()
}

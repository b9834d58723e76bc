package research

import (
	"strings"
	"testing"

	"github.com/ppiankov/briefly/internal/model"
)

func renderedBriefing() *model.Briefing {
	ev := model.Evidence{
		URL:        "https://example.org/a",
		Title:      "Example Study",
		Snippet:    "key excerpt",
		SourceType: model.SourcePeerReviewed,
	}
	return &model.Briefing{
		Title:    "Briefing: q",
		Overview: "This briefing addresses: q",
		Findings: []model.Finding{
			{SubQuestion: "q", Claim: model.Claim{
				Text:        "Caffeine delays sleep onset.",
				Support:     []model.Evidence{ev},
				Uncertainty: "dose unclear",
				Confidence:  0.82,
			}},
		},
		Uncertainties: []string{"q: dose unclear"},
		Sources:       []model.Evidence{ev, ev},
		Metrics:       model.Metrics{Coverage: 1.0, AverageConfidence: 0.82},
	}
}

func TestRenderBriefing(t *testing.T) {
	out := RenderBriefing(renderedBriefing())

	for _, want := range []string{
		"Briefing: q",
		"Overview:",
		"Key Findings:",
		"- q",
		"  Claim: Caffeine delays sleep onset.",
		"  Confidence: 0.82",
		"  Uncertainty: dose unclear",
		"  - Example Study | https://example.org/a | peer_reviewed | key excerpt",
		"Sources:",
		"Metrics:",
		"- coverage: 1",
		"- average_confidence: 0.82",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Rendered briefing missing %q\n%s", want, out)
		}
	}

	if strings.Count(out, "- Example Study | https://example.org/a") != 2 {
		t.Errorf("Expected the source once under Evidence and once under Sources\n%s", out)
	}
}

func TestRenderBriefing_Deterministic(t *testing.T) {
	b := renderedBriefing()
	if RenderBriefing(b) != RenderBriefing(b) {
		t.Error("Rendering must be deterministic for a fixed briefing")
	}
}

func TestRenderBriefing_OmitsEmptySections(t *testing.T) {
	b := &model.Briefing{
		Title:    "Briefing: q",
		Overview: "This briefing addresses: q",
		Findings: []model.Finding{
			{SubQuestion: "q", Claim: model.Claim{Text: defaultClaimText, Confidence: defaultConfidence}},
		},
	}

	out := RenderBriefing(b)

	if strings.Contains(out, "Uncertainty:") {
		t.Error("Empty uncertainty must not render")
	}
	if strings.Contains(out, "Evidence:") {
		t.Error("Empty support must not render an Evidence block")
	}
}

func TestEssayVars(t *testing.T) {
	vars := essayVars("q", renderedBriefing())

	if vars["question"] != "q" {
		t.Errorf("Unexpected question %q", vars["question"])
	}
	if !strings.Contains(vars["findings"], "claim: Caffeine delays sleep onset.") {
		t.Errorf("Findings block missing claim:\n%s", vars["findings"])
	}
	if !strings.Contains(vars["sources"], "[1] Example Study | https://example.org/a | key excerpt") {
		t.Errorf("Sources block missing numbered entry:\n%s", vars["sources"])
	}
}

package research

import (
	"fmt"
	"strings"

	"github.com/ppiankov/briefly/internal/model"
)

// RenderBriefing renders the structured plain-text form of a briefing.
// Purely presentational: built only from briefing fields, no model call,
// deterministic for a given briefing.
func RenderBriefing(b *model.Briefing) string {
	lines := []string{b.Title, "", "Overview:", b.Overview, "", "Key Findings:"}

	for _, finding := range b.Findings {
		lines = append(lines, "- "+finding.SubQuestion)
		lines = append(lines, "  Claim: "+finding.Claim.Text)
		lines = append(lines, fmt.Sprintf("  Confidence: %v", finding.Claim.Confidence))
		if finding.Claim.Uncertainty != "" {
			lines = append(lines, "  Uncertainty: "+finding.Claim.Uncertainty)
		}
		if len(finding.Claim.Support) > 0 {
			lines = append(lines, "  Evidence:")
			for _, ev := range finding.Claim.Support {
				lines = append(lines, "  - "+evidenceLine(ev))
			}
		}
	}

	lines = append(lines, "", "Sources:")
	seen := make(map[string]bool)
	for _, ev := range b.Sources {
		if seen[ev.URL] {
			continue
		}
		seen[ev.URL] = true
		lines = append(lines, "- "+evidenceLine(ev))
	}

	lines = append(lines, "", "Metrics:")
	lines = append(lines, fmt.Sprintf("- coverage: %v", b.Metrics.Coverage))
	lines = append(lines, fmt.Sprintf("- average_confidence: %v", b.Metrics.AverageConfidence))

	return strings.Join(lines, "\n")
}

func evidenceLine(ev model.Evidence) string {
	return fmt.Sprintf("%s | %s | %s | %s", ev.Title, ev.URL, ev.SourceType, ev.Snippet)
}

// essayVars prepares the essay prompt inputs: findings with their
// confidence and a numbered source list for inline citation.
func essayVars(question string, b *model.Briefing) map[string]string {
	var findings strings.Builder
	for _, f := range b.Findings {
		fmt.Fprintf(&findings, "- sub_question: %s\n  claim: %s\n  confidence: %v\n", f.SubQuestion, f.Claim.Text, f.Claim.Confidence)
		if f.Claim.Uncertainty != "" {
			fmt.Fprintf(&findings, "  uncertainty: %s\n", f.Claim.Uncertainty)
		}
	}

	var sources strings.Builder
	for i, ev := range b.Sources {
		fmt.Fprintf(&sources, "[%d] %s | %s | %s\n", i+1, ev.Title, ev.URL, ev.Snippet)
	}

	return map[string]string{
		"question": question,
		"findings": findings.String(),
		"sources":  sources.String(),
	}
}

package model

// Claim is a synthesized assertion answering one sub-question
type Claim struct {
	Text        string     `json:"text"`
	Support     []Evidence `json:"support"`     // At most 5, highest score first
	Uncertainty string     `json:"uncertainty"` // Empty = none
	Confidence  float64    `json:"confidence"`
}

// Finding pairs a sub-question with its synthesized claim
type Finding struct {
	SubQuestion string `json:"sub_question"`
	Claim       Claim  `json:"claim"`
}

// Metrics summarizes briefing quality
type Metrics struct {
	Coverage          float64 `json:"coverage"`           // Fraction of findings at or above threshold
	AverageConfidence float64 `json:"average_confidence"`
}

// Briefing is the aggregate research output. It is rebuilt in full on
// every synthesis pass, never patched incrementally.
type Briefing struct {
	Title         string     `json:"title"`
	Overview      string     `json:"overview"`
	Findings      []Finding  `json:"findings"`
	Uncertainties []string   `json:"uncertainties"` // Non-empty claim uncertainties, prefixed by sub-question
	Sources       []Evidence `json:"sources"`       // Deduplicated union of all support
	Metrics       Metrics    `json:"metrics"`
}

// ComputeMetrics derives coverage and average confidence from findings.
// Both are zero when there are no findings.
func ComputeMetrics(findings []Finding, threshold float64) Metrics {
	if len(findings) == 0 {
		return Metrics{}
	}
	covered := 0
	total := 0.0
	for _, f := range findings {
		if f.Claim.Confidence >= threshold {
			covered++
		}
		total += f.Claim.Confidence
	}
	n := float64(len(findings))
	return Metrics{
		Coverage:          Round3(float64(covered) / n),
		AverageConfidence: Round3(total / n),
	}
}

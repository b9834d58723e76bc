package research

import (
	"context"
	"testing"
	"time"

	"github.com/ppiankov/briefly/internal/model"
)

func testEvidence(url string, score float64) model.Evidence {
	return model.Evidence{
		URL:        url,
		Title:      url,
		Snippet:    "snippet",
		SourceType: model.SourceOther,
		Score:      score,
		CapturedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func singleSubPlan(text string) *model.Plan {
	return &model.Plan{
		SubQuestions:        []model.SubQuestion{{Text: text, Priority: 1}},
		MaxIterations:       model.DefaultMaxIterations,
		ConfidenceThreshold: model.DefaultConfidenceThreshold,
	}
}

func TestSynthesize_DefaultsOnProviderError(t *testing.T) {
	s := NewSynthesizer(errLLM())
	notes := model.Notes{"q": {testEvidence("https://example.org/a", 0.7)}}

	briefing := s.Synthesize(context.Background(), "question", singleSubPlan("q"), notes)

	if len(briefing.Findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(briefing.Findings))
	}
	claim := briefing.Findings[0].Claim
	if claim.Text != defaultClaimText {
		t.Errorf("Expected default claim text, got %q", claim.Text)
	}
	if claim.Confidence != defaultConfidence {
		t.Errorf("Expected default confidence %v, got %v", defaultConfidence, claim.Confidence)
	}
	if len(claim.Support) != 1 {
		t.Errorf("Support must still carry the gathered evidence, got %d items", len(claim.Support))
	}
}

func TestSynthesize_ParsesClaim(t *testing.T) {
	s := NewSynthesizer(fixedLLM(`{"claim": "Caffeine delays sleep onset.", "uncertainty": "dose unclear", "confidence": 0.82}`))
	notes := model.Notes{"q": {testEvidence("https://example.org/a", 0.7)}}

	briefing := s.Synthesize(context.Background(), "question", singleSubPlan("q"), notes)

	claim := briefing.Findings[0].Claim
	if claim.Text != "Caffeine delays sleep onset." || claim.Confidence != 0.82 {
		t.Errorf("Unexpected claim: %+v", claim)
	}
	if len(briefing.Uncertainties) != 1 || briefing.Uncertainties[0] != "q: dose unclear" {
		t.Errorf("Expected prefixed uncertainty, got %v", briefing.Uncertainties)
	}
}

func TestSynthesize_BriefingShape(t *testing.T) {
	s := NewSynthesizer(fixedLLM(`{"claim": "c", "uncertainty": "", "confidence": 0.9}`))
	shared := testEvidence("https://example.org/shared", 0.8)
	notes := model.Notes{
		"q1": {shared, testEvidence("https://example.org/a", 0.5)},
		"q2": {shared},
	}
	plan := &model.Plan{
		SubQuestions: []model.SubQuestion{
			{Text: "q1", Priority: 1},
			{Text: "q2", Priority: 2},
		},
		ConfidenceThreshold: model.DefaultConfidenceThreshold,
	}

	briefing := s.Synthesize(context.Background(), "the question", plan, notes)

	if briefing.Title != "Briefing: the question" {
		t.Errorf("Unexpected title %q", briefing.Title)
	}
	if briefing.Overview != "This briefing addresses: the question" {
		t.Errorf("Unexpected overview %q", briefing.Overview)
	}
	if len(briefing.Sources) != 2 {
		t.Errorf("Sources must deduplicate by URL, got %d", len(briefing.Sources))
	}
	if briefing.Metrics.Coverage != 1.0 || briefing.Metrics.AverageConfidence != 0.9 {
		t.Errorf("Unexpected metrics %+v", briefing.Metrics)
	}
}

func TestSynthesize_NoEvidence(t *testing.T) {
	s := NewSynthesizer(fixedLLM(`{"claim": "Nothing was found.", "uncertainty": "no evidence gathered", "confidence": 0.1}`))

	briefing := s.Synthesize(context.Background(), "question", singleSubPlan("q"), model.Notes{})

	if len(briefing.Findings) != 1 {
		t.Fatalf("Expected a finding even without evidence, got %d", len(briefing.Findings))
	}
	if len(briefing.Findings[0].Claim.Support) != 0 {
		t.Errorf("Expected empty support, got %d items", len(briefing.Findings[0].Claim.Support))
	}
}

func TestTopByScore(t *testing.T) {
	items := []model.Evidence{
		testEvidence("https://example.org/1", 0.3),
		testEvidence("https://example.org/2", 0.9),
		testEvidence("https://example.org/3", 0.9),
		testEvidence("https://example.org/4", 0.5),
		testEvidence("https://example.org/5", 0.1),
		testEvidence("https://example.org/6", 0.7),
	}

	top := topByScore(items, supportLimit)

	if len(top) != supportLimit {
		t.Fatalf("Expected %d items, got %d", supportLimit, len(top))
	}
	if top[0].URL != "https://example.org/2" || top[1].URL != "https://example.org/3" {
		t.Errorf("Equal scores must keep input order, got %s then %s", top[0].URL, top[1].URL)
	}
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			t.Errorf("Scores must be non-increasing, got %v after %v", top[i].Score, top[i-1].Score)
		}
	}
	if items[0].URL != "https://example.org/1" {
		t.Errorf("Input slice must not be reordered")
	}
}

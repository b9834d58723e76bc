// Package research implements the plan/execute/synthesize/reflect/revise
// loop at the heart of briefly. External collaborators (search, fetch,
// language model, file ingestion, memory index) are black boxes behind
// small interfaces; this package owns ordering, convergence, and
// evidence quality policy.
package research

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/briefly/internal/ingest"
	"github.com/ppiankov/briefly/internal/llm"
	"github.com/ppiankov/briefly/internal/model"
)

// Mode selects the final rendering
type Mode string

const (
	ModeBriefing Mode = "briefing"
	ModeEssay    Mode = "essay"
)

// Ingester reads local files into documents
type Ingester func(paths []string) []ingest.Document

// IndexBuilder builds the long-term memory index over snippets.
// Strictly best-effort: the returned error is logged and discarded.
type IndexBuilder func(ctx context.Context, texts []string) error

// Agent runs one research question end to end
type Agent struct {
	llm         llm.Provider
	planner     *Planner
	gatherer    *Gatherer
	synthesizer *Synthesizer
	critic      *Critic
	ingester    Ingester
	buildIndex  IndexBuilder // nil disables memory indexing
	verbose     bool
	now         func() time.Time
}

// Options configures optional agent collaborators
type Options struct {
	Ingester   Ingester
	BuildIndex IndexBuilder
	Workers    int
	Verbose    bool
}

// NewAgent wires an agent from its collaborators
func NewAgent(provider llm.Provider, searcher Searcher, fetcher Fetcher, opts Options) *Agent {
	ingester := opts.Ingester
	if ingester == nil {
		ingester = ingest.Files
	}
	return &Agent{
		llm:         provider,
		planner:     NewPlanner(provider),
		gatherer:    NewGatherer(searcher, fetcher, opts.Workers, opts.Verbose),
		synthesizer: NewSynthesizer(provider),
		critic:      NewCritic(provider),
		ingester:    ingester,
		buildIndex:  opts.BuildIndex,
		verbose:     opts.Verbose,
		now:         time.Now,
	}
}

// Synthetic evidence parameters for ingested local files
const (
	localFileRelevance = 0.6
	localFileFreshness = 0.5
	localFileTrust     = 0.7
)

// Run executes the full loop for one question and returns the rendered
// result. The iteration counter bounds the loop regardless of how many
// follow-ups the critic keeps producing, so termination is guaranteed.
func (a *Agent) Run(ctx context.Context, question string, filePaths []string, constraints *model.EvidenceConstraints, mode Mode) (string, error) {
	plan := a.planner.Plan(ctx, question, "", constraints)
	if a.verbose {
		fmt.Fprintf(os.Stderr, "Planned %d sub-questions, max %d iterations\n", len(plan.SubQuestions), plan.MaxIterations)
	}

	notes := a.execute(ctx, plan, question, filePaths)

	briefing := a.synthesizer.Synthesize(ctx, question, plan, notes)
	for iteration := 1; iteration < plan.MaxIterations; iteration++ {
		feedback := a.critic.Reflect(ctx, plan, briefing)
		if !feedback.HasFollowUps() {
			break
		}
		if a.verbose {
			fmt.Fprintf(os.Stderr, "Revision %d: %d sub-questions flagged\n", iteration, len(feedback.FollowUpQueries))
		}
		a.revise(ctx, plan, notes, feedback)
		briefing = a.synthesizer.Synthesize(ctx, question, plan, notes)
	}

	if mode == ModeEssay {
		return a.essay(ctx, question, briefing), nil
	}
	return RenderBriefing(briefing), nil
}

// execute gathers initial evidence for every sub-question in priority
// order, ingests any local files under the top-level question's key,
// and kicks off the best-effort memory index.
func (a *Agent) execute(ctx context.Context, plan *model.Plan, question string, filePaths []string) model.Notes {
	notes := model.Notes{}
	for _, sub := range plan.OrderedSubQuestions() {
		evidence := a.gatherer.Gather(ctx, sub, plan.Constraints, nil)
		notes[sub.Text] = model.Dedupe(evidence)
		if a.verbose {
			fmt.Fprintf(os.Stderr, "Gathered %d evidence items for %q\n", len(notes[sub.Text]), sub.Text)
		}
	}

	if len(filePaths) > 0 {
		captured := a.now().UTC()
		var local []model.Evidence
		for _, doc := range a.ingester(filePaths) {
			local = append(local, model.NewEvidence(
				doc.Path, doc.Title, doc.Content, model.SourceLocalFile,
				localFileRelevance, localFileFreshness, localFileTrust, captured,
			))
		}
		// Local documents answer the question as a whole, not any one
		// sub-question.
		notes.Merge(question, local)
	}

	a.indexSnippets(ctx, notes)
	return notes
}

// revise re-gathers evidence for sub-questions the critic flagged,
// under constraints merged from the plan, any inferred global override,
// and any per-sub-question override. Follow-up queries bypass variant
// generation. The plan itself is never mutated.
func (a *Agent) revise(ctx context.Context, plan *model.Plan, notes model.Notes, feedback *Feedback) {
	var global *model.EvidenceConstraints
	var perSub map[string]*model.EvidenceConstraints
	if feedback.Constraints != nil {
		global = feedback.Constraints.Global
		perSub = feedback.Constraints.BySubQuestion
	}
	merged := model.MergeConstraints(plan.Constraints, global)

	for _, sub := range plan.SubQuestions {
		queries := feedback.FollowUpQueries[sub.Text]
		if len(queries) == 0 {
			continue
		}
		effective := model.MergeConstraints(merged, perSub[sub.Text])
		extra := a.gatherer.Gather(ctx, sub, effective, queries)
		notes.Merge(sub.Text, extra)
	}
}

// indexSnippets feeds all gathered snippets to the memory index.
// Failure is logged and swallowed; it must never abort the run.
func (a *Agent) indexSnippets(ctx context.Context, notes model.Notes) {
	if a.buildIndex == nil {
		return
	}
	var texts []string
	for _, items := range notes {
		for _, ev := range items {
			texts = append(texts, ev.Snippet)
		}
	}
	if err := a.buildIndex(ctx, texts); err != nil && a.verbose {
		fmt.Fprintf(os.Stderr, "Warning: memory index build failed: %v\n", err)
	}
}

// essay asks the model for prose over the briefing's findings and
// numbered sources, returned verbatim. If the call fails the structured
// rendering stands in, so the run still completes.
func (a *Agent) essay(ctx context.Context, question string, briefing *model.Briefing) string {
	response, err := a.llm.Complete(ctx, fillPrompt(essayPrompt, essayVars(question, briefing)))
	if err != nil {
		if a.verbose {
			fmt.Fprintf(os.Stderr, "Warning: essay generation failed, falling back to briefing: %v\n", err)
		}
		return RenderBriefing(briefing)
	}
	return response
}

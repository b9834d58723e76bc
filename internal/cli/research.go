package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/briefly/internal/cache"
	"github.com/ppiankov/briefly/internal/fetch"
	"github.com/ppiankov/briefly/internal/llm"
	"github.com/ppiankov/briefly/internal/memory"
	"github.com/ppiankov/briefly/internal/model"
	"github.com/ppiankov/briefly/internal/research"
	"github.com/ppiankov/briefly/internal/search"
	"github.com/spf13/cobra"
)

var (
	files          []string
	constraintsRaw string
	mode           string
	timeout        time.Duration
	userAgent      string
	maxBytes       int64
	noCache        bool
	noMemory       bool
	llmProvider    string
	llmModel       string
)

// researchCmd represents the research command
var researchCmd = &cobra.Command{
	Use:   "research <question>",
	Short: "Research a question and produce an evidence-backed briefing",
	Long: `Research plans sub-questions for the given question, gathers web and
local-file evidence for each, synthesizes claims with confidence
scores, and revises the draft until its own critique finds nothing
left to chase or the iteration budget runs out.

Example:
  briefly research "does caffeine after 2pm affect sleep quality"
  briefly research "state of solid-state batteries" --constraints '{"source_types":["peer_reviewed","preprint"]}'
  briefly research "summarize these reports" --file q1.pdf --file q2.pdf
  briefly research "history of the fft algorithm" --mode essay`,
	Args: cobra.ExactArgs(1),
	RunE: runResearch,
}

func init() {
	rootCmd.AddCommand(researchCmd)

	// Input flags
	researchCmd.Flags().StringArrayVar(&files, "file", nil, "local file to ingest as evidence (txt, csv, pdf; repeatable)")
	researchCmd.Flags().StringVar(&constraintsRaw, "constraints", "", `evidence constraints JSON, e.g. '{"source_types":["peer_reviewed"],"time_range":{"start_year":2020}}'`)
	researchCmd.Flags().StringVar(&mode, "mode", "briefing", "output mode (briefing, essay)")

	// HTTP flags
	researchCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall research timeout (raise for many sub-questions)")
	researchCmd.Flags().StringVar(&userAgent, "ua", "Briefly/0.1 (+https://github.com/ppiankov/briefly)", "HTTP User-Agent")
	researchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read per page")
	researchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the fetched-page cache")
	researchCmd.Flags().BoolVar(&noMemory, "no-memory", false, "disable the embedding memory index")

	// LLM flags
	researchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	researchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runResearch(cmd *cobra.Command, args []string) error {
	question := args[0]

	// A malformed constraints flag is a configuration error; surface it
	// before any gathering begins.
	constraints, err := model.ParseConstraints(constraintsRaw)
	if err != nil {
		return err
	}

	runMode := research.Mode(mode)
	if runMode != research.ModeBriefing && runMode != research.ModeEssay {
		return fmt.Errorf("unknown mode %q (want briefing or essay)", mode)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Researching: %s\n", question)
		fmt.Fprintf(os.Stderr, "Provider: %s\n", cfg.LLM.Provider)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintln(os.Stderr)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("configure llm: %w", err)
	}

	var pageCache cache.Cache
	if cfg.Cache.Enabled {
		pageCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
	}
	fetcher := fetch.NewFetcher(cfg.HTTP, cfg.Cache, pageCache)
	selector := search.NewSelector(cfg.Search)

	agent := research.NewAgent(provider, selector, fetcher, research.Options{
		BuildIndex: indexBuilder(cfg),
		Workers:    cfg.HTTP.Workers,
		Verbose:    verbose,
	})

	report, err := agent.Run(ctx, question, files, constraints, runMode)
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	fmt.Println(report)
	return nil
}

// buildConfig layers flags and environment over the defaults
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.Mode = mode

	cfg.Search.SerpAPIKey = os.Getenv("SERPAPI_API_KEY")
	cfg.Search.TavilyKey = os.Getenv("TAVILY_API_KEY")

	cfg.LLM.Provider = llmProvider
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return cfg, nil
}

// indexBuilder wires the embedding memory index when it can run.
// Embeddings need an OpenAI key regardless of the chat provider; without
// one the index is skipped, never substituted.
func indexBuilder(cfg *model.Config) research.IndexBuilder {
	if noMemory {
		return nil
	}
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil
	}
	embedder := memory.NewOpenAIEmbedder(apiKey, "")
	return func(ctx context.Context, texts []string) error {
		index, err := memory.Build(ctx, embedder, texts)
		if err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Indexed %d snippets\n", index.Len())
		}
		return nil
	}
}

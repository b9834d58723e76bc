package model

import "time"

// Config holds the complete runtime configuration
type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	Cache  CacheConfig  `yaml:"cache"`
	Search SearchConfig `yaml:"search"`
	LLM    LLMConfig    `yaml:"llm"`
	Output OutputConfig `yaml:"output"`
}

// HTTPConfig controls page fetching
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	MaxChars     int           `yaml:"max_chars"` // Extracted text cap handed to the model
	RatePerHost  float64       `yaml:"rate_per_host"`
	RateBurst    int           `yaml:"rate_burst"`
	Workers      int           `yaml:"workers"` // Concurrent fetches per query
}

// CacheConfig controls the fetched-page cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// SearchConfig controls search providers
type SearchConfig struct {
	MaxResults int    `yaml:"max_results"`
	SerpAPIKey string `yaml:"serpapi_key,omitempty"`
	TavilyKey  string `yaml:"tavily_key,omitempty"`
}

// LLMConfig holds language model provider settings
type LLMConfig struct {
	Provider   string `yaml:"provider"` // openai, anthropic, ollama
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key,omitempty"`
	BaseURL    string `yaml:"base_url,omitempty"`
	Timeout    int    `yaml:"timeout"` // seconds
	MaxTokens  int    `yaml:"max_tokens"`
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool   `yaml:"verbose"`
	Mode    string `yaml:"mode"` // briefing or essay
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "Briefly/0.1 (+https://github.com/ppiankov/briefly)",
			MaxBodyBytes: 2_000_000,
			MaxChars:     2000,
			RatePerHost:  1.0,
			RateBurst:    2,
			Workers:      4,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		Search: SearchConfig{
			MaxResults: 5,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Output: OutputConfig{
			Verbose: false,
			Mode:    "briefing",
		},
	}
}

package llm

import "testing"

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "someother"})
	if err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestNewProvider_OpenAIRequiresKey(t *testing.T) {
	_, err := NewProvider(Config{Provider: "openai"})
	if err == nil {
		t.Error("Expected error when API key is missing")
	}
}

func TestNewProvider_AnthropicAlias(t *testing.T) {
	p, err := NewProvider(Config{Provider: "claude", APIKey: "test-key"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Name() != "anthropic" {
		t.Errorf("Expected anthropic, got %s", p.Name())
	}
}

func TestNewProvider_OllamaNeedsNoKey(t *testing.T) {
	p, err := NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("Expected ollama, got %s", p.Name())
	}
}

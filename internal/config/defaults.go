package config

// ModelPreset describes the default chat and embedding models for a provider.
type ModelPreset struct {
	Model          string
	EmbeddingModel string
}

// providerPresets maps each provider to its default model choices.
var providerPresets = map[ProviderType]ModelPreset{
	ProviderGoogle:    {Model: "gemini-2.0-flash", EmbeddingModel: "gemini-embedding-001"},
	ProviderOpenAI:    {Model: "gpt-4o-mini", EmbeddingModel: "text-embedding-3-small"},
	ProviderAnthropic: {Model: "claude-3-5-haiku-20241022", EmbeddingModel: "text-embedding-3-small"},
	ProviderOllama:    {Model: "llama3", EmbeddingModel: "nomic-embed-text"},
}

// DefaultExcludes are glob patterns skipped during policy ingestion.
var DefaultExcludes = []string{
	".git/**",
	"**/README.md",
	"*.draft.*",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderGoogle,
		Model:             "gemini-2.0-flash",
		EmbeddingProvider: ProviderGoogle,
		EmbeddingModel:    "gemini-embedding-001",
		PoliciesDir:       "policies",
		Include:           []string{"**/*.txt", "**/*.md"},
		Exclude:           DefaultExcludes,
		DataDir:           ".hrmate",
		Server: ServerConfig{
			Port: 8080,
		},
		TopK:     3,
		MaxRPM:   0,
		LogLevel: "info",
	}
}

// GetPreset returns the model preset for the given provider, falling back
// to the Google preset for unknown providers.
func GetPreset(provider ProviderType) ModelPreset {
	if preset, ok := providerPresets[provider]; ok {
		return preset
	}
	return providerPresets[ProviderGoogle]
}

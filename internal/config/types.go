package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderGoogle    ProviderType = "google"
	ProviderOpenAI    ProviderType = "openai"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOllama    ProviderType = "ollama"
)

// Config is the top-level hrmate configuration, corresponding to .hrmate.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`

	// PoliciesDir holds the HR policy documents to ingest (.txt/.md).
	PoliciesDir string   `yaml:"policies_dir" koanf:"policies_dir"`
	Include     []string `yaml:"include" koanf:"include"`
	Exclude     []string `yaml:"exclude" koanf:"exclude"`

	// DataDir holds the SQLite database and the persisted vector index.
	DataDir string `yaml:"data_dir" koanf:"data_dir"`

	Server ServerConfig `yaml:"server" koanf:"server"`

	// TopK is the number of policy passages retrieved per question.
	TopK int `yaml:"top_k" koanf:"top_k"`

	// MaxRPM caps LLM requests per minute; 0 disables rate limiting.
	MaxRPM int `yaml:"max_rpm" koanf:"max_rpm"`

	LogLevel string `yaml:"log_level" koanf:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

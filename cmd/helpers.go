package cmd

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hrmate-ai/hrmate/internal/config"
	"github.com/hrmate-ai/hrmate/internal/db"
	"github.com/hrmate-ai/hrmate/internal/dialogue"
	"github.com/hrmate-ai/hrmate/internal/embeddings"
	"github.com/hrmate-ai/hrmate/internal/llm"
	"github.com/hrmate-ai/hrmate/internal/policies"
	"github.com/hrmate-ai/hrmate/internal/requests"
	"github.com/hrmate-ai/hrmate/internal/vectordb"
	"github.com/hrmate-ai/hrmate/pkg/logger"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `hrmate init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w\nRun `hrmate init` to reconfigure", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from config and the --verbose flag.
func newLogger(cfg *config.Config) (*zap.SugaredLogger, error) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logger.New(level)
}

// createLLMProviderFromConfig creates the LLM provider, rate limited when
// max_rpm is set.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	if cfg.MaxRPM > 0 {
		provider = llm.NewRateLimited(provider, cfg.MaxRPM)
	}
	return provider, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}
	model := cfg.EmbeddingModel
	if model == "" {
		model = config.GetPreset(provider).EmbeddingModel
	}

	// Anthropic has no embeddings API; OpenAI serves as the fallback.
	if provider == config.ProviderAnthropic {
		provider = config.ProviderOpenAI
	}
	return embeddings.NewEmbedder(string(provider), model)
}

// vectorStorePath is where the persisted policy index lives.
func vectorStorePath(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "policies.gob.gz")
}

// dbPath is where the SQLite database lives.
func dbPath(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "hrmate.db")
}

// openVectorStore loads the persisted policy index, or an empty store when
// nothing has been ingested yet.
func openVectorStore(cfg *config.Config) (*vectordb.ChromemStore, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return vectordb.LoadChromemStore(vectorStorePath(cfg), embeddings.ToChromemFunc(embedder))
}

// buildEngine assembles the dialogue engine and its collaborators.
func buildEngine(cfg *config.Config, database *db.DB, log *zap.SugaredLogger) (*dialogue.Engine, *vectordb.ChromemStore, error) {
	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := openVectorStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	engine := dialogue.NewEngine(dialogue.EngineConfig{
		Provider:  provider,
		Model:     cfg.Model,
		Retriever: policies.NewStoreRetriever(store),
		Sink:      requests.NewSink(requests.NewStore(database)),
		Logger:    log,
		TopK:      cfg.TopK,
	})
	return engine, store, nil
}

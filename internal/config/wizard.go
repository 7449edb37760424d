package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the
// resulting config to path.
func RunWizard(path string) error {
	fmt.Println("Welcome to hrmate! Let's configure your HR assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"google", "openai", "anthropic", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	preset := GetPreset(cfg.Provider)
	cfg.Model = preset.Model
	cfg.EmbeddingModel = preset.EmbeddingModel
	switch cfg.Provider {
	case ProviderGoogle, ProviderOpenAI, ProviderOllama:
		cfg.EmbeddingProvider = cfg.Provider
	default:
		// Anthropic has no embeddings API; pair it with OpenAI embeddings.
		cfg.EmbeddingProvider = ProviderOpenAI
	}

	// 2. Policies directory.
	dirPrompt := promptui.Prompt{
		Label:   "Directory containing HR policy documents",
		Default: cfg.PoliciesDir,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("directory is required")
			}
			return nil
		},
	}
	dir, err := dirPrompt.Run()
	if err != nil {
		return fmt.Errorf("policies directory: %w", err)
	}
	cfg.PoliciesDir = strings.TrimSpace(dir)

	// 3. API key reminder.
	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: set %s before running `hrmate ingest` or `hrmate serve`.\n", envVar)
	}

	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return nil
}

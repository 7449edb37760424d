package cmd

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hrmate-ai/hrmate/internal/policies"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Embed HR policy documents into the local vector index",
	Long: `Ingest reads the policy documents under policies_dir, splits them into
overlapping word chunks, embeds each chunk, and persists the index under
data_dir. Run it again after editing policies; the index is rebuilt from
scratch each time.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		exitOnError(err)

		log, err := newLogger(cfg)
		exitOnError(err)
		defer log.Sync()

		loader := policies.NewLoader(cfg.PoliciesDir, cfg.Include, cfg.Exclude)
		files, err := loader.Load()
		exitOnError(err)
		if len(files) == 0 {
			exitOnError(fmt.Errorf("no policy files matched under %s", cfg.PoliciesDir))
		}

		store, err := openVectorStore(cfg)
		exitOnError(err)

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Embedding policies"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		ingestor := policies.NewIngestor(store, log)
		ingestor.Progress = func(current, total int, filename string) {
			bar.Describe(fmt.Sprintf("Embedding %s", filename))
			bar.Set(current - 1)
		}

		stats, err := ingestor.Ingest(context.Background(), files)
		exitOnError(err)
		bar.Finish()

		exitOnError(store.Persist(vectorStorePath(cfg)))

		fmt.Printf("Ingested %d file(s) as %d chunk(s) into %s\n",
			stats.Files, stats.Chunks, vectorStorePath(cfg))
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

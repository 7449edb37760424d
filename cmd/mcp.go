package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hrmate-ai/hrmate/internal/db"
	"github.com/hrmate-ai/hrmate/internal/mcp"
	"github.com/hrmate-ai/hrmate/internal/requests"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Run the MCP server on stdio",
	Long: `Serve-mcp exposes policy search and leave request tools to AI agents
over the Model Context Protocol. Stdout carries protocol messages, so
all logging goes to stderr.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		exitOnError(err)

		log, err := newLogger(cfg)
		exitOnError(err)
		defer log.Sync()

		database, err := db.Open(dbPath(cfg))
		exitOnError(err)
		defer database.Close()

		engine, store, err := buildEngine(cfg, database, log)
		exitOnError(err)

		srv := mcp.NewServer(store, engine, requests.NewStore(database))
		exitOnError(srv.Serve())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

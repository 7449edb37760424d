package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrmate-ai/hrmate/internal/db"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-off question about HR policies",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		exitOnError(err)

		log, err := newLogger(cfg)
		exitOnError(err)
		defer log.Sync()

		database, err := db.Open(dbPath(cfg))
		exitOnError(err)
		defer database.Close()

		engine, _, err := buildEngine(cfg, database, log)
		exitOnError(err)

		question := strings.Join(args, " ")
		answer, err := engine.AnswerPolicyQuestion(context.Background(), question)
		exitOnError(err)

		fmt.Println(answer)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrmate-ai/hrmate/internal/db"
	"github.com/hrmate-ai/hrmate/internal/dialogue"
)

var chatUserID int64

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the HR assistant in the terminal",
	Long: `Chat starts an interactive session against the local policy index and
request store. Conversation state is kept in-process for the session;
type 'exit' or press Ctrl-D to quit.`,
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

		fmt.Println("hrmate ready. Ask about HR policies or request leave. Type 'exit' to quit.")

		var snapshot dialogue.Snapshot
		scanner := bufio.NewScanner(os.Stdin)
		ctx := context.Background()

		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			message := strings.TrimSpace(scanner.Text())
			if message == "" {
				continue
			}
			if message == "exit" || message == "quit" {
				break
			}

			out := engine.Process(ctx, dialogue.TurnInput{
				Message:  message,
				UserID:   chatUserID,
				Snapshot: snapshot,
			})
			snapshot = out.Snapshot

			fmt.Println(out.Response)
			fmt.Println()
		}
	},
}

func init() {
	chatCmd.Flags().Int64Var(&chatUserID, "user", 1, "user id to chat as")
	rootCmd.AddCommand(chatCmd)
}

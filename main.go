package main

import (
	"os"

	"github.com/hrmate-ai/hrmate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

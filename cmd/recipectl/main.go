package main

import (
	"context"                        // Root context for API calls
	"fmt"                            // Banner output
	"os"                             // Standard output
	"path/filepath"                  // History file location
	"recipe_manager/internal/cli"    // Interactive shell
	"recipe_manager/internal/client" // API client
	"recipe_manager/internal/config" // Custom package for configuration

	"github.com/chzyer/readline" // Line editing and history
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main function to run the interactive recipe shell
func main() {
	cfg := config.LoadClientConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	tokens := client.NewFileTokenStore(cfg.TokenFile) // Token survives restarts
	c := client.New(cfg.APIURL, tokens)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "recipes> ",
		HistoryFile:     filepath.Join(filepath.Dir(cfg.TokenFile), "history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		logrus.Fatalf("failed to initialize readline: %v", err)
	}
	defer rl.Close()

	fmt.Fprintf(os.Stdout, "Connected to %s. Use 'help' for the list of commands.\n", cfg.APIURL)
	if err := cli.New(c, rl.Stdout()).Run(context.Background(), rl); err != nil {
		logrus.Fatalf("shell stopped: %v", err)
	}
}

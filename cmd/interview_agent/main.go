// Package main provides the entry point for the interview agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interview_agent",
	Short: "Adaptive mock interview engine",
	Long:  "Interview agent runs adaptive mock interviews: AI-generated questions, per-answer scoring with deterministic fallbacks, and a final aggregated report.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

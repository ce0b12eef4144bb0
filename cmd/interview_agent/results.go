package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/interview-agent/internal/db"
	"github.com/jonathan/interview-agent/internal/interview"
	"github.com/jonathan/interview-agent/internal/observability"
)

var resultsCommand = &cobra.Command{
	Use:   "results <interview-id>",
	Short: "Print the stored report for an interview",
	Args:  cobra.ExactArgs(1),
	RunE:  resultsCmd,
}

var resultsDatabaseURL string

func init() {
	resultsCommand.Flags().StringVar(&resultsDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(resultsCommand)
}

func resultsCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	interviewID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid interview ID: %w", err)
	}

	databaseURL := resultsDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	// Reports never need the reasoning backend.
	svc := interview.New(database, nil)

	report, err := svc.Results(ctx, interviewID)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintReport(report)
	return nil
}

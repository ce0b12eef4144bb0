package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-agent/internal/db"
)

var seedCommand = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default interview domain catalog",
	RunE:  seedCmd,
}

var seedDatabaseURL string

// defaultDomains is the bootstrap catalog inserted by the seed command.
var defaultDomains = []struct {
	name        string
	description string
}{
	{"Software Engineering", "Programming, system design, and software development practices"},
	{"Data Science", "Statistics, machine learning, and data analysis"},
	{"Product Management", "Product strategy, prioritization, and stakeholder management"},
	{"Marketing", "Campaigns, positioning, and growth strategy"},
}

func init() {
	seedCommand.Flags().StringVar(&seedDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	rootCmd.AddCommand(seedCommand)
}

func seedCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := seedDatabaseURL
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

	for _, d := range defaultDomains {
		domain, err := database.FindOrCreateDomain(ctx, d.name, d.description)
		if err != nil {
			return fmt.Errorf("failed to seed domain %q: %w", d.name, err)
		}
		fmt.Printf("Seeded domain %s (%s)\n", domain.Name, domain.ID)
	}
	return nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/interview-agent/internal/ai"
	"github.com/jonathan/interview-agent/internal/config"
	"github.com/jonathan/interview-agent/internal/db"
	"github.com/jonathan/interview-agent/internal/interview"
	"github.com/jonathan/interview-agent/internal/llm"
	"github.com/jonathan/interview-agent/internal/observability"
	"github.com/jonathan/interview-agent/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive interview session end-to-end",
	Long: `Drives a full interview on the terminal: start session -> question loop -> final report.

Answers are read from stdin. Type "!skip" to skip a question, "!quit" to cancel the interview.
Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runSessionCmd,
}

var (
	runConfigPath  string
	runDomain      string
	runDifficulty  string
	runUserID      string
	runName        string
	runEmail       string
	runDuration    int
	runAPIKey      string
	runDatabaseURL string
	runVerbose     bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runDomain, "domain", "d", "", "Interview domain name (e.g. \"Software Engineering\")")
	runCommand.Flags().StringVar(&runDifficulty, "difficulty", "", "Difficulty: beginner, intermediate, or expert")
	runCommand.Flags().StringVar(&runUserID, "user-id", "", "Existing user UUID (alternative to --name/--email)")
	runCommand.Flags().StringVarP(&runName, "name", "n", "", "Candidate name")
	runCommand.Flags().StringVar(&runEmail, "email", "", "Candidate email")
	runCommand.Flags().IntVar(&runDuration, "duration", 0, "Planned interview length in minutes")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for session persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

// loadRunConfig layers flag values over an optional config file over the
// environment.
func loadRunConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// CLI overrides: only apply flags that were explicitly set
	if cmd.Flags().Changed("domain") {
		cfg.Domain = runDomain
	}
	if cmd.Flags().Changed("difficulty") {
		cfg.Difficulty = runDifficulty
	}
	if cmd.Flags().Changed("user-id") {
		cfg.UserID = runUserID
	}
	if cmd.Flags().Changed("name") {
		cfg.Name = runName
	}
	if cmd.Flags().Changed("email") {
		cfg.Email = runEmail
	}
	if cmd.Flags().Changed("duration") {
		cfg.DurationMinutes = runDuration
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Environment fills whatever is still unset, then static defaults
	cfg = cfg.MergeWithDefaults(config.FromEnv())
	cfg = cfg.MergeWithDefaults(config.Config{
		Domain:          "Software Engineering",
		Difficulty:      types.DifficultyIntermediate,
		DurationMinutes: 30,
		Name:            "Candidate",
		Email:           "candidate@example.com",
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}
	return cfg, nil
}

func runSessionCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	user, err := resolveUser(ctx, database, cfg)
	if err != nil {
		return err
	}

	domain, err := database.FindOrCreateDomain(ctx, cfg.Domain, "")
	if err != nil {
		return err
	}

	backend, closeBackend, err := buildBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	svc := interview.New(database, backend)

	iv, err := svc.Start(ctx, types.StartInterviewRequest{
		UserID:          user.ID,
		DomainID:        domain.ID,
		Difficulty:      cfg.Difficulty,
		DurationMinutes: cfg.DurationMinutes,
	})
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	fmt.Printf("Interview %s started: %s / %s. Type !skip to skip, !quit to cancel.\n\n",
		iv.ID, domain.Name, iv.Difficulty)

	reader := bufio.NewReader(os.Stdin)
	for turn := 1; ; turn++ {
		question, err := svc.NextQuestion(ctx, iv.ID)
		if err != nil {
			return err
		}
		if question == nil {
			break
		}

		printer.PrintQuestion(turn, interview.MaxQuestions, question)

		started := time.Now()
		text, err := readAnswer(reader)
		if err != nil {
			return err
		}
		taken := int(time.Since(started).Seconds())

		if text == "!quit" {
			if err := svc.Cancel(ctx, iv.ID); err != nil {
				return err
			}
			fmt.Println("Interview cancelled.")
			return nil
		}

		_, eval, err := svc.SubmitAnswer(ctx, types.SubmitAnswerRequest{
			InterviewID:      iv.ID,
			QuestionID:       question.ID,
			Text:             answerText(text),
			TimeTakenSeconds: &taken,
			Skipped:          text == "!skip",
		})
		if err != nil {
			return err
		}

		printer.PrintEvaluation(eval)
	}

	if _, _, err := svc.Complete(ctx, iv.ID); err != nil {
		return err
	}

	report, err := svc.Results(ctx, iv.ID)
	if err != nil {
		return err
	}
	printer.PrintReport(report)

	fmt.Printf("\nInterview ID: %s\n", iv.ID)
	return nil
}

// resolveUser loads the user by ID when provided, otherwise finds or creates
// one by email.
func resolveUser(ctx context.Context, database *db.DB, cfg config.Config) (*db.User, error) {
	if cfg.UserID != "" {
		uid, err := uuid.Parse(cfg.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user_id format: %w", err)
		}
		user, err := database.GetUser(ctx, uid)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, fmt.Errorf("user not found: %s", uid)
		}
		return user, nil
	}
	return database.FindOrCreateUser(ctx, cfg.Name, cfg.Email)
}

// buildBackend constructs the reasoning backend. Without an API key the
// session still runs, fully on fallback content.
func buildBackend(ctx context.Context, cfg config.Config) (interview.Backend, func(), error) {
	if cfg.APIKey == "" {
		log.Printf("[CLI] No API key configured, running with fallback questions and scoring")
		return ai.New(nil), func() {}, nil
	}

	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return ai.New(client), func() { _ = client.Close() }, nil
}

// readAnswer reads one answer line from stdin.
func readAnswer(reader *bufio.Reader) (string, error) {
	fmt.Print("Your answer: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// answerText maps the skip sentinel to an empty stored answer.
func answerText(text string) string {
	if text == "!skip" {
		return ""
	}
	return text
}

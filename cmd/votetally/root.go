package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/cooperative/internal/config"
	"github.com/vncsmyrnk/cooperative/internal/core/domain"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
	"github.com/vncsmyrnk/cooperative/internal/core/services"
	"github.com/vncsmyrnk/cooperative/internal/storage"
)

var errPersistentStoreRequired = errors.New("votetally reads an existing database: set the database type to postgres or sqlite")

type options struct {
	configPath  string
	dbType      string
	dbURL       string
	concurrency int
	timeout     time.Duration
	json        bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "votetally [subject-id]",
		Short: "Print the vote count of every poll of a subject",
		Long: `Counts the agree and disagree votes of every poll owned by a subject,
reading from the configured database.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTally(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML configuration file")
	cmd.Flags().StringVarP(&opts.dbType, "db-type", "t", "", "database type (postgres or sqlite)")
	cmd.Flags().StringVarP(&opts.dbURL, "db-url", "d", "", "database URL or sqlite file path")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 8, "polls counted in parallel")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "maximum job duration")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output tallies as JSON")
	return cmd
}

func runTally(cmd *cobra.Command, opts options, rawSubjectID string) error {
	subjectID, err := strconv.ParseInt(rawSubjectID, 10, 64)
	if err != nil || !domain.ValidSubjectID(subjectID) {
		return domain.ErrInvalidSubjectID
	}

	cfg, err := config.FromEnvironment(opts.configPath)
	if err != nil {
		return err
	}
	if opts.dbType != "" {
		cfg.Database.Type = opts.dbType
	}
	if opts.dbURL != "" {
		cfg.Database.URL = opts.dbURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Database.Type == "" || cfg.Database.Type == config.DatabaseMemory {
		return errPersistentStoreRequired
	}
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	store, err := storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	subjectService := services.NewSubjectService(store.Subjects, logger)
	pollService := services.NewPollService(store.Polls, subjectService, logger)
	voteService := services.NewVoteService(store.Votes, pollService, ports.SystemClock{}, logger)
	tallyService := services.NewTallyService(pollService, voteService, opts.concurrency, logger)

	logger.Info("starting vote tally", "subject_id", subjectID)
	tallies, err := tallyService.TallySubject(ctx, subjectID)
	if err != nil {
		return fmt.Errorf("tally failed: %w", err)
	}
	logger.Info("vote tally completed", "subject_id", subjectID, "polls", len(tallies))

	if opts.json {
		return outputJSON(cmd, tallies)
	}
	return outputTable(cmd, tallies, time.Now().UTC())
}

func outputJSON(cmd *cobra.Command, tallies []domain.PollTally) error {
	data, err := json.MarshalIndent(tallies, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tallies: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func outputTable(cmd *cobra.Command, tallies []domain.PollTally, now time.Time) error {
	out := cmd.OutOrStdout()
	if len(tallies) == 0 {
		_, err := fmt.Fprintln(out, "No polls found.")
		return err
	}

	for _, t := range tallies {
		name := t.Poll.Name
		if name == "" {
			name = "(unnamed)"
		}
		_, err := fmt.Fprintf(out, "[%d] %s (%s) agree=%d disagree=%d total=%d\n",
			t.Poll.ID, name, t.Poll.StateAt(now), t.Votes.Agree, t.Votes.Disagree, t.Votes.Total())
		if err != nil {
			return err
		}
	}
	return nil
}

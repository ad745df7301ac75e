package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vncsmyrnk/cooperative/internal/adapters/handler/http"
	"github.com/vncsmyrnk/cooperative/internal/config"
	"github.com/vncsmyrnk/cooperative/internal/core/ports"
	"github.com/vncsmyrnk/cooperative/internal/core/services"
	"github.com/vncsmyrnk/cooperative/internal/storage"
)

// @title        Cooperative voting API
// @version      1.0
// @description  Subjects, polls and votes of a cooperative assembly.
// @BasePath     /
func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("server", os.Args[1:])
	if err != nil {
		return err
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	clock := ports.SystemClock{}
	subjectService := services.NewSubjectService(store.Subjects, logger)
	pollService := services.NewPollService(store.Polls, subjectService, logger)
	voteService := services.NewVoteService(store.Votes, pollService, clock, logger)

	handler := http.NewHandler(http.Handlers{
		Subjects: http.NewSubjectHandler(subjectService),
		Polls:    http.NewPollHandler(pollService, voteService, clock),
		Votes:    http.NewVoteHandler(voteService),
		Health:   http.NewHealthHandler(store),
	}, http.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	})

	server := &stdhttp.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr, "database", cfg.Database.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

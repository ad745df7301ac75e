package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vncsmyrnk/cooperative/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/cooperative/internal/adapters/repository/sqlite"
	"github.com/vncsmyrnk/cooperative/internal/config"
)

func main() {
	cfg, err := config.Load("migrations", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := migrate(ctx, cfg); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	fmt.Println("Migrations applied successfully.")
}

func migrate(ctx context.Context, cfg config.Config) error {
	switch cfg.Database.Type {
	case config.DatabasePostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()
		return postgres.Migrate(ctx, db)

	case config.DatabaseSQLite:
		store, err := sqlite.NewStore(cfg.SQLitePath())
		if err != nil {
			return err
		}
		return store.Close()
	}
	return errors.New("migrations need a postgres or sqlite database (use -t or DATABASE_TYPE env)")
}

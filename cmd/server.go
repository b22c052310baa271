package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/anwar-ulhaq/Library-Backend/internal/api"
	"github.com/anwar-ulhaq/Library-Backend/internal/infrastructure/config"
	mongodb "github.com/anwar-ulhaq/Library-Backend/internal/infrastructure/db/mongo"
	redisdb "github.com/anwar-ulhaq/Library-Backend/internal/infrastructure/db/redis"
	"github.com/anwar-ulhaq/Library-Backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// serverCmd starts the HTTP server.
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the library backend HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log := logger.Init(logger.Options{
			Level:  cfg.LogLevel,
			Pretty: cfg.Env == "development",
		})

		ctx := cmd.Context()

		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}

		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() {
			_ = rdb.Close()
		}()

		e := api.NewRouter(db, rdb, cfg, log)

		errCh := make(chan error, 1)
		go func() {
			errCh <- e.Start(":" + cfg.Port)
		}()
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anwar-ulhaq/Library-Backend/internal/infrastructure/config"
	mongodb "github.com/anwar-ulhaq/Library-Backend/internal/infrastructure/db/mongo"
)

// indexesCmd creates the MongoDB indexes and exits. Useful in deploy hooks
// when the server should not run index builds itself.
var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create MongoDB indexes and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		client, db, err := mongodb.Connect(cmd.Context(), mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		if err := mongodb.EnsureIndexes(cmd.Context(), db); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}

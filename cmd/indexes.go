package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/oseayemenre/biblioteca/internal/config"
	"github.com/oseayemenre/biblioteca/internal/logger"
	"github.com/oseayemenre/biblioteca/internal/store"
	"github.com/spf13/cobra"
)

func IndexesCommand(ctx context.Context) *cobra.Command {
	var env string
	var envFile string

	cmd := &cobra.Command{
		Use:   "indexes",
		Short: "create the mongo indexes and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			baseLogger, err := newLogger(env)

			if err != nil {
				return err
			}

			cfg, err := loadConfig(envFile)

			if err != nil {
				return err
			}

			if cfg.Store_driver != config.StoreDriverMongo {
				return fmt.Errorf("indexes only apply to the mongo store, STORE_DRIVER is %s", cfg.Store_driver)
			}

			logger := logger.NewSlogLogger(baseLogger)

			ctx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()

			db, err := store.NewMongoStore(ctx, cfg.Mongo_uri, cfg.Mongo_database)

			if err != nil {
				return err
			}

			defer db.Close(context.Background())

			if err := db.EnsureIndexes(ctx); err != nil {
				return err
			}

			logger.Info("indexes created", "database", cfg.Mongo_database)

			return nil
		},
	}

	addEnvFlags(cmd.Flags(), &env, &envFile)

	return cmd
}

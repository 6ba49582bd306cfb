package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/oseayemenre/biblioteca/internal/config"
	"github.com/oseayemenre/biblioteca/internal/store"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const version = "1.0"

var configKeys = []string{
	"MONGO_URI",
	"MONGO_DATABASE",
	"JWT_SECRET",
	"STORE_DRIVER",
	"AUTH_REQUIRED",
	"CORS_ORIGINS",
	"S3_BUCKET",
	"S3_REGION",
	"S3_ENDPOINT",
	"S3_PUBLIC_URL",
}

func addEnvFlags(fs *pflag.FlagSet, env *string, envFile *string) {
	fs.StringVarP(env, "env", "e", "dev", "current working environment (dev or prod)")
	fs.StringVar(envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")
}

func newLogger(env string) (*slog.Logger, error) {
	var handler slog.Handler

	switch env {
	case "dev":
		handler = slog.NewTextHandler(os.Stderr, nil)
	case "prod":
		handler = slog.NewJSONHandler(os.Stderr, nil)
	default:
		return nil, fmt.Errorf("environment can only be dev or prod")
	}

	return slog.New(handler).With(
		slog.String("app", "biblioteca"),
		slog.String("runtime", runtime.Version()),
		slog.String("os", runtime.GOOS),
		slog.String("architecture", runtime.GOARCH),
		slog.String("version", version),
	), nil
}

// loadConfig reads the dotenv file when present, then the process environment, which wins.
func loadConfig(envFile string) (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	v := viper.New()

	v.SetDefault("MONGO_DATABASE", "biblioteca")
	v.SetDefault("STORE_DRIVER", config.StoreDriverMongo)
	v.SetDefault("AUTH_REQUIRED", false)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("S3_REGION", "us-east-1")

	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}

	var cfg config.Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// openStore returns the configured store and a function releasing its resources.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(context.Context) error, error) {
	if cfg.Store_driver == config.StoreDriverMemory {
		return store.NewMemoryStore(), func(context.Context) error { return nil }, nil
	}

	db, err := store.NewMongoStore(ctx, cfg.Mongo_uri, cfg.Mongo_database)

	if err != nil {
		return nil, nil, err
	}

	if err := db.EnsureIndexes(ctx); err != nil {
		db.Close(ctx)
		return nil, nil, err
	}

	return db, db.Close, nil
}

func openObjectStore(ctx context.Context, cfg *config.Config) (store.ObjectStore, error) {
	if cfg.S3_bucket == "" {
		return nil, nil
	}

	objectStore, err := store.NewS3Store(ctx, store.S3Config{
		Bucket:    cfg.S3_bucket,
		Region:    cfg.S3_region,
		Endpoint:  cfg.S3_endpoint,
		PublicURL: cfg.S3_public_url,
	})

	if err != nil {
		return nil, err
	}

	return objectStore, nil
}

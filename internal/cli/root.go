package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"take5/internal/config"
	"take5/internal/database"
)

// options are the flags shared by every command. Zero values defer to the
// TAKE5_* environment.
type options struct {
	store    string
	dbPath   string
	redisURL string
	logJSON  bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "take5",
		Short: "Play Take 5 at the terminal",
		Long: `take5 runs a hot-seat game of Take 5: every round each player reveals a card,
cards are placed lowest first on the row that ends just below them, and whoever
overflows a row or plays too low a card takes its bullheads. Lowest total wins.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.store, "store", "", "Results store: sqlite, redis, none (env: TAKE5_STORE)")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path (env: TAKE5_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&opts.redisURL, "redis-url", "", "Redis URL (env: TAKE5_REDIS_URL)")
	rootCmd.PersistentFlags().BoolVar(&opts.logJSON, "log-json", false, "Log as JSON instead of styled text")

	rootCmd.AddCommand(newPlayCmd(opts))
	rootCmd.AddCommand(newStatsCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// load merges the environment configuration with explicit flags.
func (o *options) load() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if o.store != "" {
		cfg.Store = o.store
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.redisURL != "" {
		cfg.RedisURL = o.redisURL
	}
	return cfg, nil
}

func (o *options) logger(out io.Writer) *slog.Logger {
	if o.logJSON {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	logger := pterm.DefaultLogger.WithWriter(out)
	return slog.New(pterm.NewSlogHandler(logger))
}

func openStore(cfg config.Config, logger *slog.Logger) (database.Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		return database.NewSQLiteStore(cfg.DBPath, logger)
	case config.StoreRedis:
		redisCfg := database.DefaultRedisConfig()
		redisCfg.URL = cfg.RedisURL
		return database.NewRedisStore(redisCfg, logger)
	case config.StoreNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// Package cli implements the newsapi command line: serve, seed and routes.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/news-api/internal/config"
	"github.com/sakif/news-api/internal/repository/sqldb"
)

// options holds the flags shared by the subcommands. Empty values leave the
// loaded configuration untouched.
type options struct {
	configPath string
	logLevel   string
	driver     string
	dsn        string
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "newsapi",
		Short: "News aggregation REST API",
		Long: `newsapi serves a JSON API of topics, articles, comments and users,
backed by PostgreSQL or SQLite.

Configuration is read from newsapi.yaml (or --config), then from the
PORT, DB_DRIVER, DATABASE_URL and LOG_LEVEL environment variables, then
from flags.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultFile+")")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newSeedCommand(opts))
	root.AddCommand(newRoutesCommand(opts))
	return root
}

// addDatabaseFlags registers --driver and --dsn on cmd.
func addDatabaseFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.driver, "driver", "", "database driver: postgres or sqlite")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "database connection string")
}

// load resolves the configuration for a command run.
func (o *options) load() (config.Config, error) {
	path, explicit := config.DefaultFile, false
	if o.configPath != "" {
		path, explicit = o.configPath, true
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return config.Config{}, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.driver != "" {
		cfg.Database.Driver = o.driver
	}
	if o.dsn != "" {
		cfg.Database.DSN = o.dsn
	}
	return cfg, cfg.Validate()
}

func openDB(cfg config.DatabaseConfig) (*sqldb.DB, error) {
	driver, err := sqldb.ParseDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	return sqldb.New(driver, cfg.DSN, sqldb.Options{MaxOpenConns: cfg.MaxOpenConns})
}

func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	return cfg.Log.NewLogger(cmd.ErrOrStderr())
}

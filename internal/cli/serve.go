package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sakif/news-api/internal/repository/sqldb"
	"github.com/sakif/news-api/internal/server"
)

func newServeCommand(opts *options) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			// SQLite creates the file but not its directory.
			if cfg.Database.Driver == string(sqldb.SQLite) && cfg.Database.DSN != ":memory:" {
				dir := filepath.Dir(cfg.Database.DSN)
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}

			db, err := openDB(cfg.Database)
			if err != nil {
				return err
			}

			srv, err := server.New(cfg, logger, db)
			if err != nil {
				db.Close()
				return err
			}

			logger.Debug("configuration loaded",
				slog.String("driver", cfg.Database.Driver),
				slog.Duration("request_timeout", cfg.Server.RequestTimeout),
			)
			return srv.Start()
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (overrides config)")
	addDatabaseFlags(cmd, opts)
	return cmd
}

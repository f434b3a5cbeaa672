package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sakif/news-api/internal/seed"
)

func newSeedCommand(opts *options) *cobra.Command {
	var dataset string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Recreate the tables and load a dataset",
		Long: `seed drops every table, creates the schema again and inserts the
chosen dataset. All existing data is lost.

Datasets: ` + strings.Join(seed.Names, ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			ds, err := seed.Load(dataset)
			if err != nil {
				return err
			}

			db, err := openDB(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			if err := db.Reset(ctx); err != nil {
				return err
			}
			if err := db.Seed(ctx, ds); err != nil {
				return err
			}

			logger.Info("database seeded",
				slog.String("dataset", dataset),
				slog.String("driver", cfg.Database.Driver),
				slog.Int("topics", len(ds.Topics)),
				slog.Int("users", len(ds.Users)),
				slog.Int("articles", len(ds.Articles)),
				slog.Int("comments", len(ds.Comments)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %q dataset\n", dataset)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", "development", "dataset to load ("+strings.Join(seed.Names, "|")+")")
	addDatabaseFlags(cmd, opts)
	return cmd
}

package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-chi/docgen"
	"github.com/spf13/cobra"

	"github.com/sakif/news-api/internal/config"
	"github.com/sakif/news-api/internal/server"
)

func newRoutesCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table as Markdown or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Handlers are only inspected, never called, so no database is needed.
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			router, err := server.NewRouter(config.Defaults().Server, logger, server.Services{})
			if err != nil {
				return err
			}

			switch format {
			case "markdown":
				fmt.Fprintln(cmd.OutOrStdout(), docgen.MarkdownRoutesDoc(router, docgen.MarkdownOpts{
					ProjectPath: "github.com/sakif/news-api",
					Intro:       "Routes of the news API.",
				}))
			case "json":
				fmt.Fprintln(cmd.OutOrStdout(), docgen.JSONRoutesDoc(router))
			default:
				return fmt.Errorf("unknown format %q (want markdown or json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "markdown", "output format: markdown or json")
	return cmd
}

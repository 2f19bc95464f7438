package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blocks/internal/server"
	"github.com/matzehuels/blocks/pkg/bookmark"
	"github.com/matzehuels/blocks/pkg/pipeline"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		origins     []string
		maxFrames   int
		noBookmarks bool
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator HTTP API and animation websocket",
		Long: `Serve the generator HTTP API.

Routes:
  GET    /health
  GET    /api/generators
  GET    /api/generators/{kind}
  POST   /api/generators/{kind}/{format}
  POST   /api/share/{kind}
  GET    /api/share/{token}
  GET    /api/bookmarks
  PUT    /api/bookmarks/{id}
  DELETE /api/bookmarks/{id}
  POST   /api/bookmarks/{id}/toggle
  GET    /ws/animate/{kind}

The listen address defaults to [server] addr in the settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.settings()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = s.Server.Addr
			}

			return c.withRunner(cmd.Context(), noCache, func(ctx context.Context, runner *pipeline.Runner) error {
				var store bookmark.Store
				if !noBookmarks {
					store, err = s.Bookmarks.Open(ctx)
					if err != nil {
						printWarning("Bookmarks disabled: %v", err)
						store = nil
					} else {
						defer store.Close()
					}
				}

				srv := server.New(runner, store, c.Logger,
					server.WithOriginPatterns(origins...),
					server.WithMaxFrames(maxFrames),
				)
				printInfo("Serving on %s", StyleLink.Render("http://"+addr))
				return srv.ListenAndServe(ctx, addr)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from settings, localhost:8080)")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "allowed cross-origin websocket hosts (repeatable)")
	cmd.Flags().IntVar(&maxFrames, "max-frames", 0, "end animation streams after n frames (0 = unlimited)")
	cmd.Flags().BoolVar(&noBookmarks, "no-bookmarks", false, "disable the bookmark routes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

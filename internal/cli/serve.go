package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/synthgraph/internal/server"
	"github.com/matzehuels/synthgraph/pkg/cache"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		maxNodes int
		maxEdges int64
		noCache  bool
		traced   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve graph generation over HTTP",
		Long: `Serve graph generation over HTTP.

Routes:
  GET  /v1/models
  POST /v1/generate/{model}?format=json|dot|svg

Example:
  curl -X POST localhost:8080/v1/generate/erdos-renyi -d '{"nodes": 10, "edges": 20}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.config.Serve.Addr
			}
			if traced {
				shutdown := c.enableTracing()
				defer func() { _ = shutdown(context.Background()) }()
			}
			return c.runServe(cmd.Context(), addr, maxNodes, maxEdges, noCache)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", server.DefaultMaxNodes, "most nodes a request may generate")
	cmd.Flags().Int64Var(&maxEdges, "max-edges", server.DefaultMaxEdges, "most edges a request may generate")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&traced, "trace", false, "log a trace span per request (visible with --verbose)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, maxNodes int, maxEdges int64, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, "api:")

	srv := server.New(runner, c.Logger)
	srv.MaxNodes = maxNodes
	srv.MaxEdges = maxEdges
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.ListenAndServe()
	}()
	c.Logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pondevelopment/harkje/internal/server"
	"github.com/pondevelopment/harkje/pkg/cache"
	"github.com/pondevelopment/harkje/pkg/pipeline"
	"github.com/pondevelopment/harkje/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the harkje HTTP API",
		Long: `Run the harkje HTTP API.

The server exposes layout and render endpoints, plus snapshot storage
when a mongo store is configured. With a redis address configured,
cached layouts are shared between instances; otherwise the local file
cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cacheBackend, err := c.serverCache(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer cacheBackend.Close()

	runner := pipeline.NewRunner(cacheBackend, nil, c.Logger)

	srvOpts := []server.Option{server.WithLogger(c.Logger)}
	if uri := c.Config.Store.MongoURI; uri != "" {
		st, err := store.NewMongoStore(ctx, uri, c.Config.Store.Database)
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
		defer st.Close(context.Background())
		srvOpts = append(srvOpts, server.WithStore(st))
		c.Logger.Info("snapshot store enabled", "database", c.Config.Store.Database)
	}

	srv := server.New(runner, srvOpts...)
	return srv.ListenAndServe(ctx, addr)
}

// serverCache picks the cache backend for server use: redis when
// configured, the local file cache otherwise.
func (c *CLI) serverCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := c.Config.Cache.RedisAddr; addr != "" {
		c.Logger.Info("using redis cache", "addr", addr)
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr: addr,
			DB:   c.Config.Cache.RedisDB,
		})
	}
	return c.newCache(false)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netlearn/internal/api"
	"github.com/matzehuels/netlearn/pkg/cache"
	"github.com/matzehuels/netlearn/pkg/pipeline"
	"github.com/matzehuels/netlearn/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	mongoURI  string // persistent run store, empty = in-memory
	redisAddr string // shared cache, empty = per-backend default
	noCache   bool   // disable the result cache
}

// serveCommand creates the serve command, which runs the HTTP API.
//
// The serve command wires the same pipeline the learn command uses behind
// a REST interface. Runs are kept in memory unless a MongoDB URI is
// configured, and the learned-network cache can be shared across replicas
// via Redis.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      c.Config.Serve.Addr,
		mongoURI:  c.Config.Serve.MongoURI,
		redisAddr: c.Config.Cache.RedisAddr,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "MongoDB URI for persistent run storage (empty = in-memory)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "Redis address for a shared cache (empty = file cache)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	resultCache, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	defer resultCache.Close()

	runs, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = runs.Close(shutdownCtx)
	}()

	runner := pipeline.NewRunner(resultCache, nil, c.Logger)
	server := api.NewServer(runner, runs, c.Logger)

	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving", "addr", opts.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveCache builds the cache backend for serve mode: redis when an address
// is configured, otherwise the file cache the CLI uses.
func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache || c.Config.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		c.Logger.Debug("using redis cache", "addr", opts.redisAddr)
		return cache.NewRedisCache(ctx, opts.redisAddr)
	}
	return c.newCache(false)
}

// serveStore builds the run store: MongoDB when a URI is configured,
// otherwise in-memory.
func (c *CLI) serveStore(ctx context.Context, opts *serveOpts) (store.RunStore, error) {
	if opts.mongoURI == "" {
		return store.NewMemoryStore(), nil
	}
	c.Logger.Debug("using mongodb run store", "uri", opts.mongoURI)
	return store.NewMongoStore(ctx, opts.mongoURI, appName)
}

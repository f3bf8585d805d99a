package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ellipsegen/internal/server"
	"github.com/matzehuels/ellipsegen/pkg/cache"
	"github.com/matzehuels/ellipsegen/pkg/observability"
	"github.com/matzehuels/ellipsegen/pkg/pipeline"
	"github.com/matzehuels/ellipsegen/pkg/render"
	"github.com/matzehuels/ellipsegen/pkg/session"
)

const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

type serveOpts struct {
	addr          string
	palettes      string
	rasterizer    string
	cacheBackend  string
	redisAddr     string
	redisPassword string
	redisDB       int
	redisPrefix   string
	sessionTTL    time.Duration
	maxRenders    int
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:         "localhost:8080",
		rasterizer:   "oksvg",
		cacheBackend: cacheBackendFile,
		redisAddr:    "localhost:6379",
		redisPrefix:  cache.DefaultRedisPrefix,
		sessionTTL:   session.DefaultTTL,
		maxRenders:   server.DefaultMaxConcurrentRenders,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the browser preview server",
		Long: `Serve starts an HTTP server with a preview page: pick a palette, regenerate,
and download the artwork on screen as SVG or PNG. Metrics are exposed at
/metrics.`,
		Example: `  ellipsegen serve
  ellipsegen serve --addr :8080 --cache redis --redis-addr redis:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.palettes, "palettes", "", "TOML file with additional palettes")
	cmd.Flags().StringVar(&opts.rasterizer, "rasterizer", opts.rasterizer, "raster backend: oksvg, rsvg")
	cmd.Flags().StringVar(&opts.cacheBackend, "cache", opts.cacheBackend, "artifact cache: file, redis, none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "Redis address for --cache redis")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.redisPrefix, "redis-prefix", opts.redisPrefix, "key prefix for --cache redis")
	cmd.Flags().IntVar(&opts.maxRenders, "max-renders", opts.maxRenders, "raster downloads rendered at once")
	cmd.Flags().DurationVar(&opts.sessionTTL, "session-ttl", opts.sessionTTL, "how long generated artworks stay downloadable")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	reg, err := loadRegistry(opts.palettes)
	if err != nil {
		return err
	}
	rz, err := render.ByName(opts.rasterizer)
	if err != nil {
		return err
	}
	artifacts, err := openCache(ctx, opts)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(reg, artifacts, releaseKeyer(), rz, logger)
	defer runner.Close()

	metrics, err := observability.NewPrometheus(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	metrics.Register()
	defer observability.Reset()

	sessions := session.NewMemoryStore()
	go sessions.RunCleanup(ctx, time.Minute)

	srv := server.New(server.Config{
		Runner:               runner,
		Sessions:             sessions,
		Logger:               logger,
		SessionTTL:           opts.sessionTTL,
		MaxConcurrentRenders: opts.maxRenders,
	})

	printSuccess("Serving on %s", StyleHighlight.Render("http://"+opts.addr))
	printKeyValue("Palettes", fmt.Sprint(reg.Len()))
	printKeyValue("Cache", opts.cacheBackend)
	printKeyValue("Rasterizer", fmt.Sprint(rz))
	printNewline()

	err = srv.ListenAndServe(ctx, opts.addr)
	if errors.Is(err, context.Canceled) {
		printInfo("Server stopped")
	}
	return err
}

func openCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch opts.cacheBackend {
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendFile:
		dir, err := cache.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get cache dir: %w", err)
		}
		return cache.NewFileCache(dir)
	case cacheBackendRedis:
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		rc, err := cache.NewRedisCache(pingCtx, opts.redisAddr, opts.redisPassword, opts.redisDB,
			cache.WithRedisPrefix(opts.redisPrefix))
		if err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", opts.redisAddr, err)
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want %s, %s or %s)",
			opts.cacheBackend, cacheBackendFile, cacheBackendRedis, cacheBackendNone)
	}
}

package pipeline

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ellipsegen/pkg/cache"
	"github.com/matzehuels/ellipsegen/pkg/ellipse"
	"github.com/matzehuels/ellipsegen/pkg/observability"
	"github.com/matzehuels/ellipsegen/pkg/palette"
	"github.com/matzehuels/ellipsegen/pkg/render"
	"github.com/matzehuels/ellipsegen/pkg/render/sink"
)

// Runner executes the pipeline with caching.
//
// It holds no per-run state, so one Runner can serve concurrent requests.
type Runner struct {
	Registry   *palette.Registry
	Cache      cache.Cache
	Keyer      cache.Keyer
	Rasterizer render.Rasterizer
	Logger     *log.Logger
}

// NewRunner fills nil arguments with defaults: the builtin palettes, a
// NullCache, the DefaultKeyer, the oksvg rasterizer and the default logger.
func NewRunner(reg *palette.Registry, c cache.Cache, keyer cache.Keyer, rz render.Rasterizer, logger *log.Logger) *Runner {
	if reg == nil {
		reg = palette.Builtin()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if rz == nil {
		rz = render.Default()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Registry: reg, Cache: c, Keyer: keyer, Rasterizer: rz, Logger: logger}
}

// Execute generates an artwork and renders opts.Formats.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	art, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result := &Result{Artwork: art}
	result.Stats.Ellipses = len(art.Ellipses)
	result.Stats.GenerateTime = time.Since(start)

	r.Logger.Debug("generated artwork",
		"id", art.ID,
		"palette", art.Palette,
		"ellipses", len(art.Ellipses),
		"seed", art.Seed,
		"duration", result.Stats.GenerateTime)

	start = time.Now()
	artifacts, info, err := r.RenderWithCacheInfo(ctx, art, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cache", info,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate samples and composes one artwork.
func (r *Runner) Generate(ctx context.Context, opts Options) (art *Artwork, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()
	p, err := r.resolvePalette(opts.Palette)
	defer func() {
		name := p.Name
		if name == "" {
			name = opts.Palette
		}
		observability.Pipeline().OnGenerate(ctx, name, *opts.Count, time.Since(start), err)
	}()
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64() | 1
	}
	a, err := sink.Generate(ellipse.NewSeededSampler(seed), p, *opts.Count)
	if err != nil {
		return nil, err
	}
	a.Seed = seed
	if opts.Background != "" {
		a.Background = opts.Background
	}
	return NewArtwork(a), nil
}

// NewArtwork assigns an ID to a and composes its document. It is how
// imported descriptor sets enter the pipeline.
func NewArtwork(a sink.Artwork) *Artwork {
	return &Artwork{
		ID:        uuid.NewString(),
		Artwork:   a,
		SVG:       a.SVG(),
		CreatedAt: time.Now(),
	}
}

func (r *Runner) resolvePalette(name string) (palette.Palette, error) {
	if name == "" {
		return r.Registry.Default(), nil
	}
	return r.Registry.Get(name)
}

// Render is RenderWithCacheInfo without the cache report.
func (r *Runner) Render(ctx context.Context, art *Artwork, opts Options) (map[string][]byte, error) {
	out, _, err := r.RenderWithCacheInfo(ctx, art, opts)
	return out, err
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

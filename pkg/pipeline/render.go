package pipeline

import (
	"context"
	"fmt"
	"image"
	"slices"
	"time"

	"github.com/matzehuels/ellipsegen/pkg/cache"
	"github.com/matzehuels/ellipsegen/pkg/observability"
	"github.com/matzehuels/ellipsegen/pkg/render/sink"
)

const artifactKeyType = "artifact"

// RenderWithCacheInfo produces every format in opts.Formats for art.
//
// SVG and JSON come straight from the artwork. Raster formats are looked up
// in the cache first; on a miss the document is rasterized once and the
// image shared by every raster format of the call.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, art *Artwork, opts Options) (map[string][]byte, CacheInfo, error) {
	var info CacheInfo
	if err := opts.validateRender(); err != nil {
		return nil, info, err
	}

	docHash := cache.Hash([]byte(art.SVG))
	rz := r.newLazyRaster([]byte(art.SVG), opts)
	out := make(map[string][]byte, len(opts.Formats))
	rasterFormats, rasterHits := 0, 0

	for _, format := range opts.Formats {
		start := time.Now()

		if !IsRaster(format) {
			data, err := renderDocument(art, format)
			observability.Pipeline().OnRender(ctx, format, false, time.Since(start), err)
			if err != nil {
				return nil, info, fmt.Errorf("%s: %w", format, err)
			}
			out[format] = data
			continue
		}

		rasterFormats++
		key := r.Keyer.ArtifactKey(docHash, cache.ArtifactKeyOpts{
			Format:     format,
			Width:      opts.Width,
			Height:     opts.Height,
			Quality:    jpegQuality(format, opts),
			Rasterizer: fmt.Sprint(r.Rasterizer),
		})

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, artifactKeyType)
				observability.Pipeline().OnRender(ctx, format, true, time.Since(start), nil)
				out[format] = data
				info.Hits = append(info.Hits, format)
				rasterHits++
				continue
			} else if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			observability.Cache().OnCacheMiss(ctx, artifactKeyType)
		}

		data, err := r.renderRaster(ctx, rz, format)
		observability.Pipeline().OnRender(ctx, format, false, time.Since(start), err)
		if err != nil {
			return nil, info, fmt.Errorf("%s: %w", format, err)
		}
		out[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, artifactKeyType, len(data))
		}
	}

	info.RenderHit = rasterFormats > 0 && rasterHits == rasterFormats
	return out, info, nil
}

func renderDocument(art *Artwork, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return []byte(art.SVG), nil
	case FormatJSON:
		return sink.RenderJSON(art.Artwork)
	default:
		return nil, ValidateFormat(format)
	}
}

func (r *Runner) renderRaster(ctx context.Context, rz *lazyRaster, format string) ([]byte, error) {
	switch format {
	case FormatPNG, FormatPDF:
		png, err := rz.png(ctx)
		if err != nil || format == FormatPNG {
			return png, err
		}
		return sink.WrapPNG(png)
	case FormatJPEG:
		opts, err := rz.encodeOpts(ctx)
		if err != nil {
			return nil, err
		}
		return sink.RenderJPEG(ctx, rz.svg, opts...)
	default:
		return nil, ValidateFormat(format)
	}
}

// jpegQuality is the quality part of a cache key; zero for other formats.
func jpegQuality(format string, opts Options) int {
	if format == FormatJPEG {
		return opts.JPEGQuality
	}
	return 0
}

// lazyRaster rasterizes on first use and memoizes the image and its PNG.
type lazyRaster struct {
	runner *Runner
	svg    []byte
	opts   []sink.RasterOption

	img     image.Image
	encoded []byte
}

func (r *Runner) newLazyRaster(svg []byte, opts Options) *lazyRaster {
	return &lazyRaster{
		runner: r,
		svg:    svg,
		opts: []sink.RasterOption{
			sink.WithSize(opts.Width, opts.Height),
			sink.WithRasterizer(r.Rasterizer),
			sink.WithJPEGQuality(opts.JPEGQuality),
		},
	}
}

// encodeOpts returns the raster options with the memoized image attached,
// rasterizing first if needed.
func (l *lazyRaster) encodeOpts(ctx context.Context) ([]sink.RasterOption, error) {
	if l.img == nil {
		start := time.Now()
		img, err := sink.RenderImage(ctx, l.svg, l.opts...)
		if err != nil {
			return nil, err
		}
		l.runner.Logger.Debug("rasterized document",
			"rasterizer", l.runner.Rasterizer,
			"bounds", img.Bounds().Size(),
			"duration", time.Since(start))
		l.img = img
	}
	return append(slices.Clip(l.opts), sink.WithImage(l.img)), nil
}

func (l *lazyRaster) png(ctx context.Context) ([]byte, error) {
	if l.encoded != nil {
		return l.encoded, nil
	}
	opts, err := l.encodeOpts(ctx)
	if err != nil {
		return nil, err
	}
	l.encoded, err = sink.RenderPNG(ctx, l.svg, opts...)
	return l.encoded, err
}

// Package pkg provides the libraries behind ellipsegen, a generator of
// randomized gradient ellipse artwork.
//
// # Overview
//
// An artwork is a set of ellipse descriptors drawn from a palette and
// composed into one self-contained SVG document. The document is the
// source of truth; every other output is derived from it.
//
//	[palette] registry
//	         ↓
//	    [ellipse] sampler (random descriptors)
//	         ↓
//	    [render/sink] composer (SVG document)
//	         ↓
//	    [render] rasterizer → PNG / JPEG / PDF
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/ellipsegen/pkg/ellipse"
//	    "github.com/matzehuels/ellipsegen/pkg/palette"
//	    "github.com/matzehuels/ellipsegen/pkg/render/sink"
//	)
//
//	p, _ := palette.Builtin().Get("vivid")
//	ds, _ := ellipse.NewSampler(nil).Sample(p, ellipse.DefaultCount)
//	svg := sink.ComposeSVG(ds, p.BackgroundColor())
//
// # Main Packages
//
// [ellipse] - Descriptor type and the sampler that draws descriptors
// uniformly from fixed ranges.
//
// [palette] - Named color palettes, the builtin set and TOML loading.
//
// [render/sink] - The SVG composer plus PNG, JPEG, PDF and JSON outputs.
//
// [render] - Rasterizers: pure Go (oksvg) and rsvg-convert.
//
// [pipeline] - Orchestration (generate → render) with artifact caching.
//
// [cache] - Artifact caches: file, Redis and no-op.
//
// [session] - Short-lived storage of generated artworks for download.
//
// [io] - Timestamped, collision-free file export and descriptor files.
//
// [observability] - Hooks for metrics, with a Prometheus implementation.
//
// [errors] - Coded errors and input validation.
//
// [ellipse]: https://pkg.go.dev/github.com/matzehuels/ellipsegen/pkg/ellipse
// [palette]: https://pkg.go.dev/github.com/matzehuels/ellipsegen/pkg/palette
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/ellipsegen/pkg/render/sink
// [render]: https://pkg.go.dev/github.com/matzehuels/ellipsegen/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ellipsegen/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/ellipsegen/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/ellipsegen/pkg/session
// [io]: https://pkg.go.dev/github.com/matzehuels/ellipsegen/pkg/io
// [observability]: https://pkg.go.dev/github.com/matzehuels/ellipsegen/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/ellipsegen/pkg/errors
package pkg

// Package pipeline ties sampling, composition and export together so the
// CLI, the TUI and the HTTP server share one code path.
//
// # Stages
//
//  1. Generate: resolve the palette, sample ellipses, compose the SVG
//  2. Render: produce the requested formats, rasterizing at most once and
//     caching raster-derived artifacts by document hash
//
// # Usage
//
//	runner := pipeline.NewRunner(palette.Builtin(), c, nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Palette: "sunset",
//	    Count:   pipeline.Count(20),
//	    Formats: []string{"svg", "png"},
//	})
//	png := result.Artifacts["png"]
//
// Stages can also run on their own, which is what the server does: it
// generates on request and renders later when the user downloads.
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ellipsegen/pkg/ellipse"
	"github.com/matzehuels/ellipsegen/pkg/errors"
	"github.com/matzehuels/ellipsegen/pkg/render/sink"
)

// Default values shared by the CLI, TUI and server.
const (
	DefaultCount  = ellipse.DefaultCount
	DefaultWidth  = sink.DefaultRasterWidth
	DefaultHeight = sink.DefaultRasterHeight
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists every supported format in display order.
var Formats = []string{FormatSVG, FormatPNG, FormatJPEG, FormatPDF, FormatJSON}

// IsRaster reports whether format needs rasterization.
func IsRaster(format string) bool {
	return format == FormatPNG || format == FormatJPEG || format == FormatPDF
}

// ValidateFormat checks that format is supported. "jpg" is accepted as an
// alias by NormalizeFormat, not here.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(Formats, ", "))
	}
	return nil
}

// NormalizeFormat lowercases format and maps aliases.
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "jpg" {
		return FormatJPEG
	}
	return f
}

// Count returns a pointer to n for Options.Count.
func Count(n int) *int { return &n }

// Options configures one pipeline run.
type Options struct {
	// Palette names a palette in the runner's registry. Empty selects the
	// registry default.
	Palette string `json:"palette,omitempty"`

	// Background overrides the palette's background color.
	Background string `json:"background,omitempty"`

	// Count is the number of ellipses. Nil selects DefaultCount; zero
	// composes the background alone.
	Count *int `json:"count,omitempty"`

	// Seed makes sampling reproducible. Zero draws a fresh seed, which is
	// recorded in the artwork.
	Seed uint64 `json:"seed,omitempty"`

	Formats []string `json:"formats,omitempty"`

	// Width and Height size raster outputs. Zero selects DefaultWidth and
	// DefaultHeight.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// JPEGQuality is 1-100. Zero selects sink.DefaultJPEGQuality.
	JPEGQuality int `json:"jpeg_quality,omitempty"`

	// Refresh skips cache reads. Fresh artifacts are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks every field and fills defaults.
// Calling it again is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Count == nil {
		o.Count = Count(DefaultCount)
	}
	if err := errors.ValidateCount(*o.Count); err != nil {
		return err
	}
	if o.Background != "" {
		if err := errors.ValidateColor(o.Background); err != nil {
			return err
		}
	}
	if err := o.validateRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func (o *Options) validateRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		f = NormalizeFormat(f)
		if err := ValidateFormat(f); err != nil {
			return err
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	o.Formats = formats
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if err := errors.ValidateSize(o.Width, o.Height); err != nil {
		return err
	}
	if o.JPEGQuality == 0 {
		o.JPEGQuality = sink.DefaultJPEGQuality
	}
	if err := errors.ValidateJPEGQuality(o.JPEGQuality); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Artwork is a generated piece with its identity and composed document.
type Artwork struct {
	ID string
	sink.Artwork
	SVG       string
	CreatedAt time.Time
}

// Result is the outcome of Execute.
type Result struct {
	Artwork   *Artwork
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timings for one run.
type Stats struct {
	Ellipses     int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo reports how the rendered formats were served.
type CacheInfo struct {
	// Hits lists formats served from the cache.
	Hits []string
	// RenderHit is true when every raster format came from the cache.
	RenderHit bool
}

func (c CacheInfo) String() string {
	if len(c.Hits) == 0 {
		return "miss"
	}
	return fmt.Sprintf("hit(%s)", strings.Join(c.Hits, ","))
}

package sink

import (
	"context"
	"image"

	"github.com/matzehuels/ellipsegen/pkg/render"
)

// Default raster output size, ten times the display box.
const (
	DefaultRasterWidth  = 6000
	DefaultRasterHeight = 4000
)

// RasterOption configures raster rendering.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	width, height int
	rasterizer    render.Rasterizer
	quality       int
	img           image.Image
}

// WithSize sets the output size in pixels (default 6000x4000).
func WithSize(width, height int) RasterOption {
	return func(r *rasterRenderer) { r.width, r.height = width, height }
}

// WithRasterizer overrides the rasterizer (default [render.Default]).
func WithRasterizer(rz render.Rasterizer) RasterOption {
	return func(r *rasterRenderer) {
		if rz != nil {
			r.rasterizer = rz
		}
	}
}

// WithJPEGQuality sets the JPEG quality, 1-100 (default 92). Zero keeps the
// default. Ignored by other formats.
func WithJPEGQuality(q int) RasterOption {
	return func(r *rasterRenderer) {
		if q != 0 {
			r.quality = q
		}
	}
}

// WithImage supplies an image rasterized earlier, so the output is encoded
// from img without drawing svg again. Size and rasterizer are ignored.
func WithImage(img image.Image) RasterOption {
	return func(r *rasterRenderer) { r.img = img }
}

func newRasterRenderer(opts ...RasterOption) rasterRenderer {
	r := rasterRenderer{
		width:      DefaultRasterWidth,
		height:     DefaultRasterHeight,
		rasterizer: render.Default(),
		quality:    DefaultJPEGQuality,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderImage rasterizes svg without encoding it.
func RenderImage(ctx context.Context, svg []byte, opts ...RasterOption) (image.Image, error) {
	return newRasterRenderer(opts...).image(ctx, svg)
}

func (r rasterRenderer) image(ctx context.Context, svg []byte) (image.Image, error) {
	if r.img != nil {
		return r.img, nil
	}
	return r.rasterizer.Rasterize(ctx, svg, r.width, r.height)
}

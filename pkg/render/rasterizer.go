package render

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/matzehuels/ellipsegen/pkg/errors"
)

// DefaultSaturation is the percentage boost matching saturate(125%).
const DefaultSaturation = 25

// Rasterizer draws an SVG document into a width x height image.
type Rasterizer interface {
	Rasterize(ctx context.Context, svg []byte, width, height int) (image.Image, error)
}

// Default returns the pure Go rasterizer with the standard saturation boost.
func Default() Rasterizer {
	return OKSVG{Saturation: DefaultSaturation}
}

// ByName returns the rasterizer registered under name ("oksvg" or "rsvg").
func ByName(name string) (Rasterizer, error) {
	switch name {
	case "", "oksvg":
		return Default(), nil
	case "rsvg":
		return RSVG{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown rasterizer %q (want oksvg or rsvg)", name)
	}
}

// OKSVG rasterizes with github.com/srwiley/oksvg.
type OKSVG struct {
	// Saturation is applied after drawing, in percent (-100..100). Zero disables it.
	Saturation float64
}

func (o OKSVG) Rasterize(ctx context.Context, svg []byte, width, height int) (image.Image, error) {
	if err := errors.ValidateSize(width, height); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(resolvePercentLengths(svg)), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse svg")
	}

	x, y, w, h := sliceTarget(icon.ViewBox.W, icon.ViewBox.H, width, height)
	icon.SetTarget(x, y, w, h)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if o.Saturation == 0 {
		return img, nil
	}
	return imaging.AdjustSaturation(img, o.Saturation), nil
}

// sliceTarget maps a viewBox onto a width x height canvas the way
// preserveAspectRatio="xMidYMid slice" does: scale uniformly until both
// dimensions are covered, then center. Overflow falls outside the canvas.
func sliceTarget(vbW, vbH float64, width, height int) (x, y, w, h float64) {
	if vbW <= 0 || vbH <= 0 {
		return 0, 0, float64(width), float64(height)
	}
	scale := max(float64(width)/vbW, float64(height)/vbH)
	w, h = vbW*scale, vbH*scale
	return (float64(width) - w) / 2, (float64(height) - h) / 2, w, h
}

func (o OKSVG) String() string {
	return fmt.Sprintf("oksvg(saturation=%g)", o.Saturation)
}

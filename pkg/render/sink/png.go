package sink

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/matzehuels/ellipsegen/pkg/errors"
)

// RenderPNG rasterizes svg and encodes it as PNG.
func RenderPNG(ctx context.Context, svg []byte, opts ...RasterOption) ([]byte, error) {
	img, err := RenderImage(ctx, svg, opts...)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

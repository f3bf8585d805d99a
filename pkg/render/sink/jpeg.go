package sink

import (
	"bytes"
	"context"
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/ellipsegen/pkg/errors"
)

// DefaultJPEGQuality is the JPEG quality used unless WithJPEGQuality is given.
const DefaultJPEGQuality = 92

// RenderJPEG rasterizes svg and encodes it as JPEG.
func RenderJPEG(ctx context.Context, svg []byte, opts ...RasterOption) ([]byte, error) {
	r := newRasterRenderer(opts...)
	if err := errors.ValidateJPEGQuality(r.quality); err != nil {
		return nil, err
	}
	img, err := r.image(ctx, svg)
	if err != nil {
		return nil, err
	}
	return encodeJPEG(img, r.quality)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode jpeg")
	}
	return buf.Bytes(), nil
}

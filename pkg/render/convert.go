package render

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os/exec"
	"strconv"

	"github.com/matzehuels/ellipsegen/pkg/errors"
)

// RSVG rasterizes with rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
type RSVG struct{}

func (RSVG) Rasterize(ctx context.Context, svg []byte, width, height int) (image.Image, error) {
	if err := errors.ValidateSize(width, height); err != nil {
		return nil, err
	}
	out, err := rsvgConvert(ctx, svg, "png",
		"-w", strconv.Itoa(width),
		"-h", strconv.Itoa(height),
	)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "decode rsvg-convert output")
	}
	return img, nil
}

func (RSVG) String() string { return "rsvg-convert" }

// rsvgConvert shells out to rsvg-convert for format conversion.
func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export with rsvg requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, "rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "rsvg-convert: %s", errBuf.String())
	}
	return out.Bytes(), nil
}

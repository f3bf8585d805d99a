package sink

import (
	"bytes"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/matzehuels/ellipsegen/pkg/errors"
)

// WrapPNG embeds encoded PNG bytes as the only page of a new PDF whose page
// size matches the image. Pair it with [RenderPNG] to export PDF.
func WrapPNG(png []byte) ([]byte, error) {
	imp, err := api.Import("pos:full", types.POINTS)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "pdf import config")
	}

	conf := model.NewDefaultConfiguration()
	var buf bytes.Buffer
	if err := api.ImportImages(nil, &buf, []io.Reader{bytes.NewReader(png)}, imp, conf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "build pdf")
	}
	return buf.Bytes(), nil
}

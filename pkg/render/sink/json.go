package sink

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/ellipsegen/pkg/ellipse"
	"github.com/matzehuels/ellipsegen/pkg/errors"
)

// JSONVersion is written into every exported descriptor set.
const JSONVersion = 1

type jsonOutput struct {
	Version int `json:"version"`
	Width   int `json:"width"`
	Height  int `json:"height"`
	Artwork
}

// RenderJSON exports the artwork as a pretty-printed JSON document.
// [ReadJSON] restores it, and composing the result yields the same SVG.
func RenderJSON(a Artwork) ([]byte, error) {
	out := jsonOutput{
		Version: JSONVersion,
		Width:   Canvas.Width,
		Height:  Canvas.Height,
		Artwork: a,
	}
	if out.Ellipses == nil {
		out.Ellipses = []ellipse.Descriptor{}
	}
	return json.MarshalIndent(out, "", "  ")
}

// ReadJSON decodes an artwork written by [RenderJSON].
func ReadJSON(r io.Reader) (Artwork, error) {
	var in jsonOutput
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return Artwork{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode artwork json")
	}
	if in.Version != JSONVersion {
		return Artwork{}, errors.New(errors.ErrCodeUnsupported, "artwork json version %d (want %d)", in.Version, JSONVersion)
	}
	if in.Background == "" {
		return Artwork{}, errors.New(errors.ErrCodeInvalidInput, "artwork json has no background")
	}
	return in.Artwork, nil
}

package sink

import (
	"github.com/matzehuels/ellipsegen/pkg/ellipse"
	"github.com/matzehuels/ellipsegen/pkg/palette"
)

// Artwork is one generated piece: the descriptors and the colors they were
// drawn against. It holds everything needed to compose the document again.
type Artwork struct {
	Palette    string               `json:"palette"`
	Background string               `json:"background"`
	Seed       uint64               `json:"seed,omitempty"`
	Ellipses   []ellipse.Descriptor `json:"ellipses"`
}

// Generate samples count ellipses from p and returns the resulting artwork.
func Generate(s *ellipse.Sampler, p palette.Palette, count int) (Artwork, error) {
	ds, err := s.Sample(p, count)
	if err != nil {
		return Artwork{}, err
	}
	return Artwork{Palette: p.Name, Background: p.BackgroundColor(), Ellipses: ds}, nil
}

// SVG composes the artwork into its document.
func (a Artwork) SVG() string {
	return ComposeSVG(a.Ellipses, a.Background)
}

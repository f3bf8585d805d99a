package render

import (
	"context"
	"image"
	"testing"

	"github.com/matzehuels/ellipsegen/pkg/errors"
)

const plainSVG = `<svg width="600" height="400" viewBox="0 0 600 600" preserveAspectRatio="xMidYMid slice" xmlns="http://www.w3.org/2000/svg">
  <rect x="0" y="0" width="600" height="600" fill="#5135FF"/>
</svg>`

// composedSVG is one red gradient over a blue background, in the exact
// markup sink.ComposeSVG produces.
const composedSVG = `<svg width="600" height="400" viewBox="0 0 600 600" style="width:100%;max-width:600px;height:auto;filter:saturate(125%);-webkit-filter:saturate(125%)" preserveAspectRatio="xMidYMid slice" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <radialGradient id="grad0" fx="0.2" fy="0.5">
      <stop offset="0%" stop-color="#FF0000"/>
      <stop offset="100%" stop-color="#FF0000" stop-opacity="0"/>
    </radialGradient>
  </defs>
  <rect x="0" y="0" width="100%" height="100%" fill="#0000FF"/>
  <rect x="0" y="0" width="100%" height="100%" fill="url(#grad0)" transform="translate(300 300) scale(1 1) skewX(0) rotate(0) translate(0 0) translate(-300 -300)"/>
</svg>
`

func rgba(img image.Image, x, y int) (r, g, b, a uint32) {
	r, g, b, a = img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8, a >> 8
}

func TestOKSVGDrawsComposedDocument(t *testing.T) {
	img, err := OKSVG{}.Rasterize(context.Background(), []byte(composedSVG), 300, 200)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}

	r, g, b, a := rgba(img, 2, 2)
	if a != 255 || r > 10 || g > 10 || b < 245 {
		t.Errorf("corner pixel = %d %d %d %d, want the #0000FF background", r, g, b, a)
	}

	r, _, b, a = rgba(img, 150, 100)
	if a != 255 {
		t.Fatalf("center pixel alpha = %d, want opaque", a)
	}
	if r < 100 || r <= b {
		t.Errorf("center pixel = %d _ %d, want the red gradient over the background", r, b)
	}
}

func TestOKSVGSaturationKeepsBackground(t *testing.T) {
	img, err := Default().Rasterize(context.Background(), []byte(composedSVG), 60, 40)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if r, g, b, a := rgba(img, 1, 1); a != 255 || b < 245 || r > 10 || g > 10 {
		t.Errorf("corner pixel = %d %d %d %d, want blue", r, g, b, a)
	}
}

func TestResolvePercentLengths(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"full canvas rect",
			`<svg viewBox="0 0 600 600"><rect x="0" y="0" width="100%" height="100%"/></svg>`,
			`<svg viewBox="0 0 600 600"><rect x="0" y="0" width="600" height="600"/></svg>`,
		},
		{
			"non-square viewBox",
			`<svg viewBox="0 0 200 100"><rect x="10%" y="50%" width="50%" height="25%"/></svg>`,
			`<svg viewBox="0 0 200 100"><rect x="20" y="50" width="100" height="25"/></svg>`,
		},
		{
			"no viewBox",
			`<svg><rect width="50%"/></svg>`,
			`<svg><rect width="300"/></svg>`,
		},
		{
			"style and stop offsets untouched",
			`<svg viewBox="0 0 600 600" style="width:100%"><stop offset="100%"/></svg>`,
			`<svg viewBox="0 0 600 600" style="width:100%"><stop offset="100%"/></svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(resolvePercentLengths([]byte(tt.in))); got != tt.want {
				t.Errorf("resolvePercentLengths() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestSliceTarget(t *testing.T) {
	tests := []struct {
		name          string
		vbW, vbH      float64
		width, height int
		want          [4]float64
	}{
		{"landscape crops vertically", 600, 600, 6000, 4000, [4]float64{0, -1000, 6000, 6000}},
		{"portrait crops horizontally", 600, 600, 400, 800, [4]float64{-200, 0, 800, 800}},
		{"same aspect", 600, 600, 300, 300, [4]float64{0, 0, 300, 300}},
		{"display size", 600, 600, 600, 400, [4]float64{0, -100, 600, 600}},
		{"empty viewbox", 0, 0, 100, 50, [4]float64{0, 0, 100, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := sliceTarget(tt.vbW, tt.vbH, tt.width, tt.height)
			got := [4]float64{x, y, w, h}
			if got != tt.want {
				t.Errorf("sliceTarget() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOKSVGDimensions(t *testing.T) {
	sizes := [][2]int{{60, 40}, {40, 60}, {1, 1}}
	for _, s := range sizes {
		img, err := Default().Rasterize(context.Background(), []byte(plainSVG), s[0], s[1])
		if err != nil {
			t.Fatalf("Rasterize(%v): %v", s, err)
		}
		b := img.Bounds()
		if b.Dx() != s[0] || b.Dy() != s[1] {
			t.Errorf("Rasterize(%v) bounds = %v", s, b)
		}
	}
}

func TestOKSVGInvalidSize(t *testing.T) {
	for _, s := range [][2]int{{0, 10}, {10, -1}, {errors.MaxRasterSide + 1, 10}} {
		_, err := OKSVG{}.Rasterize(context.Background(), []byte(plainSVG), s[0], s[1])
		if !errors.Is(err, errors.ErrCodeInvalidSize) {
			t.Errorf("Rasterize(%v) error = %v, want %s", s, err, errors.ErrCodeInvalidSize)
		}
	}
}

func TestOKSVGCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Default().Rasterize(ctx, []byte(plainSVG), 10, 10); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "oksvg(saturation=25)", false},
		{"oksvg", "oksvg(saturation=25)", false},
		{"rsvg", "rsvg-convert", false},
		{"cairo", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ByName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ByName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if s, ok := r.(interface{ String() string }); !ok || s.String() != tt.want {
				t.Errorf("ByName(%q) = %v, want %s", tt.name, r, tt.want)
			}
		})
	}
}

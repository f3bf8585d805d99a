package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/ellipsegen/pkg/ellipse"
	"github.com/matzehuels/ellipsegen/pkg/errors"
	"github.com/matzehuels/ellipsegen/pkg/palette"
)

func TestJSONRecomposesIdenticalSVG(t *testing.T) {
	a, err := Generate(ellipse.NewSeededSampler(11), palette.Builtin().Default(), ellipse.DefaultCount)
	if err != nil {
		t.Fatal(err)
	}

	data, err := RenderJSON(a)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	back, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if back.Palette != a.Palette || back.Background != a.Background {
		t.Errorf("palette/background = %s/%s, want %s/%s", back.Palette, back.Background, a.Palette, a.Background)
	}
	if back.SVG() != a.SVG() {
		t.Error("recomposed SVG differs from original")
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(Artwork{Palette: "vivid", Background: "#5135FF"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"ellipses": []`) {
		t.Errorf("empty artwork should encode an empty list:\n%s", data)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"not json", `ellipses`, errors.ErrCodeInvalidInput},
		{"unknown field", `{"version":1,"background":"#000","bogus":true}`, errors.ErrCodeInvalidInput},
		{"future version", `{"version":2,"background":"#000","ellipses":[]}`, errors.ErrCodeUnsupported},
		{"no background", `{"version":1,"ellipses":[]}`, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestGenerateUsesPaletteBackground(t *testing.T) {
	p := palette.Palette{Name: "two", Colors: []string{"#111111", "#222222"}}
	a, err := Generate(ellipse.NewSeededSampler(1), p, 3)
	if err != nil {
		t.Fatal(err)
	}
	if a.Background != "#111111" {
		t.Errorf("background = %s, want first color", a.Background)
	}
	if len(a.Ellipses) != 3 {
		t.Errorf("got %d ellipses, want 3", len(a.Ellipses))
	}

	if _, err := Generate(ellipse.NewSeededSampler(1), palette.Palette{Name: "empty"}, 3); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty palette error = %v", err)
	}
}

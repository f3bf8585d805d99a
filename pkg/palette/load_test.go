package palette

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const candyTOML = `
[[palette]]
name = "candy"
colors = ["#FF99C8", "#FCF6BD", "#D0F4DE"]
background = "#A9DEF9"

[[palette]]
name = "vivid"
colors = ["#000000"]
`

func TestDecode(t *testing.T) {
	ps, err := Decode(strings.NewReader(candyTOML))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(ps) != 2 {
		t.Fatalf("got %d palettes, want 2", len(ps))
	}
	if ps[0].Name != "candy" || len(ps[0].Colors) != 3 || ps[0].Background != "#A9DEF9" {
		t.Errorf("unexpected first palette: %+v", ps[0])
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `[[palette]] name = `},
		{"unknown key", "[[palette]]\nname = \"a\"\ncolors = [\"#000000\"]\nshade = 1\n"},
		{"invalid color", "[[palette]]\nname = \"a\"\ncolors = [\"nope\"]\n"},
		{"non-hex digit", "[[palette]]\nname = \"a\"\ncolors = [\"#12345z\"]\n"},
		{"no colors", "[[palette]]\nname = \"a\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palettes.toml")
	if err := os.WriteFile(path, []byte(candyTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, err := reg.Get("candy"); err != nil {
		t.Errorf("candy should be loaded: %v", err)
	}
	vivid, _ := reg.Get("vivid")
	if len(vivid.Colors) != 1 {
		t.Errorf("file palette should override builtin vivid, got %v", vivid.Colors)
	}
	if reg.Len() != Builtin().Len()+1 {
		t.Errorf("Len() = %d, want %d", reg.Len(), Builtin().Len()+1)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

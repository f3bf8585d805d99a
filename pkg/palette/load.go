package palette

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// file is the on-disk layout of a palette file:
//
//	[[palette]]
//	name = "candy"
//	colors = ["#FF99C8", "#FCF6BD", "#D0F4DE"]
//	background = "#A9DEF9"
type file struct {
	Palettes []Palette `toml:"palette"`
}

// Decode reads palettes from TOML. Each palette is validated.
func Decode(r io.Reader) ([]Palette, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("decode palettes: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decode palettes: unknown key %q", undecoded[0].String())
	}
	for _, p := range f.Palettes {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Palettes, nil
}

// LoadFile reads the palette file at path and returns the builtin registry
// extended with its palettes.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ps, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Builtin().With(ps...)
}

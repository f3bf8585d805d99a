// Package palette defines the named color palettes ellipses are sampled from.
//
// A [Palette] is an ordered, non-empty list of hex color tokens. Palettes are
// collected in a [Registry], an immutable name-indexed lookup table that is
// built once (from [Builtin] and optionally a TOML file, see [LoadFile]) and
// passed to whoever needs it. Nothing in this package holds global mutable
// state.
//
//	reg := palette.Builtin()
//	p, err := reg.Get("vivid")
//	if err != nil {
//	    return err
//	}
//	descriptors, err := sampler.Sample(p, ellipse.DefaultCount)
package palette

import (
	"slices"
	"strings"

	"github.com/matzehuels/ellipsegen/pkg/errors"
)

// Palette is a named, ordered list of color tokens.
type Palette struct {
	Name   string   `json:"name" toml:"name"`
	Colors []string `json:"colors" toml:"colors"`

	// Background fills the canvas beneath the gradients. When empty the
	// first color is used.
	Background string `json:"background,omitempty" toml:"background"`
}

// BackgroundColor returns the background fill for p.
func (p Palette) BackgroundColor() string {
	if p.Background != "" {
		return p.Background
	}
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0]
}

// Len returns the number of colors in p.
func (p Palette) Len() int { return len(p.Colors) }

// Validate checks the name, that there is at least one color, and that every
// color (and the background, if set) is a hex token.
func (p Palette) Validate() error {
	if err := errors.ValidatePaletteName(p.Name); err != nil {
		return err
	}
	if len(p.Colors) == 0 {
		return errors.New(errors.ErrCodeInvalidPalette, "palette %q has no colors", p.Name)
	}
	for _, c := range p.Colors {
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPalette, err, "palette %q", p.Name)
		}
	}
	if p.Background != "" {
		if err := errors.ValidateColor(p.Background); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPalette, err, "palette %q background", p.Name)
		}
	}
	return nil
}

// clone copies the color slice so registry entries cannot be mutated
// through a returned value.
func (p Palette) clone() Palette {
	p.Colors = slices.Clone(p.Colors)
	return p
}

// Registry is an immutable, ordered set of palettes indexed by name.
// The zero value is empty; build one with [NewRegistry].
type Registry struct {
	order  []string
	byName map[string]Palette
}

// NewRegistry validates ps and builds a registry. Names must be unique.
// The first palette is the default.
func NewRegistry(ps ...Palette) (*Registry, error) {
	r := &Registry{byName: make(map[string]Palette, len(ps))}
	for _, p := range ps {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byName[p.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidPalette, "duplicate palette name %q", p.Name)
		}
		r.order = append(r.order, p.Name)
		r.byName[p.Name] = p.clone()
	}
	return r, nil
}

// With returns a new registry holding r's palettes followed by ps.
// A palette in ps replaces an existing one of the same name in place.
func (r *Registry) With(ps ...Palette) (*Registry, error) {
	merged := r.All()
	for _, p := range ps {
		if i := slices.IndexFunc(merged, func(q Palette) bool { return q.Name == p.Name }); i >= 0 {
			merged[i] = p
			continue
		}
		merged = append(merged, p)
	}
	return NewRegistry(merged...)
}

// Get returns the palette called name.
func (r *Registry) Get(name string) (Palette, error) {
	p, ok := r.byName[name]
	if !ok {
		return Palette{}, errors.New(errors.ErrCodeInvalidPalette,
			"unknown palette %q (known: %s)", name, strings.Join(r.order, ", "))
	}
	return p.clone(), nil
}

// Names returns palette names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// All returns every palette in registration order.
func (r *Registry) All() []Palette {
	out := make([]Palette, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name].clone())
	}
	return out
}

// Len returns the number of palettes.
func (r *Registry) Len() int { return len(r.order) }

// Default returns the first registered palette.
// It panics on an empty registry.
func (r *Registry) Default() Palette {
	return r.byName[r.order[0]].clone()
}

// Next returns the name following name, wrapping around. Unknown names map
// to the first palette.
func (r *Registry) Next(name string) string {
	i := slices.Index(r.order, name)
	return r.order[(i+1)%len(r.order)]
}

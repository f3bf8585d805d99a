package palette

import (
	"slices"
	"testing"

	"github.com/matzehuels/ellipsegen/pkg/errors"
)

func TestBuiltin(t *testing.T) {
	reg := Builtin()

	if reg.Len() != len(builtins) {
		t.Fatalf("Len() = %d, want %d", reg.Len(), len(builtins))
	}
	if got := reg.Default().Name; got != DefaultName {
		t.Errorf("Default().Name = %q, want %q", got, DefaultName)
	}

	vivid, err := reg.Get("vivid")
	if err != nil {
		t.Fatalf("Get(vivid): %v", err)
	}
	want := []string{"#5135FF", "#FF5828", "#F69CFF", "#FFA50F"}
	if !slices.Equal(vivid.Colors, want) {
		t.Errorf("vivid colors = %v, want %v", vivid.Colors, want)
	}
	if vivid.BackgroundColor() != "#5135FF" {
		t.Errorf("vivid background = %q, want #5135FF", vivid.BackgroundColor())
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	_, err := Builtin().Get("nope")
	if err == nil {
		t.Fatal("expected error for unknown palette")
	}
	if !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPalette)
	}
}

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name     string
		palettes []Palette
		wantErr  bool
	}{
		{"single", []Palette{{Name: "a", Colors: []string{"#000000"}}}, false},
		{"empty registry", nil, false},
		{"duplicate name", []Palette{
			{Name: "a", Colors: []string{"#000000"}},
			{Name: "a", Colors: []string{"#FFFFFF"}},
		}, true},
		{"no colors", []Palette{{Name: "a"}}, true},
		{"bad color", []Palette{{Name: "a", Colors: []string{"blue"}}}, true},
		{"non-hex digit", []Palette{{Name: "a", Colors: []string{"#5135FG"}}}, true},
		{"bad background", []Palette{{Name: "a", Colors: []string{"#000000"}, Background: "x"}}, true},
		{"empty name", []Palette{{Colors: []string{"#000000"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.palettes...)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRegistry() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistryIsImmutable(t *testing.T) {
	colors := []string{"#111111", "#222222"}
	reg, err := NewRegistry(Palette{Name: "p", Colors: colors})
	if err != nil {
		t.Fatal(err)
	}

	colors[0] = "#FFFFFF"
	p, _ := reg.Get("p")
	if p.Colors[0] != "#111111" {
		t.Error("registry should not alias the caller's slice")
	}

	p.Colors[1] = "#FFFFFF"
	again, _ := reg.Get("p")
	if again.Colors[1] != "#222222" {
		t.Error("mutating a returned palette should not change the registry")
	}
}

func TestRegistryWith(t *testing.T) {
	reg := Builtin()
	custom := Palette{Name: "candy", Colors: []string{"#FF99C8", "#FCF6BD"}}
	override := Palette{Name: "mono", Colors: []string{"#000000"}}

	merged, err := reg.With(custom, override)
	if err != nil {
		t.Fatalf("With(): %v", err)
	}

	if merged.Len() != reg.Len()+1 {
		t.Errorf("Len() = %d, want %d", merged.Len(), reg.Len()+1)
	}
	names := merged.Names()
	if names[len(names)-1] != "candy" {
		t.Errorf("new palette should be appended, got order %v", names)
	}
	mono, _ := merged.Get("mono")
	if len(mono.Colors) != 1 {
		t.Errorf("mono should be overridden, got %v", mono.Colors)
	}
	if slices.Index(names, "mono") != slices.Index(reg.Names(), "mono") {
		t.Error("override should keep the original position")
	}

	if orig, _ := reg.Get("mono"); len(orig.Colors) == 1 {
		t.Error("With should not modify the receiver")
	}
}

func TestRegistryNext(t *testing.T) {
	reg := Builtin()
	names := reg.Names()

	if got := reg.Next(names[0]); got != names[1] {
		t.Errorf("Next(%q) = %q, want %q", names[0], got, names[1])
	}
	if got := reg.Next(names[len(names)-1]); got != names[0] {
		t.Errorf("Next(last) = %q, want wraparound to %q", got, names[0])
	}
	if got := reg.Next("unknown"); got != names[0] {
		t.Errorf("Next(unknown) = %q, want %q", got, names[0])
	}
}

func TestBackgroundColorFallback(t *testing.T) {
	p := Palette{Name: "p", Colors: []string{"#123456", "#654321"}}
	if got := p.BackgroundColor(); got != "#123456" {
		t.Errorf("BackgroundColor() = %q, want first color", got)
	}
	if got := (Palette{}).BackgroundColor(); got != "" {
		t.Errorf("empty palette BackgroundColor() = %q, want empty", got)
	}
}

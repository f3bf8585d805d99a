package ellipse

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/ellipsegen/pkg/errors"
	"github.com/matzehuels/ellipsegen/pkg/palette"
)

// Source supplies uniform randomness. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// Sampler draws ellipse descriptors from a Source.
type Sampler struct {
	src Source
}

// NewSampler returns a sampler backed by src.
// A nil src uses a PCG generator seeded from the current time.
func NewSampler(src Source) *Sampler {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.New(rand.NewPCG(now, now^0x9e3779b97f4a7c15))
	}
	return &Sampler{src: src}
}

// NewSeededSampler returns a sampler whose output is fully determined by seed.
func NewSeededSampler(seed uint64) *Sampler {
	return NewSampler(rand.New(rand.NewPCG(seed, seed^0xdeadbeef)))
}

// Sample draws count descriptors with colors taken from p.
// It returns an INVALID_INPUT error if p has no colors or count is negative.
func (s *Sampler) Sample(p palette.Palette, count int) ([]Descriptor, error) {
	if len(p.Colors) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "palette %q has no colors", p.Name)
	}
	if err := errors.ValidateCount(count); err != nil {
		return nil, err
	}

	out := make([]Descriptor, count)
	for i := range out {
		out[i] = s.one(p.Colors)
	}
	return out, nil
}

func (s *Sampler) one(colors []string) Descriptor {
	return Descriptor{
		Color:           colors[s.src.IntN(len(colors))],
		FocusOffset:     s.uniform(MinFocusOffset, MaxFocusOffset),
		ScaleX:          s.uniform(MinScale, MaxScale),
		ScaleY:          s.uniform(MinScale, MaxScale),
		SkewDegrees:     s.uniform(MinSkew, MaxSkew),
		RotationDegrees: s.uniform(MinRotation, MaxRotation),
		TranslateX:      s.uniform(MinTranslate, MaxTranslate),
		TranslateY:      s.uniform(MinTranslate, MaxTranslate),
	}
}

// uniform maps a [0,1) draw onto [lo, hi). Rounding can land exactly on hi
// for draws very close to 1, so the result is clamped below hi.
func (s *Sampler) uniform(lo, hi float64) float64 {
	v := lo + s.src.Float64()*(hi-lo)
	if v >= hi {
		v = math.Nextafter(hi, lo)
	}
	return v
}

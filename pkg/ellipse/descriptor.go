package ellipse

// Sampling ranges. Each range is half-open: [Min, Max).
const (
	MinFocusOffset = 0.1
	MaxFocusOffset = 0.4

	MinScale = 0.7
	MaxScale = 1.5

	MinSkew = -10.0
	MaxSkew = 10.0

	MinRotation = 0.0
	MaxRotation = 360.0

	MinTranslate = -250.0
	MaxTranslate = 250.0
)

// DefaultCount is the number of ellipses in one piece of artwork.
const DefaultCount = 12

// Descriptor holds the parameters of one sampled ellipse.
type Descriptor struct {
	Color           string  `json:"color"`
	FocusOffset     float64 `json:"focus_offset"`
	ScaleX          float64 `json:"scale_x"`
	ScaleY          float64 `json:"scale_y"`
	SkewDegrees     float64 `json:"skew"`
	RotationDegrees float64 `json:"rotation"`
	TranslateX      float64 `json:"translate_x"`
	TranslateY      float64 `json:"translate_y"`
}

// InRange reports whether every numeric field lies within its sampling range.
func (d Descriptor) InRange() bool {
	return within(d.FocusOffset, MinFocusOffset, MaxFocusOffset) &&
		within(d.ScaleX, MinScale, MaxScale) &&
		within(d.ScaleY, MinScale, MaxScale) &&
		within(d.SkewDegrees, MinSkew, MaxSkew) &&
		within(d.RotationDegrees, MinRotation, MaxRotation) &&
		within(d.TranslateX, MinTranslate, MaxTranslate) &&
		within(d.TranslateY, MinTranslate, MaxTranslate)
}

func within(v, lo, hi float64) bool { return v >= lo && v < hi }

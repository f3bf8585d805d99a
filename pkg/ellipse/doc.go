// Package ellipse samples the randomized ellipse descriptors that make up a
// piece of gradient artwork.
//
// # Descriptors
//
// A [Descriptor] is one decorative element: a palette color, the horizontal
// focal offset of its radial gradient, and the affine parameters (scale,
// horizontal shear, rotation, translation) that stretch a full-canvas
// rectangle into an ellipse-like blob. Descriptors are plain values; they
// carry no identity other than their position in the sampled sequence.
//
// # Sampling
//
// A [Sampler] draws descriptors from an injected [Source] of randomness:
//
//	s := ellipse.NewSampler(nil)          // time-seeded
//	s := ellipse.NewSeededSampler(42)     // reproducible
//	ds, err := s.Sample(p, ellipse.DefaultCount)
//
// Every field is drawn independently and uniformly from its half-open range
// (see the Min*/Max* constants); the color is drawn uniformly, with
// replacement, from the palette. Sample fails only for an empty palette or a
// negative count.
//
// A Sampler is not safe for concurrent use because the underlying source is
// not. Create one per goroutine, or one per request.
package ellipse

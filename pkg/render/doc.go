// Package render turns composed SVG documents into raster images.
//
// # Overview
//
// The generator's only native output is SVG. Every other format (PNG, JPEG,
// PDF) starts from a raster produced by a [Rasterizer]:
//
//   - [OKSVG]: pure Go, backed by oksvg and rasterx. No external tools.
//   - [RSVG]: shells out to rsvg-convert from librsvg.
//
// Both honor the document's viewBox and its xMidYMid slice aspect handling,
// so a 600x600 viewBox drawn into a 6000x4000 target is scaled by 10 and
// cropped top and bottom.
//
//	img, err := render.Default().Rasterize(ctx, svg, 6000, 4000)
//
// # Saturation
//
// Documents carry a CSS saturate(125%) filter. librsvg applies it; oksvg
// ignores CSS, so [OKSVG] boosts saturation on the finished raster instead.
//
// Output encoders live in the [sink] subpackage.
//
// [sink]: github.com/matzehuels/ellipsegen/pkg/render/sink
package render

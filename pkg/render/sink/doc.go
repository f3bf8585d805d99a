// Package sink composes ellipse artwork into SVG and encodes it into the
// downloadable formats.
//
// # SVG Output
//
// [ComposeSVG] is the heart of the generator. Given the sampled descriptors
// and a background color it emits a fixed document: one radial gradient per
// ellipse inside <defs>, a full-canvas background rectangle, then one
// full-canvas overlay rectangle per ellipse filled with its gradient and
// distorted by a transform chain. It is pure: the same input always yields
// byte-identical output.
//
//	ds, _ := ellipse.NewSampler(nil).Sample(p, ellipse.DefaultCount)
//	svg := sink.ComposeSVG(ds, p.BackgroundColor())
//
// # Raster Output
//
// [RenderPNG] and [RenderJPEG] rasterize the SVG through a
// [render.Rasterizer] (oksvg by default) at 6000x4000 unless [WithSize] says
// otherwise. [WithImage] reuses one rasterization for several encodings, and
// [WrapPNG] turns a PNG into a one-page PDF:
//
//	img, err := sink.RenderImage(ctx, []byte(svg), sink.WithSize(1200, 800))
//	png, err := sink.RenderPNG(ctx, nil, sink.WithImage(img))
//	pdf, err := sink.WrapPNG(png)
//
// # JSON Output
//
// [RenderJSON] exports the descriptor set so it can be re-read with
// [ReadJSON] and composed again into the identical document.
//
// [render.Rasterizer]: github.com/matzehuels/ellipsegen/pkg/render.Rasterizer
package sink

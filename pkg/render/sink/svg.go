package sink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/ellipsegen/pkg/ellipse"
)

// Canvas geometry shared by every document.
const (
	DisplayWidth  = 600
	DisplayHeight = 400
	ViewBoxSize   = 600
	CenterX       = ViewBoxSize / 2
	CenterY       = ViewBoxSize / 2

	// SaturatePercent is the CSS saturate() multiplier, 1.25 as a percentage.
	SaturatePercent = 125
)

// Document describes the fixed frame of a composed SVG.
type Document struct {
	Width, Height int
	ViewBox       [4]int
}

// Canvas is the frame every ComposeSVG document uses.
var Canvas = Document{
	Width:   DisplayWidth,
	Height:  DisplayHeight,
	ViewBox: [4]int{0, 0, ViewBoxSize, ViewBoxSize},
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `"`, "&quot;")

// ComposeSVG renders descriptors over a solid background into an SVG document.
//
// Gradient i is referenced only by overlay rectangle i, and overlays are
// painted in slice order. Values are not validated; color tokens are only
// attribute-escaped.
func ComposeSVG(ds []ellipse.Descriptor, background string) string {
	var buf bytes.Buffer
	buf.Grow(512 + 420*len(ds))

	fmt.Fprintf(&buf, `<svg width="%d" height="%d" viewBox="%d %d %d %d" style="width:100%%;max-width:%dpx;height:auto;filter:saturate(%d%%);-webkit-filter:saturate(%d%%)" preserveAspectRatio="xMidYMid slice" xmlns="http://www.w3.org/2000/svg">`+"\n",
		Canvas.Width, Canvas.Height,
		Canvas.ViewBox[0], Canvas.ViewBox[1], Canvas.ViewBox[2], Canvas.ViewBox[3],
		DisplayWidth, SaturatePercent, SaturatePercent)

	buf.WriteString("  <defs>\n")
	for i, d := range ds {
		writeGradient(&buf, i, d)
	}
	buf.WriteString("  </defs>\n")

	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="100%%" height="100%%" fill="%s"/>`+"\n", attr(background))
	for i, d := range ds {
		writeOverlay(&buf, i, d)
	}

	buf.WriteString("</svg>\n")
	return buf.String()
}

func writeGradient(buf *bytes.Buffer, i int, d ellipse.Descriptor) {
	c := attr(d.Color)
	fmt.Fprintf(buf, `    <radialGradient id="%s" fx="%s" fy="0.5">`+"\n", GradientID(i), num(d.FocusOffset))
	fmt.Fprintf(buf, `      <stop offset="0%%" stop-color="%s"/>`+"\n", c)
	fmt.Fprintf(buf, `      <stop offset="100%%" stop-color="%s" stop-opacity="0"/>`+"\n", c)
	buf.WriteString("    </radialGradient>\n")
}

func writeOverlay(buf *bytes.Buffer, i int, d ellipse.Descriptor) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="100%%" height="100%%" fill="url(#%s)" transform="%s"/>`+"\n",
		GradientID(i), Transform(d))
}

// GradientID returns the id of the i-th gradient.
func GradientID(i int) string {
	return "grad" + strconv.Itoa(i)
}

// Transform returns the transform chain for d. The order is fixed: move the
// origin to the canvas center, scale, skew, rotate, translate, move back.
func Transform(d ellipse.Descriptor) string {
	return fmt.Sprintf("translate(%d %d) scale(%s %s) skewX(%s) rotate(%s) translate(%s %s) translate(%d %d)",
		CenterX, CenterY,
		num(d.ScaleX), num(d.ScaleY),
		num(d.SkewDegrees),
		num(d.RotationDegrees),
		num(d.TranslateX), num(d.TranslateY),
		-CenterX, -CenterY)
}

// num formats v with the fewest digits that round-trip.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func attr(s string) string {
	return attrEscaper.Replace(s)
}

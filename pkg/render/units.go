package render

import (
	"regexp"
	"strconv"
)

// Fallback viewBox when a document does not declare one.
const (
	fallbackViewBoxW = 600
	fallbackViewBoxH = 600
)

var (
	viewBoxRe = regexp.MustCompile(`viewBox="\s*[-+.\deE]+[\s,]+[-+.\deE]+[\s,]+([-+.\deE]+)[\s,]+([-+.\deE]+)\s*"`)
	percentRe = regexp.MustCompile(`(\s)(x|y|width|height)="\s*([-+]?[\d.]+)%\s*"`)
)

// resolvePercentLengths rewrites x, y, width and height attributes given in
// percent into user units of the document's viewBox. oksvg reads "100%" as
// zero, which makes full-canvas rectangles vanish.
func resolvePercentLengths(svg []byte) []byte {
	vbW, vbH := viewBoxSize(svg)
	return percentRe.ReplaceAllFunc(svg, func(m []byte) []byte {
		sub := percentRe.FindSubmatch(m)
		pct, err := strconv.ParseFloat(string(sub[3]), 64)
		if err != nil {
			return m
		}
		ref := vbW
		if attr := string(sub[2]); attr == "y" || attr == "height" {
			ref = vbH
		}
		v := strconv.FormatFloat(pct*ref/100, 'f', -1, 64)
		out := make([]byte, 0, len(m))
		out = append(out, sub[1]...)
		out = append(out, sub[2]...)
		out = append(out, `="`...)
		out = append(out, v...)
		return append(out, '"')
	})
}

// viewBoxSize returns the width and height of the first viewBox in svg.
func viewBoxSize(svg []byte) (w, h float64) {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return fallbackViewBoxW, fallbackViewBoxH
	}
	w, errW := strconv.ParseFloat(string(m[1]), 64)
	h, errH := strconv.ParseFloat(string(m[2]), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return fallbackViewBoxW, fallbackViewBoxH
	}
	return w, h
}

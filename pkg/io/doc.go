// Package io writes generated artwork to disk and reads saved descriptor
// sets back.
//
// # File Names
//
// Exports are named after the moment they were made:
//
//	ellipses-1718035200123.svg
//	ellipses-1718035200123.png
//
// The suffix is the Unix time in milliseconds. [Export] never overwrites: if
// the name is taken, -1, -2 and so on are appended before the extension.
//
// # Descriptor Sets
//
// A json export holds an artwork's descriptors (see sink.RenderJSON).
// [ImportJSON] reads it back; composing the imported set yields the same SVG
// that was exported.
package io

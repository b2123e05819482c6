// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

// Fill produces scanlines of color for drawing operations.
//
// A fill is independent of how its output is applied.  Each fill type
// supports 8-bit and floating point output through the two methods of the
// Fill interface; the two are consistent up to scaling and rounding.
// Output has 2 samples per pixel (gray, alpha) when the destination has 1
// or 2 channels, otherwise 4 (RGBA).
//
// Fill values are immutable after construction and may be shared.
package fill

import "github.com/soniakeys/quant/v2"

// Fill is implemented by Solid, Hatch, Image and Opacity.
type Fill interface {
	// FillColor writes width 8-bit samples starting at (x, y) to out.
	FillColor(x, y, width, channels int, out []quant.Color)
	// FillFColor is the floating point variant of FillColor.
	FillFColor(x, y, width, channels int, out []quant.FColor)
	// Combine returns the policy for blending output into a destination.
	Combine() Combine
}

// Destroyer is implemented by fills that hold resources.
type Destroyer interface {
	Destroy()
}

// Destroy releases resources held by f.  f must not be used afterward.
func Destroy(f Fill) {
	if d, ok := f.(Destroyer); ok {
		d.Destroy()
	}
}

// HasColor reports whether f has a native 8-bit path.  Fills that only
// compute floating point samples implement HasColor() bool returning false;
// their FillColor converts from FillFColor.
func HasColor(f Fill) bool {
	if h, ok := f.(interface{ HasColor() bool }); ok {
		return h.HasColor()
	}
	return true
}

// outChannels is the sample layout produced for a destination channel count.
func outChannels(channels int) int {
	if channels > 2 {
		return 4
	}
	return 2
}

// alphaChannel is the index of alpha in fill output.
func alphaChannel(channels int) int {
	if channels > 2 {
		return 3
	}
	return 1
}

// ToColor converts float samples to 8 bits.  out is grown as needed.
func ToColor(in []quant.FColor, out []quant.Color) []quant.Color {
	if cap(out) < len(in) {
		out = make([]quant.Color, len(in))
	}
	out = out[:len(in)]
	for i, f := range in {
		out[i] = f.C()
	}
	return out
}

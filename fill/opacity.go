// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package fill

import "github.com/soniakeys/quant/v2"

// Opacity scales the alpha of another fill's output.
type Opacity struct {
	inner     Fill
	alphaMult float64
	color     bool
}

// NewOpacity returns a fill producing the output of inner with alpha
// multiplied by alphaMult and clamped.  It takes the combine policy of
// inner.  Destroying an Opacity does not destroy inner.
func NewOpacity(inner Fill, alphaMult float64) *Opacity {
	return &Opacity{inner: inner, alphaMult: alphaMult, color: HasColor(inner)}
}

func (o *Opacity) Combine() Combine { return o.inner.Combine() }

// HasColor is false when the inner fill has no 8-bit path.
func (o *Opacity) HasColor() bool { return o.color }

// FillColor uses the 8-bit path of the inner fill.  If the inner fill has
// none, the float result is converted.
func (o *Opacity) FillColor(x, y, width, channels int, out []quant.Color) {
	if !o.color {
		fs := make([]quant.FColor, width)
		o.FillFColor(x, y, width, channels, fs)
		ToColor(fs, out[:width])
		return
	}
	o.inner.FillColor(x, y, width, channels, out)
	ac := alphaChannel(channels)
	for i := range out[:width] {
		a := float64(out[i][ac]) * o.alphaMult
		out[i][ac] = quant.Clamp8(a + 0.5)
	}
}

func (o *Opacity) FillFColor(x, y, width, channels int, out []quant.FColor) {
	o.inner.FillFColor(x, y, width, channels, out)
	ac := alphaChannel(channels)
	for i := range out[:width] {
		out[i][ac] = min(max(out[i][ac]*o.alphaMult, 0), 1)
	}
}

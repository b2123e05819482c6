// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package fill

import "github.com/soniakeys/quant/v2"

// Solid fills with a single RGBA color.
type Solid struct {
	c       quant.Color
	fc      quant.FColor
	combine Combine
}

// NewSolid returns a fill of the RGBA color c.
func NewSolid(c quant.Color, combine Combine) *Solid {
	return &Solid{c: c, fc: c.F(), combine: combine}
}

// NewSolidF returns a fill of the RGBA color fc.  The 8-bit color is fc
// rounded.
func NewSolidF(fc quant.FColor, combine Combine) *Solid {
	return &Solid{c: fc.C(), fc: fc, combine: combine}
}

func (s *Solid) Combine() Combine { return s.combine }

func (s *Solid) FillColor(x, y, width, channels int, out []quant.Color) {
	c := []quant.Color{s.c}
	quant.Adapt(outChannels(channels), 4, c)
	for i := range out[:width] {
		out[i] = c[0]
	}
}

func (s *Solid) FillFColor(x, y, width, channels int, out []quant.FColor) {
	c := []quant.FColor{s.fc}
	quant.AdaptF(outChannels(channels), 4, c)
	for i := range out[:width] {
		out[i] = c[0]
	}
}

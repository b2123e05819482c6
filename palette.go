// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package quant

import (
	"image/color"
)

// MaxColors is the largest palette a Config may ask for.
const MaxColors = 256

// Palette is an ordered list of opaque or translucent RGBA colors.
//
// Palette values returned by the builders are fresh slices owned by the
// caller.  Palette indices are stored in a byte per pixel so a Palette
// used for translation has at most MaxColors entries.
type Palette []Color

// Index returns the index of the first entry with the same RGB channels
// as c, or -1.
func (p Palette) Index(c Color) int {
	for i, e := range p {
		if e[0] == c[0] && e[1] == c[1] && e[2] == c[2] {
			return i
		}
	}
	return -1
}

// IsGray reports whether every entry has equal RGB channels.
func (p Palette) IsGray() bool {
	for _, e := range p {
		if e[0] != e[1] || e[0] != e[2] {
			return false
		}
	}
	return true
}

// Clone returns a copy of p.
func (p Palette) Clone() Palette {
	if p == nil {
		return nil
	}
	return append(Palette(nil), p...)
}

// ColorPalette converts p to a standard library palette.
func (p Palette) ColorPalette() color.Palette {
	cp := make(color.Palette, len(p))
	for i, e := range p {
		cp[i] = color.NRGBA{e[0], e[1], e[2], e[3]}
	}
	return cp
}

// Convert returns the palette entry nearest to c by linear search.
//
// Convert is satisfied the same way as color.Palette.Convert so a Palette
// may be used as a color.Model.
func (p Palette) Convert(c color.Color) color.Color {
	if len(p) == 0 {
		return nil
	}
	q := FromColor(c)
	best, bd := 0, Dist(p[0], q)
	for i := 1; i < len(p); i++ {
		if d := Dist(p[i], q); d < bd {
			best, bd = i, d
		}
	}
	e := p[best]
	return color.NRGBA{e[0], e[1], e[2], e[3]}
}

// FromPalette converts a standard library palette.
func FromPalette(cp color.Palette) Palette {
	p := make(Palette, len(cp))
	for i, c := range cp {
		p[i] = FromColor(c)
	}
	return p
}

// FromColor converts any color to a non-premultiplied 4 channel Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{n.R, n.G, n.B, n.A}
}

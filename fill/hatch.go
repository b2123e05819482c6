// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package fill

import "github.com/soniakeys/quant/v2"

// Pattern selects a builtin 8x8 hatch bitmap.
type Pattern int

// Builtin hatch patterns.
const (
	Check1x1 Pattern = iota
	Check2x2
	Check4x4
	VLine1
	VLine2
	VLine4
	HLine1
	HLine2
	HLine4
	Slash1
	Slosh1
	Slash2
	Slosh2
	Grid1
	Grid2
	Grid4
	Dots1
	Dots4
	Dots16
	Stipple
	Weave
	Cross1
	Cross2
	VLozenge
	HLozenge
	ScalesDown
	ScalesUp
	ScalesLeft
	ScalesRight
	Stipple2
	TileL
	Stipple3
)

// Rows are top to bottom, the most significant bit of a row is the
// leftmost pixel.
var hatches = [...][8]uint8{
	Check1x1:    {0x55, 0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55, 0xAA},
	Check2x2:    {0xCC, 0xCC, 0x33, 0x33, 0xCC, 0xCC, 0x33, 0x33},
	Check4x4:    {0xF0, 0xF0, 0xF0, 0xF0, 0x0F, 0x0F, 0x0F, 0x0F},
	VLine1:      {0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x10},
	VLine2:      {0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24, 0x24},
	VLine4:      {0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55},
	HLine1:      {0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	HLine2:      {0xFF, 0x00, 0x00, 0x00, 0xFF, 0x00, 0x00, 0x00},
	HLine4:      {0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00},
	Slash1:      {0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80},
	Slosh1:      {0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01},
	Slash2:      {0x11, 0x22, 0x44, 0x88, 0x11, 0x22, 0x44, 0x88},
	Slosh2:      {0x88, 0x44, 0x22, 0x11, 0x88, 0x44, 0x22, 0x11},
	Grid1:       {0xFF, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80},
	Grid2:       {0xFF, 0x88, 0x88, 0x88, 0xFF, 0x88, 0x88, 0x88},
	Grid4:       {0xFF, 0xAA, 0xFF, 0xAA, 0xFF, 0xAA, 0xFF, 0xAA},
	Dots1:       {0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	Dots4:       {0x88, 0x00, 0x00, 0x00, 0x88, 0x00, 0x00, 0x00},
	Dots16:      {0xAA, 0x00, 0xAA, 0x00, 0xAA, 0x00, 0xAA, 0x00},
	Stipple:     {0x48, 0x84, 0x00, 0x00, 0x84, 0x48, 0x00, 0x00},
	Weave:       {0x55, 0xFD, 0x05, 0xFD, 0x55, 0xDF, 0x50, 0xDF},
	Cross1:      {0x82, 0x44, 0x28, 0x10, 0x28, 0x44, 0x82, 0x01},
	Cross2:      {0xAA, 0x44, 0xAA, 0x11, 0xAA, 0x44, 0xAA, 0x11},
	VLozenge:    {0x11, 0x11, 0x11, 0x2A, 0x44, 0x44, 0x44, 0xAA},
	HLozenge:    {0x88, 0x70, 0x88, 0x07, 0x88, 0x70, 0x88, 0x07},
	ScalesDown:  {0x80, 0x80, 0x41, 0x3E, 0x08, 0x08, 0x14, 0xE3},
	ScalesUp:    {0xC7, 0x28, 0x10, 0x10, 0x7C, 0x82, 0x01, 0x01},
	ScalesLeft:  {0x83, 0x84, 0x88, 0x48, 0x38, 0x48, 0x88, 0x84},
	ScalesRight: {0x21, 0x11, 0x12, 0x1C, 0x12, 0x11, 0x21, 0xC1},
	Stipple2:    {0x44, 0x88, 0x22, 0x11, 0x44, 0x88, 0x22, 0x11},
	TileL:       {0xFF, 0x84, 0x84, 0x9C, 0x94, 0x9C, 0x90, 0x90},
	Stipple3:    {0x80, 0x40, 0x20, 0x00, 0x02, 0x04, 0x08, 0x00},
}

// Bitmap returns the rows of builtin pattern p.  Out of range patterns
// return Check1x1.
func Bitmap(p Pattern) [8]uint8 {
	if p < 0 || int(p) >= len(hatches) {
		p = Check1x1
	}
	return hatches[p]
}

// Hatch fills with two colors selected by an 8x8 bitmap.  Set bits give
// the foreground color.
type Hatch struct {
	fg, bg   quant.Color
	ffg, fbg quant.FColor
	bits     [8]uint8
	dx, dy   int
	combine  Combine
}

// NewHatch returns a hatch fill.  When custom is non-nil it is used as the
// bitmap and pattern is ignored.  dx and dy shift the pattern phase.
func NewHatch(fg, bg quant.Color, combine Combine, pattern Pattern, custom *[8]uint8, dx, dy int) *Hatch {
	h := newHatch(combine, pattern, custom, dx, dy)
	h.fg, h.bg = fg, bg
	h.ffg, h.fbg = fg.F(), bg.F()
	return h
}

// NewHatchF is NewHatch with floating point colors.
func NewHatchF(fg, bg quant.FColor, combine Combine, pattern Pattern, custom *[8]uint8, dx, dy int) *Hatch {
	h := newHatch(combine, pattern, custom, dx, dy)
	h.fg, h.bg = fg.C(), bg.C()
	h.ffg, h.fbg = fg, bg
	return h
}

func newHatch(combine Combine, pattern Pattern, custom *[8]uint8, dx, dy int) *Hatch {
	h := &Hatch{dx: dx, dy: dy, combine: combine}
	if custom != nil {
		h.bits = *custom
	} else {
		h.bits = Bitmap(pattern)
	}
	return h
}

func (h *Hatch) Combine() Combine { return h.combine }

func (h *Hatch) FillColor(x, y, width, channels int, out []quant.Color) {
	c := []quant.Color{h.fg, h.bg}
	quant.Adapt(outChannels(channels), 4, c)
	row := h.bits[(y+h.dy)&7]
	mask := uint8(128) >> uint((x+h.dx)&7)
	for i := range out[:width] {
		if row&mask != 0 {
			out[i] = c[0]
		} else {
			out[i] = c[1]
		}
		if mask >>= 1; mask == 0 {
			mask = 128
		}
	}
}

func (h *Hatch) FillFColor(x, y, width, channels int, out []quant.FColor) {
	c := []quant.FColor{h.ffg, h.fbg}
	quant.AdaptF(outChannels(channels), 4, c)
	row := h.bits[(y+h.dy)&7]
	mask := uint8(128) >> uint((x+h.dx)&7)
	for i := range out[:width] {
		if row&mask != 0 {
			out[i] = c[0]
		} else {
			out[i] = c[1]
		}
		if mask >>= 1; mask == 0 {
			mask = 128
		}
	}
}

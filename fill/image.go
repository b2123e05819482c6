// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package fill

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/soniakeys/quant/v2"
)

// Image tiles a source image over the plane.
//
// Without a transform, output pixel (x, y) is the source pixel at
// (x mod width, y mod height).  With a transform the sample position is
// xform applied to (x, y) and the result is interpolated bilinearly from
// the four surrounding source pixels, weighting color by alpha.
//
// A non-zero xoff shifts each row of tiles right by xoff times the tile
// row number, giving a brick layout.  yoff does the same for columns and
// is ignored when xoff is non-zero.
type Image struct {
	pix        []quant.Color // non-premultiplied RGBA, row major
	w, h       int
	xform      *f64.Aff3
	xoff, yoff int
	combine    Combine
}

// NewImage returns a fill tiling src.  xform may be nil.  The source
// pixels are read once; later changes to src are not seen.
func NewImage(src image.Image, xform *f64.Aff3, xoff, yoff int, combine Combine) *Image {
	b := src.Bounds()
	f := &Image{w: b.Dx(), h: b.Dy(), combine: combine}
	if f.w <= 0 || f.h <= 0 {
		f.w, f.h = 0, 0
		return f
	}
	f.pix = make([]quant.Color, 0, f.w*f.h)
	lr := quant.NewLineReader(src)
	for y := 0; y < f.h; y++ {
		f.pix = append(f.pix, lr.Line(y)...)
	}
	f.xoff = floorMod(xoff, f.w)
	f.yoff = floorMod(yoff, f.h)
	if xform != nil {
		m := *xform
		f.xform = &m
	}
	return f
}

// Destroy releases the copy of the source pixels.  Afterward the fill
// produces transparent black.
func (f *Image) Destroy() { f.pix = nil }

func (f *Image) Combine() Combine { return f.combine }

func (f *Image) FillColor(x, y, width, channels int, out []quant.Color) {
	out = out[:width]
	if len(f.pix) == 0 {
		clear(out)
		return
	}
	if f.xform == nil {
		for i := range out {
			px, py := f.wrap(x+i, y)
			out[i] = f.pix[py*f.w+px]
		}
	} else {
		for i := range out {
			px, py := f.position(x+i, y)
			x0, x1, y0, y1 := f.neighbors(px, py)
			c0 := interp(f.pix[y0+x0], f.pix[y0+x1], px)
			c1 := interp(f.pix[y1+x0], f.pix[y1+x1], px)
			out[i] = interp(c0, c1, py)
		}
	}
	quant.Adapt(outChannels(channels), 4, out)
}

func (f *Image) FillFColor(x, y, width, channels int, out []quant.FColor) {
	out = out[:width]
	if len(f.pix) == 0 {
		clear(out)
		return
	}
	if f.xform == nil {
		for i := range out {
			px, py := f.wrap(x+i, y)
			out[i] = f.pix[py*f.w+px].F()
		}
	} else {
		for i := range out {
			px, py := f.position(x+i, y)
			x0, x1, y0, y1 := f.neighbors(px, py)
			c0 := interpF(f.pix[y0+x0].F(), f.pix[y0+x1].F(), px)
			c1 := interpF(f.pix[y1+x0].F(), f.pix[y1+x1].F(), px)
			out[i] = interpF(c0, c1, py)
		}
	}
	quant.AdaptF(outChannels(channels), 4, out)
}

// wrap maps an output pixel to source coordinates.
func (f *Image) wrap(x, y int) (int, int) {
	ix, iy := floorDiv(x, f.w), floorDiv(y, f.h)
	if f.xoff != 0 {
		x += iy * f.xoff
		ix = floorDiv(x, f.w)
	} else if f.yoff != 0 {
		y += ix * f.yoff
		iy = floorDiv(y, f.h)
	}
	return x - ix*f.w, y - iy*f.h
}

// position is wrap for transformed fills.
func (f *Image) position(x, y int) (float64, float64) {
	m := f.xform
	rx := m[0]*float64(x) + m[1]*float64(y) + m[2]
	ry := m[3]*float64(x) + m[4]*float64(y) + m[5]
	w, h := float64(f.w), float64(f.h)
	ix, iy := math.Floor(rx/w), math.Floor(ry/h)
	if f.xoff != 0 {
		rx += iy * float64(f.xoff)
		ix = math.Floor(rx / w)
	} else if f.yoff != 0 {
		ry += ix * float64(f.yoff)
		iy = math.Floor(ry / h)
	}
	return rx - ix*w, ry - iy*h
}

// neighbors returns the columns and row offsets into pix of the 2x2 block
// at (px, py), wrapping at the right and bottom edges.
func (f *Image) neighbors(px, py float64) (x0, x1, y0, y1 int) {
	x0 = min(int(px), f.w-1)
	y0 = min(int(py), f.h-1)
	x1 = (x0 + 1) % f.w
	y1 = (y0 + 1) % f.h
	return x0, x1, y0 * f.w, y1 * f.w
}

// coverEps absorbs float noise before the cover is truncated, so equal
// alphas interpolate to themselves.
const coverEps = 1e-9

// interp blends a and b at the fractional part of pos.  The cover is
// truncated.
func interp(a, b quant.Color, pos float64) (c quant.Color) {
	pos -= math.Floor(pos)
	cover := quant.Clamp8((1-pos)*float64(a[3]) + pos*float64(b[3]) + coverEps)
	if cover != 0 {
		aa, ba := float64(a[3])/255, float64(b[3])/255
		total := aa*(1-pos) + ba*pos
		for ch := 0; ch < 3; ch++ {
			c[ch] = quant.Clamp8(((1-pos)*float64(a[ch])*aa+pos*float64(b[ch])*ba)/total + 0.5)
		}
	}
	c[3] = cover
	return
}

func interpF(a, b quant.FColor, pos float64) (c quant.FColor) {
	pos -= math.Floor(pos)
	cover := (1-pos)*a[3] + pos*b[3]
	if cover > 0 {
		for ch := 0; ch < 3; ch++ {
			c[ch] = ((1-pos)*a[ch]*a[3] + pos*b[ch]*b[3]) / cover
		}
	}
	c[3] = min(max(cover, 0), 1)
	return
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package dither

import (
	"sort"

	"github.com/soniakeys/quant/v2"
)

// Matrix is an 8x8 threshold matrix indexed by x first: the threshold for
// pixel (x, y) is m[(x&7)*8+(y&7)].  Custom matrices use the same layout.
type Matrix [64]uint8

// At returns the threshold for pixel (x, y).
func (m *Matrix) At(x, y int) uint8 { return m[(x&7)*8+(y&7)] }

var ordered = [...]Matrix{
	quant.OrdDithRandom:    build(randomKey),
	quant.OrdDithDot8:      build(dotKey(8)),
	quant.OrdDithDot4:      build(dotKey(4)),
	quant.OrdDithHLine:     build(hlineKey),
	quant.OrdDithVLine:     build(vlineKey),
	quant.OrdDithSlashLine: build(slashKey),
	quant.OrdDithBackLine:  build(backKey),
	quant.OrdDithTiny:      build(bayerKey),
}

// Ordered returns the builtin matrix for o, or custom for OrdDithCustom.
// Unknown values and a nil custom matrix give the random matrix.
func Ordered(o quant.OrdDith, custom *[64]uint8) *Matrix {
	if o == quant.OrdDithCustom && custom != nil {
		m := Matrix(*custom)
		return &m
	}
	if o < 0 || int(o) >= len(ordered) {
		o = quant.OrdDithRandom
	}
	m := ordered[o]
	return &m
}

// build ranks the 64 cells by key, ties broken by position, and spreads
// the ranks evenly over 2..254.  Low keys switch first.
func build(key func(x, y int) float64) (m Matrix) {
	cells := make([]int, 64)
	keys := make([]float64, 64)
	for i := range cells {
		cells[i] = i
		keys[i] = key(i>>3, i&7)
	}
	sort.SliceStable(cells, func(a, b int) bool {
		return keys[cells[a]] < keys[cells[b]]
	})
	for rank, i := range cells {
		m[i] = uint8(rank*4 + 2)
	}
	return
}

// randomKey is a fixed scramble of the cell position.
func randomKey(x, y int) float64 {
	h := uint32(y*8+x)*2654435761 + 0x5bd1e995
	h ^= h >> 15
	h *= 0x2c1b3c6d
	h ^= h >> 12
	return float64(h)
}

// dotKey clusters cells around the center of size x size tiles.
func dotKey(size int) func(x, y int) float64 {
	c := float64(size-1) / 2
	return func(x, y int) float64 {
		dx := float64(x%size) - c
		dy := float64(y%size) - c
		return dx*dx + dy*dy
	}
}

func hlineKey(x, y int) float64 {
	d := float64(y) - 3.5
	return d*d*8 + float64(x)/8
}

func vlineKey(x, y int) float64 {
	d := float64(x) - 3.5
	return d*d*8 + float64(y)/8
}

func slashKey(x, y int) float64 {
	return float64((x+y)&7) + float64(x)/8
}

func backKey(x, y int) float64 {
	return float64((x-y)&7) + float64(y)/8
}

// bayerKey is the 8x8 dispersed dot index.
func bayerKey(x, y int) float64 {
	v := 0
	for bit := 2; bit >= 0; bit-- {
		xb, yb := x>>(2-bit)&1, y>>(2-bit)&1
		v |= (xb ^ yb) << (2*bit + 1)
		v |= yb << (2 * bit)
	}
	return float64(v)
}

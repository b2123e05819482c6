// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package nearest

import (
	"github.com/soniakeys/quant/v2"
)

// Boxes is the number of coarse cells, 3 bits per channel.
const Boxes = 512

// Box returns the coarse cell containing the RGB channels of c.
func Box(c quant.Color) int {
	return int(c[0]>>5)<<6 | int(c[1]>>5)<<3 | int(c[2]>>5)
}

// BoxBounds returns the inclusive per channel range of box.
func BoxBounds(box int) (lo, hi [3]int) {
	lo[0] = (box >> 6 & 7) << 5
	lo[1] = (box >> 3 & 7) << 5
	lo[2] = (box & 7) << 5
	for ch := range lo {
		hi[ch] = lo[ch] | 31
	}
	return
}

// MinDist returns the smallest squared distance from any point of box to c.
func MinDist(box int, c quant.Color) int {
	lo, hi := BoxBounds(box)
	d := 0
	for ch := 0; ch < 3; ch++ {
		v := int(c[ch])
		var e int
		switch {
		case v < lo[ch]:
			e = lo[ch] - v
		case v > hi[ch]:
			e = v - hi[ch]
		}
		d += e * e
	}
	return d
}

// MaxDist returns the largest squared distance from any point of box to c.
func MaxDist(box int, c quant.Color) int {
	lo, hi := BoxBounds(box)
	d := 0
	for ch := 0; ch < 3; ch++ {
		v := int(c[ch])
		e := v - lo[ch]
		if f := hi[ch] - v; f > e {
			e = f
		}
		if e < 0 {
			e = -e
		}
		d += e * e
	}
	return d
}

// Hashbox keeps, for each coarse cell, the entries that can be nearest to
// some point in the cell.
//
// An entry is a candidate for a cell when its minimum distance to the cell
// is less than the smallest maximum distance of any entry.  Any entry
// failing that test is at least as far as the entry with that maximum
// distance from every point in the cell.
type Hashbox struct {
	pal  quant.Palette
	off  [Boxes + 1]int32
	cand []int32
}

// NewHashbox builds the candidate lists for pal.
func NewHashbox(pal quant.Palette) *Hashbox {
	h := &Hashbox{pal: pal}
	h.cand = make([]int32, 0, len(pal)*4)
	for bx := 0; bx < Boxes; bx++ {
		h.off[bx] = int32(len(h.cand))
		mind := maxDist + 1
		for _, e := range pal {
			if d := MaxDist(bx, e); d < mind {
				mind = d
			}
		}
		for i, e := range pal {
			if MinDist(bx, e) < mind {
				h.cand = append(h.cand, int32(i))
			}
		}
	}
	h.off[Boxes] = int32(len(h.cand))
	return h
}

// Candidates returns the candidate entry indices for box.
func (h *Hashbox) Candidates(box int) []int32 {
	return h.cand[h.off[box]:h.off[box+1]]
}

// Find satisfies Finder.
func (h *Hashbox) Find(c quant.Color) (int, int) {
	best, bd := -1, maxDist+1
	for _, i := range h.Candidates(Box(c)) {
		if d := quant.Dist(h.pal[i], c); d < bd {
			best, bd = int(i), d
		}
	}
	return best, bd
}

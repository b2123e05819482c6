// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

// Nearest finds the palette entry closest to a color.
//
// Distance is squared euclidean distance over the RGB channels.  Every
// Finder returns an entry at the minimum distance; the strategies differ
// only in how many entries they examine.  When several entries tie,
// strategies may pick different ones.
package nearest

import (
	"github.com/soniakeys/quant/v2"
)

// Finder searches a palette.
type Finder interface {
	// Find returns the index of an entry nearest to c and its squared
	// distance.  Only the RGB channels of c are used.
	Find(c quant.Color) (index, dist int)
}

// New returns a Finder for pal using strategy s.  pal must not be empty
// and must not be modified while the Finder is in use.
func New(s quant.Search, pal quant.Palette) Finder {
	switch s {
	case quant.SearchLinear:
		return Linear(pal)
	case quant.SearchSorted:
		return NewSorted(pal)
	case quant.SearchJump:
		return NewJump(pal, 1)
	}
	return NewHashbox(pal)
}

// Linear examines every entry.
type Linear quant.Palette

// Find satisfies Finder.  The lowest index wins ties.
func (l Linear) Find(c quant.Color) (int, int) {
	best, bd := -1, maxDist+1
	for i, e := range l {
		if d := quant.Dist(e, c); d < bd {
			best, bd = i, d
		}
	}
	return best, bd
}

// maxDist is the largest possible squared RGB distance.
const maxDist = 3 * 255 * 255

// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package nearest

import (
	"sort"

	"github.com/soniakeys/quant/v2"
)

// sortCh is the channel entries are sorted on.  Green carries most of
// the luminance so it spreads typical palettes best.
const sortCh = 1

// Sorted keeps entries ordered by one channel.  A search starts at the
// query's position in that order and walks outward in both directions,
// stopping each direction once the channel difference alone reaches the
// best distance found.
type Sorted struct {
	pal quant.Palette
	idx []int   // entry indices ordered by channel value
	key []uint8 // channel value of idx[i]
}

// NewSorted builds a Sorted finder for pal.
func NewSorted(pal quant.Palette) *Sorted {
	s := &Sorted{pal: pal, idx: make([]int, len(pal)), key: make([]uint8, len(pal))}
	for i := range s.idx {
		s.idx[i] = i
	}
	sort.SliceStable(s.idx, func(i, j int) bool {
		return pal[s.idx[i]][sortCh] < pal[s.idx[j]][sortCh]
	})
	for i, x := range s.idx {
		s.key[i] = pal[x][sortCh]
	}
	return s
}

// Find satisfies Finder.
func (s *Sorted) Find(c quant.Color) (int, int) {
	v := c[sortCh]
	hi := sort.Search(len(s.key), func(i int) bool { return s.key[i] >= v })
	lo := hi - 1
	best, bd := -1, maxDist+1
	for lo >= 0 || hi < len(s.idx) {
		if hi < len(s.idx) {
			k := int(s.key[hi]) - int(v)
			if k*k >= bd {
				hi = len(s.idx)
			} else {
				x := s.idx[hi]
				if d := quant.Dist(s.pal[x], c); d < bd {
					best, bd = x, d
				}
				hi++
			}
		}
		if lo >= 0 {
			k := int(v) - int(s.key[lo])
			if k*k >= bd {
				lo = -1
			} else {
				x := s.idx[lo]
				if d := quant.Dist(s.pal[x], c); d < bd {
					best, bd = x, d
				}
				lo--
			}
		}
	}
	return best, bd
}

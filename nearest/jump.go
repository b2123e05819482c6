// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package nearest

import (
	"github.com/soniakeys/quant/v2"
)

// Jump starts from the previous answer, tries one pseudo-randomly chosen
// entry, then scans the palette rejecting entries as soon as a partial
// channel sum reaches the best distance.
//
// Neighboring pixels usually share a nearest entry, so the starting bound
// is tight.  A Jump holds per search state and is not safe for concurrent
// use.
type Jump struct {
	pal  quant.Palette
	prev int
	rnd  uint32
}

// NewJump returns a Jump finder for pal.  seed selects the sequence of
// trial entries; it does not affect results.
func NewJump(pal quant.Palette, seed uint32) *Jump {
	if seed == 0 {
		seed = 1
	}
	return &Jump{pal: pal, rnd: seed}
}

// next is a 32 bit xorshift step.
func (j *Jump) next() uint32 {
	x := j.rnd
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	j.rnd = x
	return x
}

// Find satisfies Finder.
func (j *Jump) Find(c quant.Color) (int, int) {
	if len(j.pal) == 0 {
		return -1, maxDist + 1
	}
	best := j.prev
	if best >= len(j.pal) {
		best = 0
	}
	bd := quant.Dist(j.pal[best], c)
	if r := int(j.next() % uint32(len(j.pal))); r != best {
		if d := quant.Dist(j.pal[r], c); d < bd {
			best, bd = r, d
		}
	}
	for i, e := range j.pal {
		if bd == 0 {
			break
		}
		d := int(e[0]) - int(c[0])
		d *= d
		if d >= bd {
			continue
		}
		g := int(e[1]) - int(c[1])
		d += g * g
		if d >= bd {
			continue
		}
		b := int(e[2]) - int(c[2])
		d += b * b
		if d < bd {
			best, bd = i, d
		}
	}
	j.prev = best
	return best, bd
}

// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package mean

import (
	"sort"

	"github.com/soniakeys/quant/v2"
	"github.com/soniakeys/quant/v2/nearest"
)

// pbox is a coarse color cell ranked by pixel density.
type pbox struct {
	boxnum int
	pixcnt int
	cand   int // seeds assigned to the box
	pdc    int // pixels per squared seed count
}

// prescan places the movable candidates.  Boxes are ranked by pixel count;
// then, once per candidate, the densest box gains a seed and sinks to its
// new rank by pixcnt/cand².  cand starts at 1, so a box holds cand-1 seeds.
// Seeds are finally handed out walking the ranking.  A lone seed sits at
// the center of its box, several seeds are jittered inside it.
func (qz *quantizer) prescan() {
	var pb [nearest.Boxes]pbox
	for i := range pb {
		pb[i] = pbox{boxnum: i, cand: 1}
	}
	qz.pixels(func(c quant.Color) {
		pb[nearest.Box(c)].pixcnt++
	})
	for i := range pb {
		pb[i].pdc = pb[i].pixcnt
	}
	sort.SliceStable(pb[:], func(i, j int) bool {
		return pb[i].pixcnt > pb[j].pixcnt
	})
	for range qz.cs {
		reorder(&pb)
	}
	k, j := 0, 1
	for i := 0; i < len(qz.cs); {
		if qz.cs[i].fixed {
			i++
			continue
		}
		if j < pb[k].cand {
			if pb[k].cand == 2 {
				qz.cs[i].c = boxcenter(pb[k].boxnum)
			} else {
				qz.cs[i].c = qz.boxrand(pb[k].boxnum)
			}
			j++
			i++
		} else {
			k = (k + 1) % len(pb)
			j = 1
		}
	}
}

// reorder adds a seed to the top box and moves it down the ranking.
func reorder(pb *[nearest.Boxes]pbox) {
	c := pb[0]
	c.cand++
	c.pdc = c.pixcnt / (c.cand * c.cand)
	n := 0
	for n < len(pb)-1 && c.pdc < pb[n+1].pdc {
		pb[n] = pb[n+1]
		n++
	}
	pb[n] = c
}

// boxcenter returns the color at the center of box.
func boxcenter(box int) quant.Color {
	lo, _ := nearest.BoxBounds(box)
	return quant.Color{uint8(lo[0] + 16), uint8(lo[1] + 16), uint8(lo[2] + 16), 255}
}

// boxrand returns a random color inside box.
func (qz *quantizer) boxrand(box int) quant.Color {
	lo, _ := nearest.BoxBounds(box)
	return quant.Color{
		uint8(lo[0] + qz.rnd.IntN(32)),
		uint8(lo[1] + qz.rnd.IntN(32)),
		uint8(lo[2] + qz.rnd.IntN(32)),
		255,
	}
}

// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

// Mean implements local means color quantization.
//
// Candidate colors are seeded in the most populated coarse color cells,
// then refined by exactly three passes in which every pixel is assigned to
// its nearest candidate and each movable candidate moves to the mean of
// its pixels.  Candidates nobody picked are respawned at random colors and
// dropped from the result if still unused after the last pass.
package mean

import (
	"image"
	"math/rand/v2"

	"github.com/soniakeys/quant/v2"
	"github.com/soniakeys/quant/v2/nearest"
)

// Passes is the number of refinement passes.
const Passes = 3

// Quantizer implements quant.Quantizer with local means.
type Quantizer struct {
	// Seed selects the random sequence used for seeding jitter and
	// respawns.  Equal seeds give equal palettes for equal input.
	Seed uint64
}

var _ quant.Quantizer = Quantizer{}

// Palette returns the fixed colors followed by the candidates that
// attracted pixels in the last pass.  The result has at most size
// entries and may have fewer.
func (q Quantizer) Palette(fixed quant.Palette, size int, imgs ...image.Image) quant.Palette {
	if size <= 0 || size > quant.MaxColors {
		size = quant.MaxColors
	}
	if len(fixed) > size {
		fixed = fixed[:size]
	}
	qz := &quantizer{
		imgs: imgs,
		cs:   make([]candidate, size),
		rnd:  rand.New(rand.NewPCG(q.Seed, q.Seed^0x9e3779b97f4a7c15)),
	}
	for i, c := range fixed {
		qz.cs[i] = candidate{c: c, fixed: true}
	}
	qz.prescan()
	for pass := 0; pass < Passes; pass++ {
		qz.refine()
	}
	return qz.palette()
}

type quantizer struct {
	imgs []image.Image
	cs   []candidate
	rnd  *rand.Rand
	lr   quant.LineReader
}

type candidate struct {
	c     quant.Color
	sum   [3]int
	count int
	fixed bool
	used  bool
}

// pixels calls f with the RGB color of every pixel of every image.  Gray
// images report equal channels.
func (qz *quantizer) pixels(f func(quant.Color)) {
	for _, img := range qz.imgs {
		qz.lr.Reset(img)
		gray := quant.Channels(img) <= 2
		h := img.Bounds().Dy()
		for y := 0; y < h; y++ {
			for _, c := range qz.lr.Line(y) {
				if gray {
					c[1], c[2] = c[0], c[0]
				}
				f(c)
			}
		}
	}
}

// refine runs one assignment and update pass.
func (qz *quantizer) refine() {
	pal := make(quant.Palette, len(qz.cs))
	for i := range qz.cs {
		pal[i] = qz.cs[i].c
	}
	hb := nearest.NewHashbox(pal)
	qz.pixels(func(c quant.Color) {
		i, _ := hb.Find(c)
		cd := &qz.cs[i]
		cd.count++
		cd.sum[0] += int(c[0])
		cd.sum[1] += int(c[1])
		cd.sum[2] += int(c[2])
	})
	for i := range qz.cs {
		cd := &qz.cs[i]
		if !cd.fixed {
			if cd.count > 0 {
				cd.used = true
				for ch := 0; ch < 3; ch++ {
					cd.c[ch] = uint8(cd.sum[ch] / cd.count)
				}
			} else {
				// let's try something random
				cd.used = false
				cd.c = quant.Color{
					uint8(qz.rnd.IntN(256)),
					uint8(qz.rnd.IntN(256)),
					uint8(qz.rnd.IntN(256)),
				}
			}
			cd.c[3] = 255
		}
		cd.sum = [3]int{}
		cd.count = 0
	}
}

func (qz *quantizer) palette() quant.Palette {
	p := make(quant.Palette, 0, len(qz.cs))
	for _, cd := range qz.cs {
		if cd.fixed || cd.used {
			p = append(p, cd.c)
		}
	}
	return p
}

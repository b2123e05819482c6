// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

// Median implements median cut color quantization.
//
// Pixels are first counted in cells of 5 bits per channel.  The populated
// cells are then split repeatedly: the partition with the widest range on
// any channel is sorted on that channel and cut where the cumulative pixel
// count reaches half of the partition's pixels.  There is no randomness;
// the same input always produces the same palette.
package median

import (
	"image"
	"sort"

	"github.com/soniakeys/quant/v2"
)

// Quantizer implements quant.Quantizer with median cut.  Fixed colors
// are not supported and are ignored.
type Quantizer struct{}

var _ quant.Quantizer = Quantizer{}

// Palette returns no more than size colors for imgs.  Fewer colors are
// returned when the images have fewer populated cells or when every
// partition is down to a single cell.
func (Quantizer) Palette(_ quant.Palette, size int, imgs ...image.Image) quant.Palette {
	if size <= 0 || size > quant.MaxColors {
		size = quant.MaxColors
	}
	qz := newQuantizer(imgs)
	if len(qz.cs) < size {
		// few enough colors to use the cells directly
		p := make(quant.Palette, len(qz.cs))
		for i, c := range qz.cs {
			p[i] = quant.Color{c.rgb[0], c.rgb[1], c.rgb[2], 255}
		}
		return p
	}
	qz.cut(size)
	return qz.palette()
}

// Cells is the number of 5 bit per channel color cells.
const Cells = 1 << 15

// CellIndex returns the cell holding c.
func CellIndex(c quant.Color) int {
	return int(c[0]&0xf8)<<7 | int(c[1]&0xf8)<<2 | int(c[2]&0xf8)>>3
}

// cellColor scales the cell coordinates to cover the full sample range.
func cellColor(i int) [3]uint8 {
	return [3]uint8{
		uint8((i >> 10 & 31) * 255 / 31),
		uint8((i >> 5 & 31) * 255 / 31),
		uint8((i & 31) * 255 / 31),
	}
}

type cell struct {
	rgb   [3]uint8
	count int
}

type partition struct {
	start, size int
	min, max    [3]uint8
	width       [3]int
	pixels      int
}

type quantizer struct {
	cs       []cell      // populated cells
	ps       []partition // len(ps) is the current color count
	chans    int         // channels searched for the widest range
	pixCount int
}

func newQuantizer(imgs []image.Image) *quantizer {
	qz := &quantizer{chans: 1}
	counts := make([]int, Cells)
	var lr quant.LineReader
	for _, img := range imgs {
		lr.Reset(img)
		b := img.Bounds()
		gray := quant.Channels(img) <= 2
		if !gray {
			qz.chans = 3
		}
		qz.pixCount += b.Dx() * b.Dy()
		for y := 0; y < b.Dy(); y++ {
			for _, c := range lr.Line(y) {
				if gray {
					c[1], c[2] = c[0], c[0]
				}
				counts[CellIndex(c)]++
			}
		}
	}
	// Eliminate the empty cells.
	for i, n := range counts {
		if n > 0 {
			qz.cs = append(qz.cs, cell{cellColor(i), n})
		}
	}
	return qz
}

// cut splits partitions until there are n of them or none can be split.
func (qz *quantizer) cut(n int) {
	qz.ps = make([]partition, 1, n)
	qz.ps[0] = partition{start: 0, size: len(qz.cs), pixels: qz.pixCount}
	qz.limits(&qz.ps[0])
	for len(qz.ps) < n {
		// Find the partition with the widest span that has more than
		// one cell.
		maxIndex, maxCh, maxWidth := 0, 0, -1
		for i := range qz.ps {
			p := &qz.ps[i]
			if p.size <= 1 {
				continue
			}
			for ch := 0; ch < qz.chans; ch++ {
				if p.width[ch] > maxWidth {
					maxIndex, maxCh, maxWidth = i, ch, p.width[ch]
				}
			}
		}
		if maxWidth < 0 {
			break // nothing else can be split
		}
		w := &qz.ps[maxIndex]
		cs := qz.cs[w.start : w.start+w.size]
		sort.SliceStable(cs, func(i, j int) bool {
			return cs[i].rgb[maxCh] < cs[j].rgb[maxCh]
		})
		// Cut at the cumulative half, never at the first or last cell
		// so both sides keep at least one cell.
		i := 0
		cum := cs[0].count
		half := w.pixels / 2
		for i++; i < len(cs)-1 && cum < half; i++ {
			cum += cs[i].count
		}
		np := partition{
			start:  w.start + i,
			size:   w.size - i,
			pixels: w.pixels - cum,
		}
		w.size = i
		w.pixels = cum
		qz.limits(w)
		qz.limits(&np)
		qz.ps = append(qz.ps, np)
	}
}

// limits recomputes the channel extents of p.
func (qz *quantizer) limits(p *partition) {
	p.min = [3]uint8{255, 255, 255}
	p.max = [3]uint8{}
	for _, c := range qz.cs[p.start : p.start+p.size] {
		for ch, v := range c.rgb {
			if v < p.min[ch] {
				p.min[ch] = v
			}
			if v > p.max[ch] {
				p.max[ch] = v
			}
		}
	}
	for ch := range p.width {
		p.width[ch] = int(p.max[ch]) - int(p.min[ch])
	}
}

// palette averages the cells of each partition weighted by pixel count.
func (qz *quantizer) palette() quant.Palette {
	p := make(quant.Palette, len(qz.ps))
	for i, part := range qz.ps {
		var sums [3]int
		for _, c := range qz.cs[part.start : part.start+part.size] {
			for ch, v := range c.rgb {
				sums[ch] += int(v) * c.count
			}
		}
		for ch, s := range sums {
			p[i][ch] = uint8(s / part.pixels)
		}
		p[i][3] = 255
	}
	return p
}

// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package quantize

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/soniakeys/quant/v2"
	"github.com/soniakeys/quant/v2/dither"
	"github.com/soniakeys/quant/v2/nearest"
)

// Translate maps every pixel of img to an index into pal, row major.
//
// It fails when pal is empty, when the buffer size overflows, or when a
// custom error diffusion kernel is invalid.  Failures are also pushed onto
// cfg.Errors when it is set.  Entries past quant.MaxColors are ignored.
func Translate(cfg *quant.Config, pal quant.Palette, img image.Image) ([]uint8, error) {
	if len(pal) == 0 {
		return nil, cfg.Fail(quant.ErrNoColors)
	}
	if len(pal) > quant.MaxColors {
		pal = pal[:quant.MaxColors]
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if h > 0 && w > math.MaxInt/h {
		return nil, cfg.Fail(quant.ErrOverflow)
	}
	out := make([]uint8, w*h)
	cfg.Log().Debug("translate", "method", cfg.Translate, "colors", len(pal), "width", w, "height", h)
	switch cfg.Translate {
	case quant.TranslateErrDiff:
		if err := translateErrDiff(cfg, pal, img, out); err != nil {
			return nil, cfg.Fail(err)
		}
	default:
		// closest, giflib and perturb differ only in how the palette
		// was made
		translateClosest(cfg, pal, img, out)
	}
	return out, nil
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func translateClosest(cfg *quant.Config, pal quant.Palette, img image.Image, out []uint8) {
	f := nearest.New(cfg.Search, pal)
	gray := quant.Channels(img) < 3
	pixdev := float64(cfg.Perturb)
	var rnd *rand.Rand
	if cfg.Perturb != 0 {
		rnd = newRand(cfg.Seed)
	}
	lr := quant.NewLineReader(img)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	k := 0
	for y := 0; y < h; y++ {
		line := lr.Line(y)
		for x := 0; x < w; x++ {
			val := line[x]
			if rnd != nil {
				if gray {
					val[0] = quant.Sat(int(val[0]) + int(pixdev*rnd.NormFloat64()))
				} else {
					for ch := 0; ch < 3; ch++ {
						val[ch] = quant.Sat(int(val[ch]) + int(pixdev*rnd.NormFloat64()))
					}
				}
			}
			if gray {
				val[1], val[2] = val[0], val[0]
			}
			i, _ := f.Find(val)
			out[k] = uint8(i)
			k++
		}
	}
}

func translateErrDiff(cfg *quant.Config, pal quant.Palette, img image.Image, out []uint8) error {
	k := dither.Select(cfg.ErrDiff, cfg.Kernel)
	total, err := dither.Total(k)
	if err != nil {
		return err
	}
	f := nearest.New(cfg.Search, pal)
	gray := quant.Channels(img) < 3
	grayMap := pal.IsGray()
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	errw := w + k.Width
	acc := make([][3]int, errw*k.Height)
	lr := quant.NewLineReader(img)
	o := 0
	for y := 0; y < h; y++ {
		line := lr.Line(y)
		for x := 0; x < w; x++ {
			val := line[x]
			if gray {
				val[1], val[2] = val[0], val[0]
			} else if grayMap {
				g := uint8(quant.Grey(val) + 0.5)
				val[0], val[1], val[2] = g, g, g
			}
			// integer division truncates toward zero
			perr := acc[x+k.Orig]
			for ch := 0; ch < 3; ch++ {
				val[ch] = quant.Sat(int(val[ch]) - perr[ch]/total)
			}
			i, _ := f.Find(val)
			c := pal[i]
			for ch := 0; ch < 3; ch++ {
				perr[ch] = int(c[ch]) - int(val[ch])
			}
			for dy := 0; dy < k.Height; dy++ {
				row := acc[dy*errw+x:]
				ws := k.Weights[dy*k.Width : (dy+1)*k.Width]
				for dx, wt := range ws {
					if wt == 0 {
						continue
					}
					e := &row[dx]
					e[0] += perr[0] * wt
					e[1] += perr[1] * wt
					e[2] += perr[2] * wt
				}
			}
			out[o] = uint8(i)
			o++
		}
		// shift up the error matrix
		copy(acc, acc[errw:])
		clear(acc[(k.Height-1)*errw:])
	}
	return nil
}

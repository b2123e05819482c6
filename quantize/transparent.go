// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package quantize

import (
	"image"

	"github.com/soniakeys/quant/v2"
	"github.com/soniakeys/quant/v2/dither"
)

// Transparent overwrites entries of idx with trans where img's alpha says
// the pixel is transparent.  idx is the row major output of Translate for
// img.  Images without an alpha channel read as opaque.
//
// With quant.TranspThreshold a pixel is transparent when its alpha is less
// than cfg.TrThreshold.  Unknown modes use a threshold of 128.
func Transparent(cfg *quant.Config, idx []uint8, img image.Image, trans uint8) error {
	if cfg.Transp == quant.TranspNone {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if len(idx) < w*h {
		return cfg.Fail(quant.Errorf(0, "index buffer too small: %d entries for %dx%d image", len(idx), w, h))
	}
	switch cfg.Transp {
	case quant.TranspThreshold:
		transparentThreshold(cfg.TrThreshold, idx, img, trans)
	case quant.TranspErrDiff:
		transparentErrDiff(cfg.TrErrDiff, idx, img, trans)
	case quant.TranspOrdered:
		transparentOrdered(dither.Ordered(cfg.TrOrdDith, cfg.TrCustom), idx, img, trans)
	default:
		transparentThreshold(128, idx, img, trans)
	}
	return nil
}

func transparentThreshold(threshold uint8, idx []uint8, img image.Image, trans uint8) {
	lr := quant.NewLineReader(img)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x, c := range lr.Line(y) {
			if c[3] < threshold {
				idx[y*w+x] = trans
			}
		}
	}
}

// transparentErrDiff diffuses the error of a binary alpha decision.
// Custom kernels are not supported here; they fall back to Floyd-Steinberg.
func transparentErrDiff(e quant.ErrDiff, idx []uint8, img image.Image, trans uint8) {
	k := dither.Builtin(e)
	total, _ := dither.Total(k) // builtins are valid
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	errw := w + k.Width - 1
	acc := make([]int, errw*k.Height)
	lr := quant.NewLineReader(img)
	for y := 0; y < h; y++ {
		for x, c := range lr.Line(y) {
			a := int(quant.Sat(int(c[3]) - acc[x+k.Orig]/total))
			out := 255
			if a < 128 {
				out = 0
				idx[y*w+x] = trans
			}
			diff := out - a
			for dy := 0; dy < k.Height; dy++ {
				for dx := 0; dx < k.Width; dx++ {
					acc[x+dx+dy*errw] += diff * k.Weights[dx+dy*k.Width]
				}
			}
		}
		copy(acc, acc[errw:])
		clear(acc[(k.Height-1)*errw:])
	}
}

func transparentOrdered(m *dither.Matrix, idx []uint8, img image.Image, trans uint8) {
	lr := quant.NewLineReader(img)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x, c := range lr.Line(y) {
			if c[3] < m.At(x, y) {
				idx[y*w+x] = trans
			}
		}
	}
}

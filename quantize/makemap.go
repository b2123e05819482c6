// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

// Quantize builds palettes for images and maps images to palette indices
// as directed by a quant.Config.
//
// The usual sequence is MakePalette over every image that will share the
// palette, Translate for each image, then Transparent to mark pixels with
// low alpha.
package quantize

import (
	"image"

	"github.com/soniakeys/quant/v2"
	"github.com/soniakeys/quant/v2/mean"
	"github.com/soniakeys/quant/v2/median"
	"github.com/soniakeys/quant/v2/octree"
)

// EliminateUnusedTag is the image tag that, when set to 0, makes common
// palette detection treat every palette entry as used.
const EliminateUnusedTag = "gif_eliminate_unused"

// MakePalette builds a palette for imgs.  It never fails; the result may
// have fewer colors than cfg asks for, and is empty only when there is
// nothing to build from.
//
// cfg is not modified.  The returned palette is a fresh slice.
func MakePalette(cfg *quant.Config, imgs ...image.Image) quant.Palette {
	log := cfg.Log()
	size := cfg.Capacity()
	fixed := cfg.Fixed()
	mc := cfg.MakeColors
	if cfg.Translate == quant.TranslateGiflib {
		// The giflib quantizer could not build a palette shared by
		// several images; median cut replaces it.
		mc = quant.MakeMedianCut
	}
	var p quant.Palette
	switch mc {
	case quant.MakeNone:
		p = fixed.Clone()
	case quant.MakeWebMap:
		p = WebMap(size)
	case quant.MakeMono:
		p = Mono(size)
	case quant.MakeGray:
		p = Gray(1, size)
	case quant.MakeGray4:
		p = Gray(85, size)
	case quant.MakeGray16:
		p = Gray(17, size)
	default:
		if cp, ok := commonPalette(fixed, size, imgs); ok {
			log.Debug("using common palette", "colors", len(cp), "images", len(imgs))
			return cp
		}
		if cfg.ExactColors {
			if ep, ok := exactPalette(fixed, size, imgs); ok {
				log.Debug("using exact colors", "colors", len(ep), "images", len(imgs))
				return ep
			}
		}
		var q quant.Quantizer = median.Quantizer{}
		if mc != quant.MakeMedianCut {
			mc = quant.MakeAddi
			q = mean.Quantizer{Seed: cfg.Seed}
		}
		p = q.Palette(fixed, size, imgs...)
	}
	log.Debug("palette built", "algorithm", mc, "colors", len(p), "size", size, "images", len(imgs))
	return p
}

// commonPalette extends fixed with the colors used by paletted images.
// ok is false if any image is not paletted or the colors do not fit.
func commonPalette(fixed quant.Palette, size int, imgs []image.Image) (quant.Palette, bool) {
	p := fixed.Clone()
	var line []uint8
	for _, img := range imgs {
		cp, ok := quant.PaletteOf(img)
		if !ok {
			return nil, false
		}
		pi := img.(image.PalettedImage)
		var used [quant.MaxColors]bool
		eliminate := true
		if v, ok := quant.TagsOf(img).Int(EliminateUnusedTag); ok {
			eliminate = v != 0
		}
		if eliminate {
			h := img.Bounds().Dy()
			for y := 0; y < h; y++ {
				line = quant.IndexLine(pi, y, line)
				for _, i := range line {
					used[i] = true
				}
			}
		} else {
			for i := range used {
				used[i] = true
			}
		}
		for i, c := range cp {
			if i >= len(used) || !used[i] {
				continue
			}
			qc := quant.FromColor(c)
			if p.Index(qc) >= 0 {
				continue
			}
			if len(p) >= size {
				return nil, false // maximum palette size exceeded
			}
			p = append(p, qc)
		}
	}
	return p, true
}

// exactPalette returns fixed plus the distinct image colors when they all
// fit in size.
func exactPalette(fixed quant.Palette, size int, imgs []image.Image) (quant.Palette, bool) {
	t, ok := octree.Collect(size, imgs...)
	if !ok {
		return nil, false
	}
	p := fixed.Clone()
	for _, c := range t.Colors() {
		if p.Index(c) >= 0 {
			continue
		}
		if len(p) >= size {
			return nil, false
		}
		p = append(p, c)
	}
	return p, true
}

// WebMap returns the 216 color web safe palette, red varying slowest,
// truncated to size.
func WebMap(size int) quant.Palette {
	p := make(quant.Palette, 0, 216)
	for r := 0; r < 256; r += 0x33 {
		for g := 0; g < 256; g += 0x33 {
			for b := 0; b < 256; b += 0x33 {
				p = append(p, quant.Color{uint8(r), uint8(g), uint8(b), 255})
			}
		}
	}
	return truncate(p, size)
}

// Mono returns black and white, truncated to size.
func Mono(size int) quant.Palette {
	return truncate(quant.Palette{{0, 0, 0, 255}, {255, 255, 255, 255}}, size)
}

// Gray returns gray levels 0, step, 2*step ... below 256, truncated to
// size.
func Gray(step, size int) quant.Palette {
	if step < 1 {
		step = 1
	}
	var p quant.Palette
	for v := 0; v < 256 && len(p) < size; v += step {
		p = append(p, quant.Color{uint8(v), uint8(v), uint8(v), 255})
	}
	return p
}

func truncate(p quant.Palette, size int) quant.Palette {
	if size >= 0 && len(p) > size {
		return p[:size]
	}
	return p
}

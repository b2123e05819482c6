// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package quantize

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/soniakeys/quant/v2"
)

// PaletteQuantizer implements draw.Quantizer, the hook image/gif uses to
// build palettes, with MakePalette.
type PaletteQuantizer struct {
	Config *quant.Config
}

var _ draw.Quantizer = PaletteQuantizer{}

// Quantize appends up to cap(p)-len(p) colors built for m to p.
func (q PaletteQuantizer) Quantize(p color.Palette, m image.Image) color.Palette {
	n := cap(p) - len(p)
	if n <= 0 {
		return p
	}
	cfg := *q.Config
	cfg.Colors = nil
	cfg.Size = n
	for _, c := range MakePalette(&cfg, m) {
		p = append(p, color.NRGBA{c[0], c[1], c[2], c[3]})
	}
	return p
}

// Drawer implements draw.Drawer by translating src to the palette of dst
// with Translate.  dst is normally an *image.Paletted; other destinations
// receive the palette colors through Set, and use the palette of Config.
//
// Translation failures leave dst unchanged and are pushed onto
// Config.Errors when it is set.
type Drawer struct {
	Config *quant.Config
}

var _ draw.Drawer = Drawer{}

// Draw satisfies draw.Drawer.
func (d Drawer) Draw(dst draw.Image, r image.Rectangle, src image.Image, sp image.Point) {
	// Clip r against both images.
	r = r.Intersect(dst.Bounds())
	sr := r.Sub(r.Min).Add(sp).Intersect(src.Bounds())
	r = sr.Sub(sp).Add(r.Min)
	if r.Empty() {
		return
	}
	pd, paletted := dst.(*image.Paletted)
	var pal quant.Palette
	if paletted {
		pal = quant.FromPalette(pd.Palette)
	} else {
		pal = d.Config.Colors
	}
	idx, err := Translate(d.Config, pal, window{src, sr})
	if err != nil {
		return
	}
	w := r.Dx()
	for y := 0; y < r.Dy(); y++ {
		row := idx[y*w : (y+1)*w]
		if paletted {
			i := pd.PixOffset(r.Min.X, r.Min.Y+y)
			copy(pd.Pix[i:i+w], row)
			continue
		}
		for x, pi := range row {
			c := pal[pi]
			dst.Set(r.Min.X+x, r.Min.Y+y, color.NRGBA{c[0], c[1], c[2], c[3]})
		}
	}
}

// window restricts an image to a rectangle without copying.
type window struct {
	image.Image
	r image.Rectangle
}

func (w window) Bounds() image.Rectangle { return w.r }

func (w window) Channels() int { return quant.Channels(w.Image) }

// Paletted builds one palette for imgs and translates each of them.
// When cfg asks for transparency a fully transparent entry is appended to
// the palette, room for it being reserved while the palette is built, and
// transparent pixels use its index.
func Paletted(cfg *quant.Config, imgs ...image.Image) ([]*image.Paletted, error) {
	bcfg := *cfg
	transp := cfg.Transp != quant.TranspNone
	if transp {
		bcfg.Size = cfg.Capacity() - 1
		if bcfg.Size < 1 {
			bcfg.Size = 1
		}
	}
	pal := MakePalette(&bcfg, imgs...)
	cp := pal.ColorPalette()
	trans := len(pal)
	if transp && trans < quant.MaxColors {
		cp = append(cp, color.NRGBA{})
	} else {
		transp = false
	}
	out := make([]*image.Paletted, len(imgs))
	for i, img := range imgs {
		idx, err := Translate(cfg, pal, img)
		if err != nil {
			return nil, err
		}
		if transp {
			if err := Transparent(cfg, idx, img, uint8(trans)); err != nil {
				return nil, err
			}
		}
		b := img.Bounds()
		out[i] = &image.Paletted{
			Pix:     idx,
			Stride:  b.Dx(),
			Rect:    b,
			Palette: cp,
		}
	}
	return out, nil
}

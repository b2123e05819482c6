// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package quant

import (
	"image"
	"image/color"
	"strconv"
)

// ChannelCounter may be implemented by images whose channel count cannot
// be inferred from their concrete type.
type ChannelCounter interface {
	Channels() int
}

// Channels returns the channel count of img: 1 gray, 2 gray and alpha,
// 3 RGB, 4 RGBA.
func Channels(img image.Image) int {
	switch m := img.(type) {
	case ChannelCounter:
		return m.Channels()
	case *image.Gray, *image.Gray16:
		return 1
	case *image.Alpha, *image.Alpha16:
		return 2
	case *image.YCbCr, *image.CMYK:
		return 3
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	}
	return 4
}

// Scanline reads row y of img into line and returns it.  Coordinates are
// relative to the image bounds, so y ranges 0 to height-1.  Colors are
// non-premultiplied RGBA; gray images return equal RGB channels and
// images without alpha return 255 alpha.  line is grown as needed.
//
// Scanline converts the palette of a paletted image on every call; use a
// LineReader to read many rows.
func Scanline(img image.Image, y int, line []Color) []Color {
	return readLine(img, y, line, convertPalette(img))
}

// LineReader reads rows of one image at a time, reusing its row buffer
// and converting a palette once per image.  The zero value is ready after
// Reset.
type LineReader struct {
	img  image.Image
	pal  []Color
	line []Color
}

// NewLineReader returns a LineReader for img.
func NewLineReader(img image.Image) *LineReader {
	r := &LineReader{}
	r.Reset(img)
	return r
}

// Reset switches r to img, keeping its buffers.
func (r *LineReader) Reset(img image.Image) {
	r.img = img
	r.pal = r.pal[:0]
	if m, ok := img.(*image.Paletted); ok {
		for _, c := range m.Palette {
			r.pal = append(r.pal, FromColor(c))
		}
	}
}

// Line returns row y as Scanline does.  The slice is overwritten by the
// next call.
func (r *LineReader) Line(y int) []Color {
	r.line = readLine(r.img, y, r.line, r.pal)
	return r.line
}

func convertPalette(img image.Image) []Color {
	m, ok := img.(*image.Paletted)
	if !ok {
		return nil
	}
	pal := make([]Color, len(m.Palette))
	for i, c := range m.Palette {
		pal[i] = FromColor(c)
	}
	return pal
}

// readLine is Scanline with the palette of a paletted img converted.
func readLine(img image.Image, y int, line, pal []Color) []Color {
	b := img.Bounds()
	w := b.Dx()
	if cap(line) < w {
		line = make([]Color, w)
	}
	line = line[:w]
	y += b.Min.Y
	switch m := img.(type) {
	case *image.NRGBA:
		i := m.PixOffset(b.Min.X, y)
		for x := range line {
			copy(line[x][:], m.Pix[i:i+4])
			i += 4
		}
	case *image.Gray:
		i := m.PixOffset(b.Min.X, y)
		for x := range line {
			v := m.Pix[i+x]
			line[x] = Color{v, v, v, 255}
		}
	case *image.Paletted:
		i := m.PixOffset(b.Min.X, y)
		for x := range line {
			if pi := int(m.Pix[i+x]); pi < len(pal) {
				line[x] = pal[pi]
			} else {
				line[x] = Color{0, 0, 0, 255}
			}
		}
	default:
		for x := range line {
			line[x] = FromColor(img.At(b.Min.X+x, y))
		}
	}
	return line
}

// PaletteOf returns the palette and true when img stores palette indices
// and its color model is a color.Palette.
func PaletteOf(img image.Image) (color.Palette, bool) {
	if _, ok := img.(image.PalettedImage); !ok {
		return nil, false
	}
	p, ok := img.ColorModel().(color.Palette)
	return p, ok
}

// IndexLine reads the palette indices of row y of a paletted image.
func IndexLine(img image.PalettedImage, y int, line []uint8) []uint8 {
	b := img.Bounds()
	w := b.Dx()
	if cap(line) < w {
		line = make([]uint8, w)
	}
	line = line[:w]
	if m, ok := img.(*image.Paletted); ok {
		i := m.PixOffset(b.Min.X, b.Min.Y+y)
		copy(line, m.Pix[i:i+w])
		return line
	}
	for x := range line {
		line[x] = img.ColorIndexAt(b.Min.X+x, b.Min.Y+y)
	}
	return line
}

// Tags is a key value store of image metadata.
type Tags map[string]string

// Int returns the integer value of tag name.  ok is false when the tag is
// missing or not an integer.
func (t Tags) Int(name string) (v int, ok bool) {
	s, ok := t[name]
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	return v, err == nil
}

// SetInt stores an integer tag.
func (t Tags) SetInt(name string, v int) { t[name] = strconv.Itoa(v) }

// Tagged is implemented by images carrying metadata.
type Tagged interface {
	Tags() Tags
}

// TagsOf returns the tags of img, or nil if it has none.
func TagsOf(img image.Image) Tags {
	if t, ok := img.(Tagged); ok {
		return t.Tags()
	}
	return nil
}

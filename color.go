// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package quant

// Color is a tuple of 8-bit samples.  What the channels mean depends on
// the channel count of the image or fill producing it: 1 gray, 2 gray and
// alpha, 3 RGB, 4 RGBA.  Unused trailing channels are ignored.
type Color [4]uint8

// FColor is the floating point variant of Color, samples range 0 to 1.
type FColor [4]float64

// RGBA returns an opaque 4 channel color.
func RGBA(r, g, b, a uint8) Color { return Color{r, g, b, a} }

// F converts c to floating point samples.
func (c Color) F() (f FColor) {
	for ch, v := range c {
		f[ch] = float64(v) / 255
	}
	return
}

// C converts f to 8-bit samples, rounding and clamping each channel.
func (f FColor) C() (c Color) {
	for ch, v := range f {
		c[ch] = SampleFTo8(v)
	}
	return
}

// SampleFTo8 converts a floating point sample to 8 bits.
func SampleFTo8(v float64) uint8 {
	return Clamp8(v*255 + 0.5)
}

// Clamp8 clamps v to 0..255 and truncates it.
func Clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Sat clamps an integer sample to 0..255.
func Sat(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// Grey returns the luminance of the RGB channels of c.
func Grey(c Color) float64 {
	return 0.222*float64(c[0]) + 0.707*float64(c[1]) + 0.071*float64(c[2])
}

// GreyF returns the luminance of the RGB channels of f.
func GreyF(f FColor) float64 {
	return 0.222*f[0] + 0.707*f[1] + 0.071*f[2]
}

// Adapt converts colors in place from in channels to out channels.
//
// Removing an alpha channel composites against black, dropping color
// uses luminance and adding alpha makes the color opaque.
func Adapt(out, in int, colors []Color) {
	if out == in {
		return
	}
	for i := range colors {
		c := &colors[i]
		switch out {
		case 1:
			switch in {
			case 2:
				c[0] = uint8(int(c[0]) * int(c[1]) / 255)
			case 3:
				c[0] = uint8(Grey(*c) + 0.5)
			case 4:
				c[0] = uint8(Grey(*c)*float64(c[3])/255 + 0.5)
			}
		case 2:
			switch in {
			case 1:
				c[1] = 255
			case 3:
				c[0] = uint8(Grey(*c) + 0.5)
				c[1] = 255
			case 4:
				c[0] = uint8(Grey(*c) + 0.5)
				c[1] = c[3]
			}
		case 3:
			switch in {
			case 1:
				c[1], c[2] = c[0], c[0]
			case 2:
				c[0] = uint8(int(c[0]) * int(c[1]) / 255)
				c[1], c[2] = c[0], c[0]
			case 4:
				for ch := 0; ch < 3; ch++ {
					c[ch] = uint8(int(c[ch]) * int(c[3]) / 255)
				}
			}
		case 4:
			switch in {
			case 1:
				c[1], c[2], c[3] = c[0], c[0], 255
			case 2:
				c[3] = c[1]
				c[1], c[2] = c[0], c[0]
			case 3:
				c[3] = 255
			}
		}
	}
}

// AdaptF is the floating point version of Adapt.
func AdaptF(out, in int, colors []FColor) {
	if out == in {
		return
	}
	for i := range colors {
		c := &colors[i]
		switch out {
		case 1:
			switch in {
			case 2:
				c[0] *= c[1]
			case 3:
				c[0] = GreyF(*c)
			case 4:
				c[0] = GreyF(*c) * c[3]
			}
		case 2:
			switch in {
			case 1:
				c[1] = 1
			case 3:
				c[0] = GreyF(*c)
				c[1] = 1
			case 4:
				c[0] = GreyF(*c)
				c[1] = c[3]
			}
		case 3:
			switch in {
			case 1:
				c[1], c[2] = c[0], c[0]
			case 2:
				c[0] *= c[1]
				c[1], c[2] = c[0], c[0]
			case 4:
				for ch := 0; ch < 3; ch++ {
					c[ch] *= c[3]
				}
			}
		case 4:
			switch in {
			case 1:
				c[1], c[2], c[3] = c[0], c[0], 1
			case 2:
				c[3] = c[1]
				c[1], c[2] = c[0], c[0]
			case 3:
				c[3] = 1
			}
		}
	}
}

// Dist returns the squared euclidean distance between the RGB channels
// of a and b.
func Dist(a, b Color) int {
	dr := int(a[0]) - int(b[0])
	dg := int(a[1]) - int(b[1])
	db := int(a[2]) - int(b[2])
	return dr*dr + dg*dg + db*db
}

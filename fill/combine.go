// Copyright 2013 Sonia Keys.
// Licensed under MIT license.  See "license" file in this source tree.

package fill

import "github.com/soniakeys/quant/v2"

// Combine is the policy for blending fill output into destination pixels.
type Combine int

const (
	// CombineNone replaces destination samples, alpha included.
	CombineNone Combine = iota
	// CombineNormal composites the fill over the destination.
	CombineNormal
	CombineMultiply
	// CombineDissolve is composited as CombineNormal.
	CombineDissolve
	CombineAdd
	CombineSubtract
	CombineDiff
	CombineLighten
	CombineDarken
)

var combineNames = [...]string{
	"none", "normal", "multiply", "dissolve", "add", "subtract", "diff",
	"lighten", "darken",
}

func (c Combine) String() string {
	if c < 0 || int(c) >= len(combineNames) {
		return "combine(?)"
	}
	return combineNames[c]
}

// ParseCombine returns the Combine named s and true, or CombineNone and
// false.
func ParseCombine(s string) (Combine, bool) {
	for i, n := range combineNames {
		if n == s {
			return Combine(i), true
		}
	}
	return CombineNone, false
}

// blend is the separable blend function of c on 8-bit samples.
func (c Combine) blend(s, d int) int {
	switch c {
	case CombineMultiply:
		return s * d / 255
	case CombineAdd:
		return min(s+d, 255)
	case CombineSubtract:
		return max(d-s, 0)
	case CombineDiff:
		if s > d {
			return s - d
		}
		return d - s
	case CombineLighten:
		return max(s, d)
	case CombineDarken:
		return min(s, d)
	}
	return s
}

func (c Combine) blendF(s, d float64) float64 {
	switch c {
	case CombineMultiply:
		return s * d
	case CombineAdd:
		return min(s+d, 1)
	case CombineSubtract:
		return max(d-s, 0)
	case CombineDiff:
		if s > d {
			return s - d
		}
		return d - s
	case CombineLighten:
		return max(s, d)
	case CombineDarken:
		return min(s, d)
	}
	return s
}

// Apply blends fill output src into dst for a destination of channels
// channels.  src is in fill layout: its alpha is at index 1 for 1 and 2
// channel destinations, index 3 otherwise.  For destinations without alpha
// the color channels of dst are updated and the rest left alone.
func (c Combine) Apply(dst, src []quant.Color, channels int) {
	n := min(len(dst), len(src))
	cc, ac := colorChannels(channels), alphaChannel(channels)
	hasAlpha := channels == 2 || channels == 4
	for i := 0; i < n; i++ {
		s, d := &src[i], &dst[i]
		sa := int(s[ac])
		if c == CombineNone {
			copy(d[:channels], s[:channels])
			continue
		}
		if sa == 0 {
			continue
		}
		if !hasAlpha {
			for ch := 0; ch < cc; ch++ {
				sv, dv := int(s[ch]), int(d[ch])
				d[ch] = quant.Sat(((255-sa)*dv + sa*c.blend(sv, dv) + 127) / 255)
			}
			continue
		}
		da := int(d[ac])
		ra := sa + da*(255-sa)/255
		for ch := 0; ch < cc; ch++ {
			sv, dv := int(s[ch]), int(d[ch])
			num := sa*(255-da)*sv + da*(255-sa)*dv + sa*da*c.blend(sv, dv)
			d[ch] = quant.Sat((num + ra*255/2) / (ra * 255))
		}
		d[ac] = uint8(ra)
	}
}

// ApplyF is the floating point variant of Apply.
func (c Combine) ApplyF(dst, src []quant.FColor, channels int) {
	n := min(len(dst), len(src))
	cc, ac := colorChannels(channels), alphaChannel(channels)
	hasAlpha := channels == 2 || channels == 4
	for i := 0; i < n; i++ {
		s, d := &src[i], &dst[i]
		sa := s[ac]
		if c == CombineNone {
			copy(d[:channels], s[:channels])
			continue
		}
		if sa <= 0 {
			continue
		}
		if !hasAlpha {
			for ch := 0; ch < cc; ch++ {
				d[ch] = (1-sa)*d[ch] + sa*c.blendF(s[ch], d[ch])
			}
			continue
		}
		da := d[ac]
		ra := sa + da*(1-sa)
		for ch := 0; ch < cc; ch++ {
			d[ch] = (sa*(1-da)*s[ch] + da*(1-sa)*d[ch] + sa*da*c.blendF(s[ch], d[ch])) / ra
		}
		d[ac] = ra
	}
}

func colorChannels(channels int) int {
	if channels > 2 {
		return 3
	}
	return 1
}
